package helper

import (
	"strings"
	"testing"
)

func TestGenerateOrderCodeFormat(t *testing.T) {
	code := GenerateOrderCode(CodePrefixPayment)

	parts := strings.Split(code, "-")
	if len(parts) != 3 {
		t.Fatalf("kode harus 3 bagian, dapat %q", code)
	}
	if parts[0] != "PAY" {
		t.Errorf("prefix salah: %q", parts[0])
	}
	if len(parts[1]) == 0 {
		t.Errorf("timestamp base36 kosong: %q", code)
	}
	if len(parts[2]) != 4 {
		t.Errorf("suffix harus 4 karakter, dapat %q", parts[2])
	}
	if code != strings.ToUpper(code) {
		t.Errorf("kode harus uppercase: %q", code)
	}
}

func TestGenerateOrderCodePrefixes(t *testing.T) {
	for _, prefix := range []string{CodePrefixPayment, CodePrefixTagihan, CodePrefixSewa} {
		code := GenerateOrderCode(prefix)
		if !strings.HasPrefix(code, prefix+"-") {
			t.Errorf("kode %q tidak diawali %q", code, prefix)
		}
	}
}

func TestGenerateOrderCodeUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code := GenerateOrderCode(CodePrefixTagihan)
		if seen[code] {
			t.Fatalf("kode duplikat: %q", code)
		}
		seen[code] = true
	}
}
