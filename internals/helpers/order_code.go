package helper

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
)

// Prefix kode untuk tiap entitas yang butuh nomor unik.
const (
	CodePrefixPayment = "PAY"
	CodePrefixTagihan = "TGH"
	CodePrefixSewa    = "SWA"
)

const codeSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode membuat kode unik berformat {PREFIX}-{timestamp base36}-{4 acak},
// mis: PAY-LX3K9QZ1-7F2A. Timestamp millis menjaga urutan, suffix acak
// menghindari tabrakan antar request di milidetik yang sama.
func GenerateOrderCode(prefix string) string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = codeSuffixChars[int(b)%len(codeSuffixChars)]
	}

	return prefix + "-" + ts + "-" + string(buf)
}
