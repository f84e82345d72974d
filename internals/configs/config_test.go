package configs

import (
	"testing"
	"time"

	gormLogger "gorm.io/gorm/logger"
)

func TestNewGormLogger(t *testing.T) {
	l := NewGormLogger()
	if l == nil {
		t.Fatal("logger nil")
	}

	gl, ok := l.(*GormLogger)
	if !ok {
		t.Fatalf("tipe logger = %T", l)
	}
	if gl.LogLevel != gormLogger.Info {
		t.Fatalf("level default = %v, want Info", gl.LogLevel)
	}
	if gl.SlowThreshold != 200*time.Millisecond {
		t.Fatalf("slow threshold = %v", gl.SlowThreshold)
	}

	if got := l.LogMode(gormLogger.Warn); got.(*GormLogger).LogLevel != gormLogger.Warn {
		t.Fatal("LogMode tidak mengubah level")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("KOSTKU_TEST_KEY", "isi")
	if got := GetEnv("KOSTKU_TEST_KEY", "default"); got != "isi" {
		t.Fatalf("got %q", got)
	}
	if got := GetEnv("KOSTKU_TEST_KEY_KOSONG", "default"); got != "default" {
		t.Fatalf("fallback got %q", got)
	}
}
