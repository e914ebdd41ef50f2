package logs

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"

	"AlliancePlanner/internal/shared/serverconfig"
)

func TestInit_写文件(t *testing.T) {
	file := filepath.Join(t.TempDir(), "planner.log")
	if err := Init("test", serverconfig.LogConfig{FileDir: file, Level: "debug"}); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	if Level() != zapcore.DebugLevel {
		t.Fatalf("期望 debug，实际=%v", Level())
	}
	Info("hello")
	if err := Logger().Sync(); err != nil {
		t.Logf("sync: %v", err)
	}
}

func TestSetLevel(t *testing.T) {
	if err := Init("test", serverconfig.LogConfig{Level: "info"}); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	SetLevel("warn")
	if Level() != zapcore.WarnLevel {
		t.Fatalf("期望 warn，实际=%v", Level())
	}
	SetLevel("nonsense")
	if Level() != zapcore.InfoLevel {
		t.Fatalf("无法识别时期望回退 info，实际=%v", Level())
	}
}
