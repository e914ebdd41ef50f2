package cmd

import (
	"AlliancePlanner/internal/shared/serverconfig"
	"testing"

	"AlliancePlanner/internal/shared/logs"

	"go.uber.org/zap"
)

func TestReadConfig(t *testing.T) {
	serverconfig.Load()
	if err := logs.Init("TestReadConfig", serverconfig.Conf.Log); err != nil {
		t.Fatalf("logs.Init 失败: %v", err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))
	if serverconfig.Conf.Storage.Driver == "" {
		t.Fatalf("期望存储驱动有默认值")
	}
}
