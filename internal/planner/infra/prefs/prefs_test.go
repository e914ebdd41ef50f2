package prefs

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openManager(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("打开 gdata 失败: %v", err)
	}
	return m
}

func TestStore_未保存时无网格尺寸(t *testing.T) {
	s := New(openManager(t, "planner_prefs_empty"), nil)
	if n, ok := s.GridSize(); ok {
		t.Fatalf("期望未保存，实际=%d", n)
	}
}

func TestStore_保存后重新打开可读(t *testing.T) {
	m := openManager(t, "planner_prefs_reload")
	if err := New(m, nil).SaveGridSize(30); err != nil {
		t.Fatalf("SaveGridSize 失败: %v", err)
	}

	n, ok := New(m, nil).GridSize()
	if !ok || n != 30 {
		t.Fatalf("期望 30，实际=%d ok=%v", n, ok)
	}
}

func TestStore_降级模式只存内存(t *testing.T) {
	s := New(nil, nil)
	if err := s.SaveGridSize(20); err != nil {
		t.Fatalf("降级模式不应报错: %v", err)
	}
	if n, ok := s.GridSize(); !ok || n != 20 {
		t.Fatalf("期望内存值 20，实际=%d ok=%v", n, ok)
	}
}
