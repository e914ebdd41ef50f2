package prefs

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"AlliancePlanner/modules/kit/logx"
)

const (
	prefsObject   = "prefs"
	prefsProperty = "planner"
)

// Settings 是持久化的用户偏好
type Settings struct {
	GridSize int `yaml:"gridSize"`
}

// Store 用 gdata 保存偏好。manager 为 nil 时只在内存里生效。
type Store struct {
	mu       sync.Mutex
	manager  *gdata.Manager
	settings Settings
	log      logx.Logger
}

// Open 按应用名打开 gdata 存储，打不开时降级为内存模式。
func Open(appName string, log logx.Logger) *Store {
	log = logx.OrNop(log)
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Warn("open prefs storage failed, fallback to memory", zap.String("app", appName), zap.Error(err))
		m = nil
	}
	return New(m, log)
}

func New(m *gdata.Manager, log logx.Logger) *Store {
	s := &Store{manager: m, log: logx.OrNop(log)}
	if err := s.load(); err != nil {
		s.log.Warn("load prefs failed, using defaults", zap.Error(err))
	}
	return s
}

func (s *Store) load() error {
	if s.manager == nil || !s.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := s.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("failed to load prefs: %w", err)
	}
	var loaded Settings
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to unmarshal prefs: %w", err)
	}
	s.settings = loaded
	return nil
}

// GridSize 返回保存过的网格尺寸，从未保存时 ok 为 false。
func (s *Store) GridSize() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.GridSize, s.settings.GridSize > 0
}

func (s *Store) SaveGridSize(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings.GridSize = n
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}
	if err := s.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("failed to save prefs: %w", err)
	}
	return nil
}
