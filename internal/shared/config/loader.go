package config

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	reloadMu    sync.Mutex
	reloadHooks []func()
)

// OnReload 注册热更新成功后的回调，回调在持有 reloadMu 时执行
func OnReload(fn func()) {
	reloadMu.Lock()
	defer reloadMu.Unlock()
	reloadHooks = append(reloadHooks, fn)
}

func load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.OnConfigChange(func(e fsnotify.Event) {
		reloadMu.Lock()
		defer reloadMu.Unlock()
		log.Println("配置文件变更", e.Name)
		if err := v.Unmarshal(out); err != nil {
			// 热更新失败保留旧值
			log.Printf("viper unmarshal change config data failed, err=%v\n", err)
			return
		}
		for _, fn := range reloadHooks {
			fn()
		}
	})
	v.WatchConfig()
	// 加载配置
	err := v.ReadInConfig()
	if err != nil {
		panic(err)
	}
	err = v.Unmarshal(out)
	if err != nil {
		panic(err)
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
