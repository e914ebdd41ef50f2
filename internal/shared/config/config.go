package config

import (
	"os"
	"path/filepath"
)

const defaultConfigRelPath = "configs/conf.yml"

// Load 把配置文件解到 out 中，out 必须是指针。
//
// 约定：
// 1) 传入 cfgName（相对/绝对路径）则优先使用；
// 2) 否则从当前目录开始向上查找 `configs/conf.yml`。
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName, out)
			return
		}
		candidate := filepath.Join(curDir, cfgName)
		if fileExist(candidate) {
			load(candidate, out)
			return
		}
	}

	load(findConfigUpward(curDir), out)
}

// FindUpward 从 startDir 向上查找相对路径 rel，找不到返回空串。
func FindUpward(startDir, rel string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, rel)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func findConfigUpward(startDir string) string {
	p := FindUpward(startDir, defaultConfigRelPath)
	if p == "" {
		panic("config file not exist, searched configs/conf.yml from: " + startDir)
	}
	return p
}
