package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
)

// 嵌入数据中的默认路径
const (
	DefaultSimulationPath = "data/config/simulation.yaml"
	DefaultSongsPattern   = "data/songs/*.yaml"
	DefaultSoundsDir      = "data/sounds"
)

// Overrides 启动参数对配置的覆盖（命令行、移动端默认值）
// 零值字段不覆盖
type Overrides struct {
	Path      string   // 外部配置文件，优先于嵌入配置
	Circles   int      // 圆环总数
	Displayed int      // 同时显示的圆环数
	Seed      int64    // 随机种子
	EnvFiles  []string // 额外的 .env 文件（为空时尝试 ./.env）
}

// LoadWithOverrides 按优先级组装模拟配置
//
// 顺序：默认值 → 配置文件（外部路径或 fsys 中的嵌入文件）→ 环境变量 → 启动参数，
// 最后统一校验。fsys 可为 nil。
func LoadWithOverrides(fsys fs.FS, o Overrides) (*SimulationConfig, error) {
	cfg, err := loadBase(fsys, o.Path)
	if err != nil {
		return nil, err
	}

	// 中间层不校验：后面的层可能修正前面的值（例如 -d 修正文件中的 ringsDisplayed）
	if err := cfg.applyEnv(o.EnvFiles...); err != nil {
		return nil, err
	}

	if o.Circles > 0 {
		cfg.RingCount = o.Circles
	}
	if o.Displayed > 0 {
		cfg.RingsDisplayed = o.Displayed
	}
	if o.Seed != 0 {
		cfg.Seed = o.Seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadBase(fsys fs.FS, path string) (*SimulationConfig, error) {
	if path != "" {
		log.Printf("[Config] 加载配置文件: %s", path)
		return readSimulationConfig(path)
	}
	if fsys == nil {
		return DefaultSimulationConfig(), nil
	}

	data, err := fs.ReadFile(fsys, DefaultSimulationPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("[Config] 未找到 %s，使用默认配置", DefaultSimulationPath)
		return DefaultSimulationConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded simulation config: %w", err)
	}
	return decodeSimulationConfig(data)
}
