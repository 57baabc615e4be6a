package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig 配置校验失败时包装的哨兵错误
// 调用方可以通过 errors.Is(err, config.ErrInvalidConfig) 判断
var ErrInvalidConfig = errors.New("invalid simulation config")

// BallSpec 单个小球的配置
//
// Label 对物理核心是不透明的，仅用于计分显示；Color 由渲染层解析。
type BallSpec struct {
	Label string `yaml:"label"`
	Color string `yaml:"color"` // 十六进制颜色，如 "#ff0000"
}

// SimulationConfig 圆环逃逸模拟的完整配置
//
// 所有长度单位为像素，所有速度单位为 像素/帧，角度字段以 Degrees 结尾时为角度制，
// 其余角度为弧度制。
//
// 配置文件位置: data/config/simulation.yaml
type SimulationConfig struct {
	// 场地
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	FPS    int     `yaml:"fps"`

	// 小球物理
	Gravity       float64 `yaml:"gravity"`
	BallRadius    float64 `yaml:"ballRadius"`
	BounceDamping float64 `yaml:"bounceDamping"` // 反弹后速度乘数 (0, 1]
	MinVelocity   float64 `yaml:"minVelocity"`   // 反弹后最小速度
	SpawnSpeedMin float64 `yaml:"spawnSpeedMin"` // 开局水平速度下限（绝对值）
	SpawnSpeedMax float64 `yaml:"spawnSpeedMax"` // 开局水平速度上限（绝对值）
	RespawnSpeed  float64 `yaml:"respawnSpeed"`  // 出界重生时的水平速度（绝对值）
	TrailLength   int     `yaml:"trailLength"`   // 拖尾历史长度，0 表示不记录

	// 圆环
	RingCount          int     `yaml:"ringCount"`
	RingsDisplayed     int     `yaml:"ringsDisplayed"`
	FirstRingRadius    float64 `yaml:"firstRingRadius"`
	RingSpacing        float64 `yaml:"ringSpacing"`
	RingWidth          float64 `yaml:"ringWidth"`
	ShrinkSpeed        float64 `yaml:"shrinkSpeed"`        // 每帧向目标半径收缩的步长
	RotationSpeed      float64 `yaml:"rotationSpeed"`      // 弧度/帧
	RotationIndexScale float64 `yaml:"rotationIndexScale"` // 转速 = RotationSpeed * (1 + index*scale)
	HoleSizeDegrees    float64 `yaml:"holeSizeDegrees"`
	HoleShiftDegrees   float64 `yaml:"holeShiftDegrees"` // 每个序号的初始缺口偏移
	FadeInFrames       int     `yaml:"fadeInFrames"`
	FadeOutFrames      int     `yaml:"fadeOutFrames"`

	// 回合
	RoundSeconds float64 `yaml:"roundSeconds"`
	Seed         int64   `yaml:"seed"` // 0 表示按时间播种

	Balls []BallSpec `yaml:"balls"`
}

// DefaultSimulationConfig 返回默认配置
// 反弹阻尼、最小速度、缺口大小等数值与 data/config/simulation.yaml 保持一致
func DefaultSimulationConfig() *SimulationConfig {
	return &SimulationConfig{
		Width:  600,
		Height: 800,
		FPS:    60,

		Gravity:       0.1,
		BallRadius:    10,
		BounceDamping: 0.98,
		MinVelocity:   4.0,
		SpawnSpeedMin: 2,
		SpawnSpeedMax: 5,
		RespawnSpeed:  4,
		TrailLength:   15,

		RingCount:          10,
		RingsDisplayed:     5,
		FirstRingRadius:    120,
		RingSpacing:        12,
		RingWidth:          5,
		ShrinkSpeed:        1.0,
		RotationSpeed:      0.010,
		RotationIndexScale: 0,
		HoleSizeDegrees:    100,
		HoleShiftDegrees:   -15,
		FadeInFrames:       30,
		FadeOutFrames:      60,

		RoundSeconds: 60,

		Balls: []BallSpec{
			{Label: "Yes", Color: "#ff3b3b"},
			{Label: "No", Color: "#3bff6e"},
		},
	}
}

// LoadSimulationConfig 从文件加载模拟配置
//
// 文件中未出现的字段保留默认值，加载后立即执行 Validate。
//
// 参数:
//   - path: 配置文件路径（如 "data/config/simulation.yaml"）
//
// 返回:
//   - *SimulationConfig: 加载并验证后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadSimulationConfig(path string) (*SimulationConfig, error) {
	cfg, err := readSimulationConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readSimulationConfig 读取并解析配置文件，不校验
// LoadWithOverrides 在所有覆盖层之后统一校验
func readSimulationConfig(path string) (*SimulationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation config: %w", err)
	}
	return decodeSimulationConfig(data)
}

// ParseSimulationConfig 解析 YAML 数据为模拟配置
// 用于嵌入资源（embedded.ReadFile）和测试
func ParseSimulationConfig(data []byte) (*SimulationConfig, error) {
	cfg, err := decodeSimulationConfig(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeSimulationConfig 在默认值之上解析 YAML，缺失字段保留默认值，不校验
func decodeSimulationConfig(data []byte) (*SimulationConfig, error) {
	cfg := DefaultSimulationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse simulation config: %w", err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
//
// 任何不合法的值都会导致回合无法创建（核心不会以非法配置启动回合）。
// 返回的错误包装了 ErrInvalidConfig。
func (c *SimulationConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Width > 0 && c.Height > 0, fmt.Sprintf("playfield must be positive, got %.1fx%.1f", c.Width, c.Height)},
		{c.FPS > 0, fmt.Sprintf("fps must be > 0, got %d", c.FPS)},
		{isFinite(c.Gravity), "gravity must be finite"},
		{c.BallRadius > 0, fmt.Sprintf("ballRadius must be > 0, got %.2f", c.BallRadius)},
		{c.BounceDamping > 0 && c.BounceDamping <= 1, fmt.Sprintf("bounceDamping must be in (0, 1], got %.3f", c.BounceDamping)},
		{c.MinVelocity > 0, fmt.Sprintf("minVelocity must be > 0, got %.2f", c.MinVelocity)},
		{c.SpawnSpeedMin > 0 && c.SpawnSpeedMin <= c.SpawnSpeedMax,
			fmt.Sprintf("spawn speed range invalid: min(%.2f) max(%.2f)", c.SpawnSpeedMin, c.SpawnSpeedMax)},
		{c.RespawnSpeed >= c.SpawnSpeedMin,
			fmt.Sprintf("respawnSpeed(%.2f) must be >= spawnSpeedMin(%.2f)", c.RespawnSpeed, c.SpawnSpeedMin)},
		{c.TrailLength >= 0, fmt.Sprintf("trailLength must be >= 0, got %d", c.TrailLength)},
		{c.RingCount >= 1, fmt.Sprintf("ringCount must be >= 1, got %d", c.RingCount)},
		{c.RingsDisplayed >= 1 && c.RingsDisplayed <= c.RingCount,
			fmt.Sprintf("ringsDisplayed(%d) must be in [1, ringCount(%d)]", c.RingsDisplayed, c.RingCount)},
		{c.FirstRingRadius > c.BallRadius,
			fmt.Sprintf("firstRingRadius(%.1f) must be larger than ballRadius(%.1f)", c.FirstRingRadius, c.BallRadius)},
		{c.RingSpacing >= 0, fmt.Sprintf("ringSpacing must be >= 0, got %.1f", c.RingSpacing)},
		{c.RingWidth > 0, fmt.Sprintf("ringWidth must be > 0, got %.1f", c.RingWidth)},
		{c.ShrinkSpeed > 0, fmt.Sprintf("shrinkSpeed must be > 0, got %.2f", c.ShrinkSpeed)},
		{isFinite(c.RotationSpeed), "rotationSpeed must be finite"},
		{c.RotationIndexScale >= 0, fmt.Sprintf("rotationIndexScale must be >= 0, got %.2f", c.RotationIndexScale)},
		{c.HoleSizeDegrees > 0 && c.HoleSizeDegrees < 360,
			fmt.Sprintf("holeSizeDegrees must be in (0, 360), got %.1f", c.HoleSizeDegrees)},
		{isFinite(c.HoleShiftDegrees), "holeShiftDegrees must be finite"},
		{c.FadeInFrames >= 1, fmt.Sprintf("fadeInFrames must be >= 1, got %d", c.FadeInFrames)},
		{c.FadeOutFrames >= 1, fmt.Sprintf("fadeOutFrames must be >= 1, got %d", c.FadeOutFrames)},
		{c.RoundSeconds > 0, fmt.Sprintf("roundSeconds must be > 0, got %.1f", c.RoundSeconds)},
		{len(c.Balls) >= 1, "at least one ball is required"},
	}

	for _, check := range checks {
		if !check.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, check.msg)
		}
	}

	for i, b := range c.Balls {
		if b.Label == "" {
			return fmt.Errorf("%w: ball %d has an empty label", ErrInvalidConfig, i)
		}
	}

	return nil
}

// RoundFrames 返回回合总帧数（秒数 × 帧率，向下取整）
func (c *SimulationConfig) RoundFrames() int {
	return int(c.RoundSeconds * float64(c.FPS))
}

// Center 返回世界中心坐标（所有圆环共享的圆心，小球的出生点）
func (c *SimulationConfig) Center() (float64, float64) {
	return c.Width / 2, c.Height / 2
}

// Clone 返回配置的深拷贝
// 回合持有自己的副本，外部修改不会影响正在进行的回合
func (c *SimulationConfig) Clone() *SimulationConfig {
	clone := *c
	clone.Balls = append([]BallSpec(nil), c.Balls...)
	return &clone
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
