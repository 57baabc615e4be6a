package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// 环境变量名
const (
	EnvRingCount      = "TOKVIBES_RING_COUNT"
	EnvRingsDisplayed = "TOKVIBES_RINGS_DISPLAYED"
	EnvRoundSeconds   = "TOKVIBES_ROUND_SECONDS"
	EnvGravity        = "TOKVIBES_GRAVITY"
	EnvSeed           = "TOKVIBES_SEED"
)

// ApplyEnvOverrides 用环境变量覆盖配置
//
// 如果 envFiles 中的文件存在，会先通过 godotenv 加载（已存在的环境变量不会被覆盖）；
// 不传 envFiles 时尝试加载当前目录的 .env。文件缺失不是错误。
// 覆盖后重新执行 Validate。
func (c *SimulationConfig) ApplyEnvOverrides(envFiles ...string) error {
	if err := c.applyEnv(envFiles...); err != nil {
		return err
	}
	return c.Validate()
}

// applyEnv 加载 .env 并写入覆盖值，不校验（格式错误仍然返回错误）
func (c *SimulationConfig) applyEnv(envFiles ...string) error {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
		log.Printf("[Config] Loaded env file: %s", f)
	}

	if err := overrideInt(EnvRingCount, &c.RingCount); err != nil {
		return err
	}
	if err := overrideInt(EnvRingsDisplayed, &c.RingsDisplayed); err != nil {
		return err
	}
	if err := overrideFloat(EnvRoundSeconds, &c.RoundSeconds); err != nil {
		return err
	}
	if err := overrideFloat(EnvGravity, &c.Gravity); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvSeed, v)
		}
		c.Seed = seed
	}
	return nil
}

func overrideInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

func overrideFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = f
	return nil
}
