package xcache

import (
	"time"
)

// Cache backend modes.
const (
	ModeDisabled = "disabled"
	ModeMemory   = "memory"
	ModeRedis    = "redis"
	ModeTwoLevel = "two-level"
)

type Config struct {
	Mode   string       `conf:"mode" yaml:"mode" json:"mode"`
	Memory MemoryConfig `conf:"memory" yaml:"memory" json:"memory"`

	// RedisExpiration applies to redis-backed entries, which usually
	// outlive the in-process ones.
	RedisExpiration time.Duration `conf:"redis_expiration" yaml:"redis_expiration" json:"redis_expiration"`
}

type MemoryConfig struct {
	Expiration      time.Duration `conf:"expiration" yaml:"expiration" json:"expiration"`
	CleanupInterval time.Duration `conf:"cleanup_interval" yaml:"cleanup_interval" json:"cleanup_interval"`
}
