package ringvrf

import (
	"github.com/pkg/errors"
)

// Config selects the KZG parameters and ring size of a Registry.
type Config struct {
	SRSPath   string `mapstructure:"srs_path"`
	RingSize  int    `mapstructure:"ring_size"`
	LogLevel  string `mapstructure:"log_level"`
	CacheSize int    `mapstructure:"cache_size"`
}

func DefaultConfig() *Config {
	return &Config{
		SRSPath:   "data/zcash-srs-2-11-uncompressed.bin",
		RingSize:  DefaultRingSize,
		LogLevel:  "info",
		CacheSize: 16,
	}
}

func (cfg *Config) Validate() error {
	if cfg.SRSPath == "" {
		return errors.New("srs_path is required")
	}
	if cfg.RingSize < 1 {
		return errors.Errorf("ring_size must be positive, got %d", cfg.RingSize)
	}
	if cfg.CacheSize < 0 {
		return errors.Errorf("cache_size can't be negative, got %d", cfg.CacheSize)
	}
	switch cfg.LogLevel {
	case "debug", "info", "error", "none":
	default:
		return errors.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	return nil
}
