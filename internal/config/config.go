package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string
	Env  string

	// RedisAddr empty means round history is disabled.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SpinWindow time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          os.Getenv("PORT"),
		Env:           os.Getenv("ENV"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SpinWindow:    60 * time.Second,
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %v", err)
		}
		cfg.RedisDB = n
	}

	if window := os.Getenv("SPIN_WINDOW_SECONDS"); window != "" {
		n, err := strconv.Atoi(window)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid SPIN_WINDOW_SECONDS: %s", window)
		}
		cfg.SpinWindow = time.Duration(n) * time.Second
	}

	return cfg, nil
}
