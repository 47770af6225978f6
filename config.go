package main

import (
	"fmt"
	"strconv"
	"strings"
)

type config struct {
	RedisURL       string
	Queue          string
	TwoSided       bool
	RemoveOutliers bool
	BootIterations int
	Confidence     float64
	Seed           uint64
}

func defaultConfig() config {
	return config{
		RedisURL:       "redis://localhost:6379/0",
		Queue:          "default",
		RemoveOutliers: true,
		BootIterations: 1000,
		Confidence:     0.95,
	}
}

// loadConfig overlays environment values on defaultConfig. getenv is
// os.Getenv outside of tests.
func loadConfig(getenv func(string) string) (config, error) {
	cfg := defaultConfig()
	if v := getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := getenv("WORKER_QUEUE"); v != "" {
		cfg.Queue = v
	}

	var err error
	if v := getenv("HYPOTHESIS_TWO_SIDED"); v != "" {
		if cfg.TwoSided, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("HYPOTHESIS_TWO_SIDED: %w", err)
		}
	}
	if v := getenv("HYPOTHESIS_REMOVE_OUTLIERS"); v != "" {
		if cfg.RemoveOutliers, err = strconv.ParseBool(v); err != nil {
			return cfg, fmt.Errorf("HYPOTHESIS_REMOVE_OUTLIERS: %w", err)
		}
	}
	if v := getenv("HYPOTHESIS_BOOT_ITERATIONS"); v != "" {
		if cfg.BootIterations, err = strconv.Atoi(strings.TrimSpace(v)); err != nil {
			return cfg, fmt.Errorf("HYPOTHESIS_BOOT_ITERATIONS: %w", err)
		}
	}
	if v := getenv("HYPOTHESIS_CONFIDENCE"); v != "" {
		if cfg.Confidence, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return cfg, fmt.Errorf("HYPOTHESIS_CONFIDENCE: %w", err)
		}
	}
	if v := getenv("HYPOTHESIS_SEED"); v != "" {
		if cfg.Seed, err = strconv.ParseUint(strings.TrimSpace(v), 10, 64); err != nil {
			return cfg, fmt.Errorf("HYPOTHESIS_SEED: %w", err)
		}
	}
	return cfg, cfg.validate()
}

func (c config) validate() error {
	if c.BootIterations < 1 {
		return fmt.Errorf("boot iterations must be positive, got %d", c.BootIterations)
	}
	if !(c.Confidence > 0 && c.Confidence < 1) {
		return fmt.Errorf("confidence must be in (0, 1), got %v", c.Confidence)
	}
	return nil
}

func (c config) compareOptions() compareOptions {
	return compareOptions{
		TwoSided:       c.TwoSided,
		RemoveOutliers: c.RemoveOutliers,
		BootIterations: c.BootIterations,
		Confidence:     c.Confidence,
	}
}
