// Package timeouts provides centralized timeout values for I/O the
// dashboard performs outside the request path's in-memory work.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and MongoDB connectivity verification
//   - Load: reading the dataset once at startup
//   - Seed: bulk inserts by the operator CLI
package timeouts

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing = 2 * time.Second
	DefaultLoad = 30 * time.Second
	DefaultSeed = 60 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping = DefaultPing
	load = DefaultLoad
	seed = DefaultSeed
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Load returns the timeout for reading the dataset at startup.
func Load() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return load
}

// Seed returns the timeout for bulk inserts.
func Seed() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return seed
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping time.Duration
	Load time.Duration
	Seed time.Duration
}

// Configure sets custom timeout values. Zero values in the config are
// ignored, keeping the current (or default) values. Call it during startup
// before handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Load > 0 {
		load = cfg.Load
	}
	if cfg.Seed > 0 {
		seed = cfg.Seed
	}
}

// Reset restores all timeouts to their default values.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	load = DefaultLoad
	seed = DefaultSeed
}

// ConfigureFromEnv reads STAFFBOARD_TIMEOUT_PING, STAFFBOARD_TIMEOUT_LOAD
// and STAFFBOARD_TIMEOUT_SEED ("2s", "500ms", "2m"). Unset or invalid values
// are skipped. Returns the number of timeouts configured.
func ConfigureFromEnv() int {
	mu.Lock()
	defer mu.Unlock()

	configured := 0
	for _, e := range []struct {
		name string
		dst  *time.Duration
	}{
		{"STAFFBOARD_TIMEOUT_PING", &ping},
		{"STAFFBOARD_TIMEOUT_LOAD", &load},
		{"STAFFBOARD_TIMEOUT_SEED", &seed},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			*e.dst = d
			configured++
		}
	}
	return configured
}

// Current returns the current timeout configuration.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{Ping: ping, Load: load, Seed: seed}
}

// WithTimeout creates a context with timeout and returns a cancel function
// that logs a warning if the context ended because the deadline passed.
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Load(), logger, "dataset load")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
