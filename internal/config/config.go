// Package config holds the environment-driven defaults shared by every
// internal/maincmd subcommand, so the REPL and the one-shot run command
// read their defaults from one place instead of each parsing its own
// flags and env vars.
package config

import "github.com/caarlos0/env/v6"

// Config is populated from environment variables by Load. No command-line
// flag overrides these fields; the env var (or its envDefault) is the only
// source of each value.
type Config struct {
	// HistoryFile is the readline history file the repl subcommand
	// appends to across invocations.
	HistoryFile string `env:"SKEME_HISTORY_FILE" envDefault:".skeme_history"`

	// GCTrace, if set, makes every Collect pass print the number of
	// values and scopes it tombstoned to stderr.
	GCTrace bool `env:"SKEME_GC_TRACE" envDefault:"false"`

	// MaxDepth bounds Eval's recursion depth; 0 means unbounded (bounded
	// only by the host stack, per the concurrency model's non-goal of
	// not implementing tail-call optimization).
	MaxDepth int `env:"SKEME_MAX_DEPTH" envDefault:"0"`
}

// Load reads a Config from the process environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
