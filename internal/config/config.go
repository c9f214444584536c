// Package config provides YAML-based configuration for the game tuning,
// the leaderboard client and the API server.
package config

import (
	"time"

	"github.com/avolkov/snakeboard/internal/snake"
)

// Config is the full application configuration.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Client ClientConfig `yaml:"client"`
	Server ServerConfig `yaml:"server"`
}

// GameConfig tunes the simulation timing. All durations in milliseconds.
type GameConfig struct {
	BaseIntervalMs int `yaml:"base_interval_ms"`
	IntervalStepMs int `yaml:"interval_step_ms"`
	MinIntervalMs  int `yaml:"min_interval_ms"`
	FoodsPerStep   int `yaml:"foods_per_step"`

	CrumbleMs     int `yaml:"crumble_ms"`
	StaggerStepMs int `yaml:"stagger_step_ms"`
	MaxStaggerMs  int `yaml:"max_stagger_ms"`
	FadeMs        int `yaml:"fade_ms"`
}

// ClientConfig points the game at a leaderboard API server.
type ClientConfig struct {
	// API is the leaderboard base URL. Empty disables the leaderboard;
	// the game is fully playable without it.
	API string `yaml:"api"`
}

// ServerConfig configures the `serve` command.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
}

// Default returns the standard configuration.
func Default() Config {
	t := snake.DefaultTuning()
	return Config{
		Game: GameConfig{
			BaseIntervalMs: int(t.BaseInterval / time.Millisecond),
			IntervalStepMs: int(t.IntervalStep / time.Millisecond),
			MinIntervalMs:  int(t.MinInterval / time.Millisecond),
			FoodsPerStep:   t.FoodsPerStep,
			CrumbleMs:      int(t.CrumbleDuration / time.Millisecond),
			StaggerStepMs:  int(t.StaggerStep / time.Millisecond),
			MaxStaggerMs:   int(t.MaxStagger / time.Millisecond),
			FadeMs:         int(t.FadeDuration / time.Millisecond),
		},
		Client: ClientConfig{},
		Server: ServerConfig{
			Addr:   ":8489",
			DBPath: "~/.snakeboard/leaderboard.db",
		},
	}
}

// Tuning converts the game section into the simulation's tuning struct.
// Zero or negative fields fall back to the defaults so a partial YAML
// file cannot produce a degenerate game.
func (g GameConfig) Tuning() snake.Tuning {
	t := snake.DefaultTuning()
	if g.BaseIntervalMs > 0 {
		t.BaseInterval = time.Duration(g.BaseIntervalMs) * time.Millisecond
	}
	if g.IntervalStepMs > 0 {
		t.IntervalStep = time.Duration(g.IntervalStepMs) * time.Millisecond
	}
	if g.MinIntervalMs > 0 {
		t.MinInterval = time.Duration(g.MinIntervalMs) * time.Millisecond
	}
	if g.FoodsPerStep > 0 {
		t.FoodsPerStep = g.FoodsPerStep
	}
	if g.CrumbleMs > 0 {
		t.CrumbleDuration = time.Duration(g.CrumbleMs) * time.Millisecond
	}
	if g.StaggerStepMs > 0 {
		t.StaggerStep = time.Duration(g.StaggerStepMs) * time.Millisecond
	}
	if g.MaxStaggerMs > 0 {
		t.MaxStagger = time.Duration(g.MaxStaggerMs) * time.Millisecond
	}
	if g.FadeMs > 0 {
		t.FadeDuration = time.Duration(g.FadeMs) * time.Millisecond
	}
	return t
}
