// Package config собирает настройки запуска из .env, окружения и флагов.
// Приоритет: флаги > окружение > .env > значения по умолчанию.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Width  int `env:"ISOWORLD_WIDTH"  envDefault:"800"`
	Height int `env:"ISOWORLD_HEIGHT" envDefault:"400"`
	TPS    int `env:"ISOWORLD_TPS"    envDefault:"60"`

	Provider string `env:"ISOWORLD_PROVIDER" envDefault:"terrain"`
	WorldKey string `env:"ISOWORLD_KEY"      envDefault:"xyzzy"`

	Overdraw     float64 `env:"ISOWORLD_OVERDRAW"     envDefault:"0.1"`
	Acceleration float64 `env:"ISOWORLD_ACCELERATION" envDefault:"1"`
	Damping      float64 `env:"ISOWORLD_DAMPING"      envDefault:"0.95"`

	// DebugAddr - адрес отладочного HTTP-сервера. Пустой адрес отключает сервер.
	DebugAddr     string `env:"ISOWORLD_DEBUG_ADDR"`
	SnapshotEvery int    `env:"ISOWORLD_SNAPSHOT_EVERY" envDefault:"6"`

	// Demo - демо-агент кликает на каждом Demo-м снимке. 0 отключает агента.
	Demo int `env:"ISOWORLD_DEMO" envDefault:"0"`

	RecordPath string `env:"ISOWORLD_RECORD"`
	ReplayPath string `env:"ISOWORLD_REPLAY"`
}

// Load читает необязательный .env-файл и окружение.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// BindFlags регистрирует флаги поверх уже загруженных значений.
func (c *Config) BindFlags(set *flag.FlagSet) {
	set.IntVar(&c.Width, "width", c.Width, "canvas width in pixels")
	set.IntVar(&c.Height, "height", c.Height, "canvas height in pixels")
	set.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	set.StringVar(&c.Provider, "provider", c.Provider, "world provider: city, terrain or space")
	set.StringVar(&c.WorldKey, "key", c.WorldKey, "initial world key")
	set.Float64Var(&c.Overdraw, "overdraw", c.Overdraw, "extra tiles around the viewport, as a fraction")
	set.StringVar(&c.DebugAddr, "debug-addr", c.DebugAddr, "debug HTTP server address (empty to disable)")
	set.IntVar(&c.Demo, "demo", c.Demo, "let the demo agent click every N-th snapshot (0 to disable)")
	set.StringVar(&c.RecordPath, "record", c.RecordPath, "write an input recording to this path")
	set.StringVar(&c.ReplayPath, "replay", c.ReplayPath, "replay a recording headless and exit")
}

// Validate проверяет диапазоны значений.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.TPS))
	}
	if c.Provider == "" {
		errs = append(errs, errors.New("provider is required"))
	}
	if c.Overdraw < 0 {
		errs = append(errs, fmt.Errorf("overdraw must not be negative, got %v", c.Overdraw))
	}
	if c.Acceleration <= 0 {
		errs = append(errs, fmt.Errorf("acceleration must be positive, got %v", c.Acceleration))
	}
	if c.Damping <= 0 || c.Damping >= 1 {
		errs = append(errs, fmt.Errorf("damping must be in (0,1), got %v", c.Damping))
	}
	if c.Demo < 0 {
		errs = append(errs, fmt.Errorf("demo must not be negative, got %d", c.Demo))
	}
	if c.RecordPath != "" && c.ReplayPath != "" {
		errs = append(errs, errors.New("record and replay are mutually exclusive"))
	}
	return errors.Join(errs...)
}
