package gbi

import (
	"github.com/clktmr/n64hle/hle/renderer"
	"github.com/clktmr/n64hle/hle/viewport"
	"github.com/clktmr/n64hle/logger"
)

// DefaultInstructionBudget bounds the number of commands executed per
// display list. Lists looping forever end when it is used up.
const DefaultInstructionBudget = 1 << 20

// Config holds the settings of a Session.
type Config struct {
	HostWidth, HostHeight int
	Upscale               float32
	Widescreen            bool

	// GameName is reported alongside detected microcode.
	GameName string

	// Seed of the cache eviction. Zero seeds from the clock.
	Seed uint64

	Log    *logger.Logger
	Raster renderer.Rasterizer

	InstructionBudget int
}

func defaultConfig() Config {
	return Config{
		HostWidth:         viewport.LogicalWidth,
		HostHeight:        viewport.LogicalHeight,
		Upscale:           1,
		InstructionBudget: DefaultInstructionBudget,
	}
}

// Option configures a Session.
type Option func(*Config)

// HostSize sets the size of the host render target.
func HostSize(w, h int) Option {
	return func(c *Config) {
		c.HostWidth, c.HostHeight = w, h
	}
}

// Upscale sets the internal upscale factor.
func Upscale(f float32) Option {
	return func(c *Config) {
		c.Upscale = f
	}
}

// Widescreen compresses the image horizontally for 16:9 targets.
func Widescreen(enable bool) Option {
	return func(c *Config) {
		c.Widescreen = enable
	}
}

func GameName(name string) Option {
	return func(c *Config) {
		c.GameName = name
	}
}

// RandomSeed makes cache eviction reproducible.
func RandomSeed(seed uint64) Option {
	return func(c *Config) {
		c.Seed = seed
	}
}

// Logger sets the log diagnostics are written to. The default is the central
// logger.
func Logger(l *logger.Logger) Option {
	return func(c *Config) {
		c.Log = l
	}
}

// Rasterizer sets the consumer of triangle batches.
func Rasterizer(r renderer.Rasterizer) Option {
	return func(c *Config) {
		c.Raster = r
	}
}

// InstructionBudget sets the maximum number of commands per display list.
func InstructionBudget(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.InstructionBudget = n
		}
	}
}
