// Package config resolves runtime settings from environment variables and
// command line flags. Environment values become the flag defaults, so an
// explicit flag always wins.
package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/rook-computer/softfb/internal/raster"
)

const (
	EnvDevice     = "SOFTFB_FB_DEVICE"
	EnvFPS        = "SOFTFB_FPS"
	EnvDamage     = "SOFTFB_DAMAGE"
	EnvBackground = "SOFTFB_BACKGROUND"
	EnvForeground = "SOFTFB_FOREGROUND"
	EnvScene      = "SOFTFB_SCENE"
	EnvImage      = "SOFTFB_IMAGE"
	EnvInspect    = "SOFTFB_INSPECT"
	EnvDevMode    = "SOFTFB_DEV"
	EnvDebug      = "SOFTFB_DEBUG"
	EnvLogPath    = "SOFTFB_LOG"
	EnvStdioLog   = "SOFTFB_STDIO_LOG"
)

type Config struct {
	// Device is the framebuffer device node used by the device binary.
	Device string
	// FPS is the presentation rate of the frame loop.
	FPS int
	// DamageTracking limits presentation to the dirty rectangle. Off means
	// every frame presents the whole buffer.
	DamageTracking bool

	Background raster.Color
	Foreground raster.Color

	Scene     string
	ImagePath string

	// InspectAddr, when set, starts the frame inspector HTTP server.
	InspectAddr string
	DevMode     bool

	Debug    bool
	LogPath  string
	StdioLog string
}

func Defaults() Config {
	return Config{
		Device:     "/dev/fb0",
		FPS:        30,
		Background: raster.RGB(0x10, 0x18, 0x20),
		Foreground: raster.RGB(0xF2, 0xAA, 0x4C),
		Scene:      "showcase",
		LogPath:    "./softfb-debug.log",
	}
}

// FromEnv overlays SOFTFB_* variables on defaults.
func FromEnv(defaults Config) (Config, error) {
	return fromLookup(defaults, os.LookupEnv)
}

func fromLookup(cfg Config, lookup func(string) (string, bool)) (Config, error) {
	str := func(key string, dst *string) {
		if raw, ok := lookup(key); ok && raw != "" {
			*dst = raw
		}
	}
	boolean := func(key string, dst *bool) error {
		raw, ok := lookup(key)
		if !ok || raw == "" {
			return nil
		}
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
		}
		*dst = parsed
		return nil
	}
	col := func(key string, dst *raster.Color) error {
		raw, ok := lookup(key)
		if !ok || raw == "" {
			return nil
		}
		parsed, err := ParseColor(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = parsed
		return nil
	}

	str(EnvDevice, &cfg.Device)
	str(EnvScene, &cfg.Scene)
	str(EnvImage, &cfg.ImagePath)
	str(EnvInspect, &cfg.InspectAddr)
	str(EnvLogPath, &cfg.LogPath)
	str(EnvStdioLog, &cfg.StdioLog)

	if raw, ok := lookup(EnvFPS); ok && raw != "" {
		fps, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be an integer (got %q): %w", EnvFPS, raw, err)
		}
		cfg.FPS = fps
	}
	for key, dst := range map[string]*bool{EnvDamage: &cfg.DamageTracking, EnvDevMode: &cfg.DevMode, EnvDebug: &cfg.Debug} {
		if err := boolean(key, dst); err != nil {
			return Config{}, err
		}
	}
	if err := col(EnvBackground, &cfg.Background); err != nil {
		return Config{}, err
	}
	if err := col(EnvForeground, &cfg.Foreground); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the frame loop cannot run with.
func (cfg Config) Validate() error {
	if cfg.FPS <= 0 || cfg.FPS > 1000 {
		return fmt.Errorf("fps must be in 1..1000 (got %d)", cfg.FPS)
	}
	if strings.TrimSpace(cfg.Scene) == "" {
		return fmt.Errorf("scene must not be empty")
	}
	return nil
}

// BindFlags registers one flag per setting on fs, defaulting to the current
// values of cfg. Parsing fs writes straight into cfg.
func BindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Device, "device", cfg.Device, "framebuffer device; also configurable via "+EnvDevice)
	fs.IntVar(&cfg.FPS, "fps", cfg.FPS, "frames per second; also configurable via "+EnvFPS)
	fs.BoolVar(&cfg.DamageTracking, "damage", cfg.DamageTracking, "present only the dirty rectangle; also configurable via "+EnvDamage)
	fs.Var((*colorValue)(&cfg.Background), "bg", "background color #rrggbb; also configurable via "+EnvBackground)
	fs.Var((*colorValue)(&cfg.Foreground), "fg", "foreground color #rrggbb; also configurable via "+EnvForeground)
	fs.StringVar(&cfg.Scene, "scene", cfg.Scene, "scene to run: showcase | sprites | damage; also configurable via "+EnvScene)
	fs.StringVar(&cfg.ImagePath, "image", cfg.ImagePath, "image file composited by the sprites scene; also configurable via "+EnvImage)
	fs.StringVar(&cfg.InspectAddr, "inspect", cfg.InspectAddr, "frame inspector listen address, empty disables; also configurable via "+EnvInspect)
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "permissive CORS on the inspector; also configurable via "+EnvDevMode)
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging; also configurable via "+EnvDebug)
	fs.StringVar(&cfg.LogPath, "log", cfg.LogPath, "debug log file; also configurable via "+EnvLogPath)
	fs.StringVar(&cfg.StdioLog, "stdio-log", cfg.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+EnvStdioLog)
}

// ParseColor parses a CSS style hex color such as "#ffdc00" or "#fd0".
func ParseColor(s string) (raster.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return raster.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return raster.RGB(r, g, b), nil
}

// FormatColor is the inverse of ParseColor.
func FormatColor(c raster.Color) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}

type colorValue raster.Color

func (v *colorValue) String() string {
	if v == nil {
		return ""
	}
	return FormatColor(raster.Color(*v))
}

func (v *colorValue) Set(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	*v = colorValue(c)
	return nil
}
