package config

import (
	"flag"
	"strings"
	"testing"

	"github.com/rook-computer/softfb/internal/raster"
)

func lookupMap(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromLookup(Defaults(), lookupMap(map[string]string{
		EnvDevice:     "/dev/fb1",
		EnvFPS:        "60",
		EnvDamage:     "true",
		EnvBackground: "#ffdc00",
		EnvForeground: "9000ff",
		EnvScene:      "damage",
		EnvInspect:    ":8081",
		EnvDebug:      "1",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Device != "/dev/fb1" || cfg.FPS != 60 || !cfg.DamageTracking || cfg.Scene != "damage" || cfg.InspectAddr != ":8081" || !cfg.Debug {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Background != raster.RGB(0xFF, 0xDC, 0x00) {
		t.Errorf("Background = %v", cfg.Background)
	}
	if cfg.Foreground != raster.RGB(0x90, 0x00, 0xFF) {
		t.Errorf("Foreground = %v", cfg.Foreground)
	}
	if cfg.DevMode {
		t.Error("unset DevMode changed")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromLookup(Defaults(), lookupMap(nil))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Defaults() {
		t.Errorf("empty env changed defaults: %+v", cfg)
	}
	if cfg.DamageTracking {
		t.Error("damage tracking should be opt in")
	}
}

func TestFromEnvErrors(t *testing.T) {
	tests := map[string]map[string]string{
		EnvFPS:        {EnvFPS: "fast"},
		EnvDamage:     {EnvDamage: "sometimes"},
		EnvBackground: {EnvBackground: "#zzzzzz"},
		"fps":         {EnvFPS: "0"},
	}
	for want, env := range tests {
		t.Run(want, func(t *testing.T) {
			_, err := fromLookup(Defaults(), lookupMap(env))
			if err == nil || !strings.Contains(err.Error(), want) {
				t.Errorf("err = %v, want mention of %s", err, want)
			}
		})
	}
}

func TestBindFlags(t *testing.T) {
	cfg := Defaults()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	BindFlags(fs, &cfg)
	if err := fs.Parse([]string{"-fps", "12", "-damage", "-bg", "#000000", "-scene", "sprites"}); err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 12 || !cfg.DamageTracking || cfg.Background != raster.Black || cfg.Scene != "sprites" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if err := fs.Parse([]string{"-fg", "nope"}); err == nil {
		t.Error("bad color flag accepted")
	}
}

func TestParseFormatColor(t *testing.T) {
	for _, s := range []string{"#000000", "#ffffff", "#9000ff", "#101820"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", s, err)
		}
		if got := FormatColor(c); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
	if c, err := ParseColor("#fd0"); err != nil || c != raster.RGB(0xFF, 0xDD, 0x00) {
		t.Errorf("short form = %v, %v", c, err)
	}
}
