// Package config loads the editor settings from a TOML file.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/bvisness/flowcanvas/app/core"
	"github.com/bvisness/flowcanvas/internal/log"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	Canvas CanvasConfig `toml:"canvas"`
	Edges  EdgesConfig  `toml:"edges"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width            int  `toml:"width"`
	Height           int  `toml:"height"`
	Maximized        bool `toml:"maximized"`
	MinimapThreshold int  `toml:"minimap_threshold"` // node count at which the minimap appears
}

type CanvasConfig struct {
	ZoomStep      float32 `toml:"zoom_step"`
	MinZoom       float32 `toml:"min_zoom"`
	MaxZoom       float32 `toml:"max_zoom"`
	DragThreshold float32 `toml:"drag_threshold"`
	PanKey        string  `toml:"pan_key"` // "ctrl", "shift", "alt" or "space"
}

type EdgesConfig struct {
	Stroke       string  `toml:"stroke"`
	Width        float32 `toml:"width"`
	Curvature    float32 `toml:"curvature"`
	HitTolerance float32 `toml:"hit_tolerance"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

func Default() *Config {
	return &Config{
		Window: WindowConfig{Width: 1280, Height: 800, MinimapThreshold: 10},
		Canvas: CanvasConfig{
			ZoomStep:      core.DefaultZoomStep,
			MinZoom:       core.DefaultMinZoom,
			MaxZoom:       core.DefaultMaxZoom,
			DragThreshold: 3,
			PanKey:        "ctrl",
		},
		Edges: EdgesConfig{Stroke: "#cfd8dc", Width: 3, Curvature: core.DefaultCurvature, HitTolerance: 6},
		Log:   LogConfig{Level: "info"},
	}
}

// Dir returns the flowcanvas config directory.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowcanvas")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config at path, or DefaultPath if path is empty. A missing
// file yields the defaults. Keys absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return Default(), fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.sanitize()
	return cfg, nil
}

// Save writes cfg to path, creating its directory.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

func (c *Config) sanitize() {
	def := Default()
	if c.Window.Width < 100 {
		c.Window.Width = 800
	}
	if c.Window.Height < 100 {
		c.Window.Height = 600
	}
	if c.Canvas.ZoomStep <= 1 {
		c.Canvas.ZoomStep = def.Canvas.ZoomStep
	}
	if c.Canvas.MinZoom <= 0 || c.Canvas.MaxZoom <= 0 || c.Canvas.MinZoom > c.Canvas.MaxZoom {
		c.Canvas.MinZoom, c.Canvas.MaxZoom = def.Canvas.MinZoom, def.Canvas.MaxZoom
	}
	if _, err := ParseHexColor(c.Edges.Stroke); err != nil {
		c.Edges.Stroke = def.Edges.Stroke
	}
}

// Options converts the canvas and edge settings for core.NewEditor.
func (c *Config) Options(logger *log.Logger) core.Options {
	opts := core.DefaultOptions()
	opts.ZoomStep = c.Canvas.ZoomStep
	opts.MinZoom = c.Canvas.MinZoom
	opts.MaxZoom = c.Canvas.MaxZoom
	opts.DragThreshold = c.Canvas.DragThreshold
	opts.Curvature = c.Edges.Curvature
	opts.HitTolerance = c.Edges.HitTolerance
	opts.Logger = logger
	return opts
}

func (c *Config) LogLevel() log.Level {
	return log.LevelFromString(c.Log.Level)
}

// EdgeColor returns the edge stroke as a raylib colour.
func (c *Config) EdgeColor() color.RGBA {
	col, err := ParseHexColor(c.Edges.Stroke)
	if err != nil {
		col, _ = ParseHexColor(Default().Edges.Stroke)
	}
	return col
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		hex += "ff"
	case 8:
	default:
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return rl.GetColor(uint(v)), nil
}
