package config

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Theme carries the rendering defaults handed to view adapters at construction.
type Theme struct {
	Background string `yaml:"background"`
	Foreground string `yaml:"foreground"`
	Path       string `yaml:"path"`
	Highlight  string `yaml:"highlight"`
	Hover      string `yaml:"hover"`

	PointSize     int `yaml:"point_size"`
	HighlightSize int `yaml:"highlight_size"`
	PathWidth     int `yaml:"path_width"`
}

// DefaultTheme is white background, black text, a translucent grey path and a
// yellow highlight marker.
func DefaultTheme() Theme {
	return Theme{
		Background:    "#ffffff",
		Foreground:    "#000000",
		Path:          "#646464",
		Highlight:     "#ffff00",
		Hover:         "#ffa500",
		PointSize:     10,
		HighlightSize: 20,
		PathWidth:     2,
	}
}

// LoadTheme reads a YAML theme from path on top of DefaultTheme. An empty path
// returns the defaults.
func LoadTheme(path string) (Theme, error) {
	theme := DefaultTheme()
	if path == "" {
		return theme, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("read theme: %w", err)
	}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, fmt.Errorf("parse theme %s: %w", path, err)
	}
	if theme.PointSize <= 0 || theme.HighlightSize <= 0 || theme.PathWidth <= 0 {
		return Theme{}, fmt.Errorf("parse theme %s: sizes must be positive", path)
	}
	for name, hex := range theme.colors() {
		if _, err := colorful.Hex(hex); err != nil {
			return Theme{}, fmt.Errorf("parse theme %s: %s: %w", path, name, err)
		}
	}
	return theme, nil
}

func (t Theme) colors() map[string]string {
	return map[string]string{
		"background": t.Background,
		"foreground": t.Foreground,
		"path":       t.Path,
		"highlight":  t.Highlight,
		"hover":      t.Hover,
	}
}
