package theme

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/go-quill/quill/pkg/env"
	"github.com/go-quill/quill/pkg/graphics"
)

// Overrides is the on-disk form of a theme override file.
//
//	colors:
//	  text-color: "#e8e8e8"
//	  accent: steelblue
//	sizes:
//	  text-size: 14
//
// Color values are hex strings ("#rgb", "#rrggbb", "#aarrggbb") or SVG 1.1
// color names. Size values are numbers of display points.
type Overrides struct {
	Colors map[string]string  `yaml:"colors"`
	Sizes  map[string]float64 `yaml:"sizes"`
}

var colorKeys = map[string]env.Key[graphics.Color]{
	"window-background": WindowBackground,
	"text-color":        TextColor,
	"disabled-text":     DisabledText,
	"button-light":      ButtonLight,
	"button-dark":       ButtonDark,
	"button-hot":        ButtonHot,
	"button-active":     ButtonActive,
	"border-color":      BorderColor,
	"accent":            Accent,
	"spinner-color":     SpinnerColor,
}

var sizeKeys = map[string]env.Key[float64]{
	"text-size":     TextSize,
	"border-width":  BorderWidth,
	"basic-padding": BasicPadding,
	"widget-gap":    WidgetGap,
}

// Load reads a YAML override file and applies it on top of the given
// environment. The base environment is returned unchanged on error.
func Load(e env.Env, path string) (env.Env, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return e, fmt.Errorf("theme: reading %s: %w", path, err)
	}
	var ov Overrides
	if err := yaml.Unmarshal(raw, &ov); err != nil {
		return e, fmt.Errorf("theme: parsing %s: %w", path, err)
	}
	return Apply(e, ov)
}

// Apply binds the overrides on top of the given environment.
func Apply(e env.Env, ov Overrides) (env.Env, error) {
	result := e
	for name, raw := range ov.Colors {
		key, ok := colorKeys[name]
		if !ok {
			return e, fmt.Errorf("theme: unknown color key %q", name)
		}
		c, err := ParseColor(raw)
		if err != nil {
			return e, fmt.Errorf("theme: key %q: %w", name, err)
		}
		result = env.Adding(result, key, c)
	}
	for name, v := range ov.Sizes {
		key, ok := sizeKeys[name]
		if !ok {
			return e, fmt.Errorf("theme: unknown size key %q", name)
		}
		result = env.Adding(result, key, v)
	}
	return result, nil
}

// ParseColor parses a hex color string or an SVG 1.1 color name.
func ParseColor(s string) (graphics.Color, error) {
	s = strings.TrimSpace(s)
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return graphics.FromRGBA(named), nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok {
		return 0, fmt.Errorf("unknown color %q", s)
	}
	switch len(hex) {
	case 3:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
		fallthrough
	case 6:
		hex = "ff" + hex
		fallthrough
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid hex color %q", s)
		}
		return graphics.Color(v), nil
	default:
		return 0, fmt.Errorf("invalid hex color %q", s)
	}
}
