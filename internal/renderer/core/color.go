// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer, backend and overlay.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor indicates a color string could not be parsed.
var ErrInvalidColor = errors.New("invalid color")

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	// G and B are ignored in indexed mode.
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// Common colors.
var (
	ColorBlack   = Color{R: 0, G: 0, B: 0}
	ColorWhite   = Color{R: 255, G: 255, B: 255}
	ColorRed     = Color{R: 255, G: 0, B: 0}
	ColorGreen   = Color{R: 0, G: 255, B: 0}
	ColorBlue    = Color{R: 0, G: 0, B: 255}
	ColorYellow  = Color{R: 255, G: 255, B: 0}
	ColorCyan    = Color{R: 0, G: 255, B: 255}
	ColorMagenta = Color{R: 255, G: 0, B: 255}
	ColorGray    = Color{R: 128, G: 128, B: 128}
)

var namedColors = map[string]Color{
	"black":   ColorBlack,
	"white":   ColorWhite,
	"red":     ColorRed,
	"green":   ColorGreen,
	"blue":    ColorBlue,
	"yellow":  ColorYellow,
	"cyan":    ColorCyan,
	"magenta": ColorMagenta,
	"gray":    ColorGray,
	"grey":    ColorGray,
}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from "#rrggbb" or "#rgb"; the leading '#'
// is optional.
func ColorFromHex(hex string) (Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 3 && len(hex) != 6 {
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
		}
	}
	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return Color{}, fmt.Errorf("%w: #%s", ErrInvalidColor, hex)
	}
	return fromColorful(c), nil
}

// ParseColor parses a theme color: "default", a name such as "yellow", a
// palette index such as "color208", or a hex value.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "default":
		return ColorDefault, nil
	case strings.HasPrefix(s, "color"):
		n, err := strconv.ParseUint(strings.TrimPrefix(s, "color"), 10, 8)
		if err != nil {
			return Color{}, fmt.Errorf("%w: %s", ErrInvalidColor, s)
		}
		return ColorFromIndex(uint8(n)), nil
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	return ColorFromHex(s)
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are identical.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a readable representation.
func (c Color) String() string {
	switch {
	case c.Default:
		return "default"
	case c.Indexed:
		return fmt.Sprintf("color%d", c.R)
	default:
		return c.ToHex()
	}
}

// ToHex returns the color as "#rrggbb".
func (c Color) ToHex() string {
	return c.colorful().Hex()
}

// Blend mixes c toward other in CIE-Lab space. amount 0 keeps c, 1 yields
// other. Indexed and default colors cannot be mixed and switch at 0.5.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount).Clamped())
}

// Lighten raises the lightness by amount (0-1) in HCL space.
func (c Color) Lighten(amount float64) Color {
	return c.adjustLightness(amount)
}

// Darken lowers the lightness by amount (0-1) in HCL space.
func (c Color) Darken(amount float64) Color {
	return c.adjustLightness(-amount)
}

func (c Color) adjustLightness(delta float64) Color {
	if c.Indexed || c.Default {
		return c
	}
	h, chroma, l := c.colorful().Hcl()
	l = min(max(l+delta, 0), 1)
	return fromColorful(colorful.Hcl(h, chroma, l).Clamped())
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.RGB255()
	return ColorFromRGB(r, g, b)
}
