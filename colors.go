package termcore

import "image/color"

// Color is the tagged union from spec §3: a cell's foreground, background,
// or underline color is always one of these four variants.
type Color interface {
	color.Color
	isTermColor()
}

// DefaultColor means "use the terminal's default foreground/background",
// resolved by ResolveColor based on which side (fg/bg) is being asked.
type DefaultColor struct{}

func (DefaultColor) isTermColor() {}
func (DefaultColor) RGBA() (r, g, b, a uint32) { return 0, 0, 0, 0 }

// IndexedColor references one of the 256 palette entries.
type IndexedColor struct{ Index uint8 }

func (IndexedColor) isTermColor() {}
func (c IndexedColor) RGBA() (r, g, b, a uint32) {
	rgba := DefaultPalette[c.Index]
	return rgba.RGBA()
}

// BrightColor references one of the 8 "bright" ANSI colors (SGR 90-97/100-107),
// independent of the 256-color indexed palette so a renderer can apply a
// distinct bold/bright treatment if desired.
type BrightColor struct{ Index uint8 } // 0-7

func (BrightColor) isTermColor() {}
func (c BrightColor) RGBA() (r, g, b, a uint32) {
	idx := c.Index % 8
	return DefaultPalette[8+idx].RGBA()
}

// TrueColor is a direct 24-bit RGB value (SGR 38/48;2;r;g;b).
type TrueColor struct{ R, G, B uint8 }

func (TrueColor) isTermColor() {}
func (c TrueColor) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}.RGBA()
}

// DefaultPalette is the standard 256-color palette: 16 named colors (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	// Standard colors (0-7)
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	// Bright colors (8-15)
	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White

	// 216 colors (16-231) generated in init below.

	// Grayscale (232-255) generated in init below.
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{
					R: uint8(r * 51),
					G: uint8(g * 51),
					B: uint8(b * 51),
					A: 255,
				}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{R: gray, G: gray, B: gray, A: 255}
	}
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{R: 229, G: 229, B: 229, A: 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// DefaultCursorColor is the default cursor rendering color (light gray).
var DefaultCursorColor = color.RGBA{R: 229, G: 229, B: 229, A: 255}

// ResolveColor converts any Color (or nil, or an arbitrary color.Color) to
// concrete RGBA using DefaultPalette. fg selects which default applies when
// c is nil or DefaultColor.
func ResolveColor(c color.Color, fg bool) color.RGBA {
	if c == nil {
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}

	switch v := c.(type) {
	case color.RGBA:
		return v
	case DefaultColor:
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	case IndexedColor:
		return DefaultPalette[v.Index]
	case BrightColor:
		return DefaultPalette[8+(v.Index%8)]
	case TrueColor:
		return color.RGBA{R: v.R, G: v.G, B: v.B, A: 255}
	default:
		r, g, b, a := c.RGBA()
		return color.RGBA{
			R: uint8(r >> 8),
			G: uint8(g >> 8),
			B: uint8(b >> 8),
			A: uint8(a >> 8),
		}
	}
}
