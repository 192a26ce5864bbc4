// Package palette holds the named colors used by the renderer and the message log.
package palette

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Named colors. Message colors double as the "color tag" of a log entry.
var (
	White = tcell.NewRGBColor(0xFF, 0xFF, 0xFF)
	Black = tcell.NewRGBColor(0x00, 0x00, 0x00)

	PlayerAttack = MustParseHex("#E0E0E0")
	EnemyAttack  = MustParseHex("#FFC0C0")
	PlayerDie    = MustParseHex("#FF3030")
	EnemyDie     = MustParseHex("#FFA030")

	Invalid    = MustParseHex("#FFFF00")
	Impossible = MustParseHex("#808080")
	Error      = MustParseHex("#FF4040")

	WelcomeText = MustParseHex("#20A0FF")
	Descend     = MustParseHex("#9F3FFF")
	MenuTitle   = MustParseHex("#FFFF3F")
	MenuText    = White

	BarText   = White
	BarFilled = MustParseHex("#006000")
	BarEmpty  = MustParseHex("#401010")

	Border = MustParseHex("#DCDCDC")
)

// ParseHex converts a hex color string (e.g., "#FF0000" or "FF0000") to a tcell.Color.
func ParseHex(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return FromColorful(c), nil
}

// MustParseHex converts a hex color string to tcell.Color, panicking on error.
func MustParseHex(hex string) tcell.Color {
	color, err := ParseHex(hex)
	if err != nil {
		panic(err)
	}
	return color
}

// FromColorful converts a colorful.Color into an RGB tcell.Color.
func FromColorful(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ToColorful converts a tcell.Color into colorful space.
// Colors without an RGB value (e.g. ColorDefault) come back as black.
func ToColorful(c tcell.Color) colorful.Color {
	r, g, b := c.RGB()
	if r < 0 {
		return colorful.Color{}
	}
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// Darken blends c toward black by amount (0 leaves it unchanged, 1 is black).
func Darken(c tcell.Color, amount float64) tcell.Color {
	return FromColorful(ToColorful(c).BlendRgb(colorful.Color{}, amount))
}
