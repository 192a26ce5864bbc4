package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/anotherrogue/internal/palette"
)

// Orientation selects the axis a line extends along.
type Orientation int

const (
	// Horizontal lines extend their length along x.
	Horizontal Orientation = iota
	// Vertical lines extend their length along y.
	Vertical
)

// String returns the orientation name.
func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

// DrawLine fills a run of cells with one glyph and color triple. Length runs
// along the orientation axis, thickness across it.
func DrawLine(g *Grid, o Orientation, x, y, length, thickness int, c Cell) {
	switch o {
	case Horizontal:
		Fill(g, x, y, length, thickness, c)
	case Vertical:
		Fill(g, x, y, thickness, length, c)
	default:
		panic(fmt.Sprintf("ui: unknown orientation %d", o))
	}
}

// Fill writes c to every cell of the rectangle. Any cell outside the grid panics.
func Fill(g *Grid, x, y, width, height int, c Cell) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			g.Set(cx, cy, c)
		}
	}
}

// FillBg blanks the rectangle to spaces on bg, keeping the foreground colors.
func FillBg(g *Grid, x, y, width, height int, bg tcell.Color) {
	for cy := y; cy < y+height; cy++ {
		for cx := x; cx < x+width; cx++ {
			c := g.At(cx, cy)
			c.Rune = ' '
			c.Bg = bg
			g.Set(cx, cy, c)
		}
	}
}

// Print writes text starting at (x, y) in fg, keeping each cell's background.
// Text past the right edge is clipped; wide runes take two columns.
func Print(g *Grid, x, y int, text string, fg tcell.Color) {
	if y < 0 || y >= g.height {
		return
	}
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > g.width {
			return
		}
		if x >= 0 {
			c := g.At(x, y)
			c.Rune, c.Fg = r, fg
			g.Set(x, y, c)
			for i := 1; i < w; i++ {
				pad := g.At(x+i, y)
				pad.Rune = ' '
				g.Set(x+i, y, pad)
			}
		}
		x += w
	}
}

// PrintCentered prints text horizontally centered on column cx.
func PrintCentered(g *Grid, cx, y int, text string, fg tcell.Color) {
	Print(g, cx-runewidth.StringWidth(text)/2, y, text, fg)
}

// Dim darkens the whole grid, used behind popups.
func Dim(g *Grid) {
	for i, c := range g.cells {
		c.Fg = palette.Darken(c.Fg, 0.875)
		c.Bg = palette.Darken(c.Bg, 0.875)
		g.cells[i] = c
	}
}
