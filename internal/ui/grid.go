// Package ui draws game state onto a character grid and presents it on a terminal using tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
)

// Default grid geometry.
const (
	DefaultWidth  = 100
	DefaultHeight = 50
)

// Cell is one glyph with its foreground and background colors.
type Cell struct {
	Rune rune
	Fg   tcell.Color
	Bg   tcell.Color
}

// Style converts the cell colors to a tcell style.
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}

var blank = Cell{Rune: ' ', Fg: palette.White, Bg: palette.Black}

// Grid is a fixed-size frame buffer of cells, row-major.
type Grid struct {
	width, height int
	cells         []Cell
}

// NewGrid creates a blank grid.
func NewGrid(width, height int) *Grid {
	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	g.Clear()
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Clear resets every cell to a blank space on black.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = blank
	}
}

// InBounds returns true if the cell exists.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y). It panics when out of bounds.
func (g *Grid) At(x, y int) Cell {
	return g.cells[g.index(x, y)]
}

// Set writes a cell. It panics when out of bounds.
func (g *Grid) Set(x, y int, c Cell) {
	g.cells[g.index(x, y)] = c
}

func (g *Grid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("ui: cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// Row returns the glyphs of row y as a string, for inspection in tests and logs.
func (g *Grid) Row(y int) string {
	runes := make([]rune, g.width)
	for x := range runes {
		runes[x] = g.At(x, y).Rune
	}
	return string(runes)
}
