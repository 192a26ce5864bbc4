package ui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/world"
)

// HUD geometry. Rows are measured from the bottom so the HUD keeps its shape
// on any grid tall enough to hold it.
const (
	// HUDHeight is the number of rows below the map viewport.
	HUDHeight = 7

	barX          = 1
	barWidth      = 20
	barFromBase   = 5 // status bar row = height - 5
	levelFromBase = 3
	namesFromBase = 6
)

// BorderCell is the solid cell used for frame rules.
var BorderCell = Cell{Rune: ' ', Fg: palette.Border, Bg: palette.Border}

// HUDTop returns the first HUD row, which holds the upper frame rule.
func HUDTop(g *Grid) int {
	return g.Height() - HUDHeight
}

// RenderStatusBar draws the HP bar: a fixed-width empty bar, the filled part
// scaled to current/maximum of totalWidth, and an "HP: cur/max" label.
// maximum must be positive.
func RenderStatusBar(g *Grid, current, maximum, totalWidth int) {
	if maximum <= 0 {
		panic(fmt.Sprintf("ui: status bar maximum %d must be positive", maximum))
	}
	y := g.Height() - barFromBase

	FillBg(g, barX, y, barWidth, 1, palette.BarEmpty)
	if filled := BarFill(current, maximum, totalWidth); filled > 0 {
		FillBg(g, barX, y, filled, 1, palette.BarFilled)
	}
	Print(g, barX+1, y, fmt.Sprintf("HP: %d/%d", current, maximum), palette.BarText)
}

// BarFill returns floor(current/maximum*totalWidth), never below zero.
func BarFill(current, maximum, totalWidth int) int {
	if current <= 0 {
		return 0
	}
	return current * totalWidth / maximum
}

// RenderDungeonLevel writes "Dungeon level: N" at (x, y).
func RenderDungeonLevel(g *Grid, level, x, y int) {
	Print(g, x, y, fmt.Sprintf("Dungeon level: %d", level), palette.White)
}

// NamesAt lists the entities at (x, y) as a capitalized, comma-separated
// string in map order. Cells outside the map or out of sight yield "".
func NamesAt(x, y int, m *world.GameMap) string {
	if !m.InBounds(x, y) || !m.IsVisible(x, y) {
		return ""
	}

	var names []string
	for _, e := range m.EntitiesAt(x, y) {
		names = append(names, e.Name)
	}
	return capitalize(strings.Join(names, ", "))
}

var lower = cases.Lower(language.Und)

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + lower.String(s[size:])
}

// RenderNamesAtMouse prints what is under the session's mouse position at (x, y).
func RenderNamesAtMouse(g *Grid, x, y int, s *session.Session) {
	Print(g, x, y, NamesAt(s.MouseX, s.MouseY, s.Map), palette.White)
}

// RenderLayoutFrame draws the static frame separating the map viewport from
// the HUD: a rule above and below the HUD, and vertical rules at the left
// edge, the middle and the right edge of the HUD.
func RenderLayoutFrame(g *Grid) {
	top := HUDTop(g)
	w, h := g.Width(), g.Height()

	DrawLine(g, Horizontal, 0, top, w, 1, BorderCell)
	DrawLine(g, Horizontal, 0, h-1, w, 1, BorderCell)
	for _, x := range []int{0, w / 2, w - 1} {
		DrawLine(g, Vertical, x, top, HUDHeight, 1, BorderCell)
	}
}
