package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/anotherrogue/internal/entity"
	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/world"
)

var (
	lightWall  = palette.MustParseHex("#826E32")
	lightFloor = palette.MustParseHex("#C8B432")
	darkWall   = palette.MustParseHex("#000064")
	darkFloor  = palette.MustParseHex("#323296")
)

// RenderGame draws everything an in-session screen shows: map, frame,
// message log, HP bar, dungeon level and the mouse tooltip.
func RenderGame(g *Grid, s *session.Session) {
	RenderMap(g, s.Map)
	RenderLayoutFrame(g)

	top := HUDTop(g)
	logX := g.Width()/2 + 1
	RenderMessages(g, s.Log.Messages(), logX, top+1, g.Width()-logX-1, HUDHeight-2)

	if f := s.Player.Fighter; f != nil && f.MaxHP > 0 {
		RenderStatusBar(g, f.HP, f.MaxHP, barWidth)
	}
	RenderDungeonLevel(g, s.Level, barX, g.Height()-levelFromBase)
	RenderNamesAtMouse(g, barX, g.Height()-namesFromBase, s)
}

// RenderMap draws the part of the map that fits above the HUD. Visible tiles
// use light colors, remembered ones dark colors; only visible entities are drawn.
func RenderMap(g *Grid, m *world.GameMap) {
	w := min(m.Width, g.Width())
	h := min(m.Height, HUDTop(g))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case m.IsVisible(x, y):
				g.Set(x, y, tileCell(m.Tiles[y][x], true))
			case m.IsExplored(x, y):
				g.Set(x, y, tileCell(m.Tiles[y][x], false))
			}
		}
	}

	for _, order := range []entity.RenderOrder{entity.OrderCorpse, entity.OrderItem, entity.OrderActor} {
		for _, e := range m.Entities {
			if e.Order != order || e.X >= w || e.Y >= h || !m.IsVisible(e.X, e.Y) {
				continue
			}
			c := g.At(e.X, e.Y)
			c.Rune, c.Fg = e.Glyph, e.Color
			g.Set(e.X, e.Y, c)
		}
	}
}

// tileCell returns the appropriate cell for a tile.
func tileCell(t world.Tile, lit bool) Cell {
	c := Cell{Rune: t.Rune(), Fg: darkFloor, Bg: palette.Black}
	switch {
	case t == world.TileWall && lit:
		c.Fg = lightWall
	case t == world.TileWall:
		c.Fg = darkWall
	case t == world.TileDownStairs:
		c.Fg = palette.White
	case lit:
		c.Fg = lightFloor
	}
	return c
}

// RenderMessages fills the box at (x, y) of the given size with the newest
// messages, wrapped to width, the newest on the bottom line.
func RenderMessages(g *Grid, msgs []session.Message, x, y, width, height int) {
	if width <= 0 {
		return
	}
	row := height - 1
	for i := len(msgs) - 1; i >= 0 && row >= 0; i-- {
		lines := Wrap(msgs[i].FullText(), width)
		for j := len(lines) - 1; j >= 0 && row >= 0; j-- {
			Print(g, x, y+row, lines[j], msgs[i].Color)
			row--
		}
	}
}

// Wrap splits text into lines no wider than width, honoring embedded newlines.
func Wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.ReplaceAll(para, "\t", "    ")
		lines = append(lines, strings.Split(runewidth.Wrap(para, width), "\n")...)
	}
	return lines
}

// DrawFrame draws a single-line box with an optional centered title.
func DrawFrame(g *Grid, x, y, width, height int, title string, fg tcell.Color) {
	set := func(cx, cy int, r rune) {
		c := g.At(cx, cy)
		c.Rune, c.Fg = r, fg
		g.Set(cx, cy, c)
	}

	for cx := x + 1; cx < x+width-1; cx++ {
		set(cx, y, '─')
		set(cx, y+height-1, '─')
	}
	for cy := y + 1; cy < y+height-1; cy++ {
		set(x, cy, '│')
		set(x+width-1, cy, '│')
	}
	set(x, y, '┌')
	set(x+width-1, y, '┐')
	set(x, y+height-1, '└')
	set(x+width-1, y+height-1, '┘')

	if title != "" {
		PrintCentered(g, x+width/2, y, " "+title+" ", fg)
	}
}
