package handler

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// Popup shows a message over its dimmed parent until a key is pressed.
type Popup struct {
	parent Handler
	text   string
}

// NewPopup returns a popup that goes back to parent when dismissed.
func NewPopup(parent Handler, text string) *Popup {
	return &Popup{parent: parent, text: text}
}

// Render draws the parent dimmed, then the message box on top.
func (p *Popup) Render(g *ui.Grid) {
	p.parent.Render(g)
	ui.Dim(g)

	lines := ui.Wrap(p.text, max(1, g.Width()/2))
	textWidth := 0
	for _, l := range lines {
		textWidth = max(textWidth, runewidth.StringWidth(l))
	}

	w := min(textWidth+4, g.Width())
	h := min(len(lines)+2, g.Height())
	x := (g.Width() - w) / 2
	y := (g.Height() - h) / 2

	ui.Fill(g, x, y, w, h, ui.Cell{Rune: ' ', Fg: palette.White, Bg: palette.Black})
	ui.DrawFrame(g, x, y, w, h, "", palette.Border)
	for i, l := range lines {
		ui.PrintCentered(g, g.Width()/2, y+1+i, l, palette.White)
	}
}

// HandleEvent returns to the parent on any key.
func (p *Popup) HandleEvent(_ context.Context, ev tcell.Event) (Handler, error) {
	if _, ok := ev.(*tcell.EventKey); ok {
		return p.parent, nil
	}
	return p, nil
}

// Session exposes the parent's session, if it has one.
func (p *Popup) Session() *session.Session {
	s, _ := SessionOf(p.parent)
	return s
}
