package handler

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

const historyPage = 10

// HistoryViewer shows the full message log over the game and lets the player
// scroll through it.
type HistoryViewer struct {
	parent Handler
	s      *session.Session
	cursor int
}

// NewHistoryViewer opens the log of s, scrolled to the newest message.
func NewHistoryViewer(parent Handler, s *session.Session) *HistoryViewer {
	return &HistoryViewer{parent: parent, s: s, cursor: s.Log.Len() - 1}
}

// Cursor returns the index of the message shown on the bottom line.
func (h *HistoryViewer) Cursor() int { return h.cursor }

// Session exposes the parent's session. A viewer opened from the game-over
// screen has none to save.
func (h *HistoryViewer) Session() *session.Session {
	s, _ := SessionOf(h.parent)
	return s
}

// DiscardSave passes the request on to the parent when it is a Discarder.
// Save only asks when the viewer has no live session.
func (h *HistoryViewer) DiscardSave(path string) error {
	if d, ok := h.parent.(Discarder); ok {
		return d.DiscardSave(path)
	}
	return nil
}

// Render draws the parent and the log window over it.
func (h *HistoryViewer) Render(g *ui.Grid) {
	h.parent.Render(g)

	x, y := 3, 3
	w, hgt := g.Width()-6, g.Height()-6
	ui.Fill(g, x, y, w, hgt, ui.Cell{Rune: ' ', Fg: palette.White, Bg: palette.Black})
	ui.DrawFrame(g, x, y, w, hgt, "Message history", palette.Border)

	msgs := h.s.Log.Messages()
	if h.cursor >= 0 {
		ui.RenderMessages(g, msgs[:h.cursor+1], x+1, y+1, w-2, hgt-2)
	}
}

// HandleEvent scrolls on navigation keys and closes on anything else.
func (h *HistoryViewer) HandleEvent(_ context.Context, ev tcell.Event) (Handler, error) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return h, nil
	}

	last := h.s.Log.Len() - 1
	switch key.Key() {
	case tcell.KeyUp:
		h.scroll(-1, last)
	case tcell.KeyDown:
		h.scroll(1, last)
	case tcell.KeyPgUp:
		h.scroll(-historyPage, last)
	case tcell.KeyPgDn:
		h.scroll(historyPage, last)
	case tcell.KeyHome:
		h.cursor = min(0, last)
	case tcell.KeyEnd:
		h.cursor = last
	default:
		return h.parent, nil
	}
	return h, nil
}

// scroll moves the cursor, wrapping around only when it already sits at
// the end it is moving past.
func (h *HistoryViewer) scroll(by, last int) {
	if last < 0 {
		return
	}
	switch {
	case by < 0 && h.cursor == 0:
		h.cursor = last
	case by > 0 && h.cursor == last:
		h.cursor = 0
	default:
		h.cursor = max(0, min(last, h.cursor+by))
	}
}
