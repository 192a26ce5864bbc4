package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// MainGame plays a live session.
type MainGame struct {
	env Env
	s   *session.Session
}

// NewMainGame returns the in-game handler for s.
func NewMainGame(env Env, s *session.Session) *MainGame {
	return &MainGame{env: env, s: s}
}

// Session returns the live session.
func (h *MainGame) Session() *session.Session { return h.s }

// Render draws the map and HUD.
func (h *MainGame) Render(g *ui.Grid) {
	ui.RenderGame(g, h.s)
}

// HandleEvent turns input into player actions. Each successful action is
// followed by the monsters' turns.
func (h *MainGame) HandleEvent(ctx context.Context, ev tcell.Event) (Handler, error) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		h.s.SetMouse(x, y)
		return h, nil
	case *tcell.EventKey:
		return h.handleKey(ctx, ev)
	}
	return h, nil
}

func (h *MainGame) handleKey(ctx context.Context, ev *tcell.EventKey) (Handler, error) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return h, ErrExitRequested
	}
	if keyRune(ev) == 'v' {
		return NewHistoryViewer(h, h.s), nil
	}

	action := h.action(ctx, ev)
	if action == nil {
		if r := keyRune(ev); r != 0 {
			h.s.Log.AddMessage(fmt.Sprintf("Unknown command %q.", r), palette.Invalid)
		}
		return h, nil
	}

	if err := action(); err != nil {
		var impossible *session.ImpossibleError
		if errors.As(err, &impossible) {
			h.s.Log.AddMessage(impossible.Reason, palette.Impossible)
			return h, nil
		}
		return h, err
	}

	h.s.HandleEnemyTurns()
	h.s.UpdateFOV()
	if !h.s.Player.IsAlive() {
		return NewGameOver(h.env, h.s), nil
	}
	return h, nil
}

// action maps a key to the player action it triggers, or nil.
func (h *MainGame) action(ctx context.Context, ev *tcell.EventKey) func() error {
	if d, ok := moveKeys[ev.Key()]; ok {
		return func() error { return h.s.MovePlayer(d.dx, d.dy) }
	}

	r := keyRune(ev)
	if d, ok := moveRunes[r]; ok {
		return func() error { return h.s.MovePlayer(d.dx, d.dy) }
	}
	switch {
	case waitRunes[r]:
		return h.s.Wait
	case r == '>':
		return func() error { return h.s.Descend(ctx) }
	}
	return nil
}
