package handler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// GameOver is shown once the player has died. It keeps the session for
// drawing but does not expose it: a dead game is never saved, and leaving
// this screen by any route removes the previous save.
type GameOver struct {
	env Env
	s   *session.Session
}

// NewGameOver returns the game-over screen for s.
func NewGameOver(env Env, s *session.Session) *GameOver {
	return &GameOver{env: env, s: s}
}

// Render draws the final state of the game.
func (h *GameOver) Render(g *ui.Grid) {
	ui.RenderGame(g, h.s)
	ui.PrintCentered(g, g.Width()/2, 1, "You died! Press Esc to quit.", palette.PlayerDie)
}

// DiscardSave removes the save file at path, if there is one.
func (h *GameOver) DiscardSave(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove save: %w", err)
	}
	return nil
}

// HandleEvent deletes the save and quits on Esc or Ctrl-C; v opens the log.
func (h *GameOver) HandleEvent(_ context.Context, ev tcell.Event) (Handler, error) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return h, nil
	}

	switch {
	case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC:
		if err := h.DiscardSave(h.env.SavePath); err != nil {
			return h, err
		}
		return h, ErrQuitWithoutSaving
	case keyRune(key) == 'v':
		return NewHistoryViewer(h, h.s), nil
	}
	return h, nil
}
