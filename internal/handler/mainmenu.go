package handler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

var menuOptions = []string{
	"[N] Play a new game",
	"[C] Continue last game",
	"[Q] Quit",
}

// MainMenu is the first screen. It has no session.
type MainMenu struct {
	env Env
}

// NewMainMenu returns the title screen.
func NewMainMenu(env Env) *MainMenu {
	return &MainMenu{env: env}
}

// Render draws the title and the menu options.
func (m *MainMenu) Render(g *ui.Grid) {
	cx, cy := g.Width()/2, g.Height()/2

	ui.PrintCentered(g, cx, cy-4, m.env.Title, palette.MenuTitle)

	width := 24
	for i, opt := range menuOptions {
		y := cy - 2 + i
		ui.FillBg(g, cx-width/2, y, width, 1, palette.Black)
		ui.PrintCentered(g, cx, y, opt, palette.MenuText)
	}
}

// HandleEvent starts, continues or quits the game.
func (m *MainMenu) HandleEvent(ctx context.Context, ev tcell.Event) (Handler, error) {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return m, nil
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return m, ErrExitRequested
	}

	switch keyRune(key) {
	case 'q', 'Q':
		return m, ErrExitRequested
	case 'n', 'N':
		s, err := session.New(ctx, m.env.Params)
		if err != nil {
			return m, fmt.Errorf("new game: %w", err)
		}
		return NewMainGame(m.env, s), nil
	case 'c', 'C':
		s, err := session.Load(m.env.SavePath, m.env.Params)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return NewPopup(m, "No saved game to load."), nil
		case err != nil:
			return NewPopup(m, fmt.Sprintf("Failed to load save:\n%v", err)), nil
		}
		return NewMainGame(m.env, s), nil
	}
	return m, nil
}
