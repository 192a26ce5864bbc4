package game

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/ui"
)

// Device shows the grid and delivers input. It is opened once per Run and
// closed exactly once when Run returns.
type Device interface {
	Present(g *ui.Grid) error
	// WaitEvents blocks until at least one event is available and returns
	// everything queued at that point as one batch.
	WaitEvents(ctx context.Context) ([]tcell.Event, error)
	// ConvertEvent maps device coordinates onto grid cells.
	ConvertEvent(ev tcell.Event) tcell.Event
	Close()
}

// Opener acquires the device for a run.
type Opener func(cfg Config) (Device, error)

func openScreen(cfg Config) (Device, error) {
	s, err := ui.NewScreen(cfg.Title, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	return s, nil
}
