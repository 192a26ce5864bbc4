// Package handler implements the screens of the game as a state machine.
// Exactly one Handler is current at a time; each input event is passed to it
// and the Handler it returns becomes the next current one.
package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// Handler is one mode of the user interface.
type Handler interface {
	// Render draws the handler onto a cleared grid.
	Render(g *ui.Grid)
	// HandleEvent processes one input event and returns the next handler.
	// A non-nil error is either a signal (ErrQuitWithoutSaving,
	// ErrExitRequested) or a failure; the returned handler is ignored then.
	HandleEvent(ctx context.Context, ev tcell.Event) (Handler, error)
}

// SessionHolder is implemented by handlers that own a live game session.
// Only those are saved when the program exits.
type SessionHolder interface {
	Session() *session.Session
}

var (
	// ErrQuitWithoutSaving ends the program without touching the save file.
	ErrQuitWithoutSaving = errors.New("quit without saving")
	// ErrExitRequested ends the program after saving the live session.
	ErrExitRequested = errors.New("exit requested")
)

type unrecoverableError struct {
	err error
}

func (e *unrecoverableError) Error() string { return e.err.Error() }
func (e *unrecoverableError) Unwrap() error { return e.err }

// Unrecoverable marks err as a failure that must stop the run loop instead
// of being reported and skipped.
func Unrecoverable(err error) error {
	if err == nil {
		return nil
	}
	return &unrecoverableError{err: err}
}

// IsUnrecoverable reports whether err was marked with Unrecoverable.
func IsUnrecoverable(err error) bool {
	var u *unrecoverableError
	return errors.As(err, &u)
}

// Discarder is implemented by handlers whose game is over. Instead of saving
// on exit, the previous save is removed so it cannot be continued.
type Discarder interface {
	DiscardSave(path string) error
}

// SessionOf returns the live session exposed by h, if any.
func SessionOf(h Handler) (*session.Session, bool) {
	holder, ok := h.(SessionHolder)
	if !ok {
		return nil, false
	}
	s := holder.Session()
	return s, s != nil
}

// Save writes the live session of h to path. A Discarder removes the file
// instead; other handlers without a session leave it alone. saved is true
// only when a session was written.
func Save(h Handler, path string) (saved bool, err error) {
	s, ok := SessionOf(h)
	if !ok {
		if d, ok := h.(Discarder); ok {
			return false, d.DiscardSave(path)
		}
		return false, nil
	}
	if err := s.SaveAs(path); err != nil {
		return false, fmt.Errorf("save %s: %w", path, err)
	}
	return true, nil
}

// Env is what handlers need to know about the outside world.
type Env struct {
	Title    string
	SavePath string
	Params   session.Params
}

// keyRune returns the rune of a plain character key, or 0.
func keyRune(ev *tcell.EventKey) rune {
	if ev.Key() != tcell.KeyRune {
		return 0
	}
	return ev.Rune()
}
