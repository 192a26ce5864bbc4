package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/anotherrogue/internal/handler"
)

// Outcome classifies how a step of the loop ended.
type Outcome int

const (
	// OutcomeContinue - keep running
	OutcomeContinue Outcome = iota
	// OutcomeQuitWithoutSaving - stop and leave the save file alone
	OutcomeQuitWithoutSaving
	// OutcomeExit - stop after saving the live session
	OutcomeExit
	// OutcomeFatal - an unexpected failure; save what can be saved, then stop
	OutcomeFatal
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeQuitWithoutSaving:
		return "quit_without_saving"
	case OutcomeExit:
		return "exit"
	case OutcomeFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Classify maps an error returned from a handler or the device to an Outcome.
// Cancellation of the run context counts as a normal exit.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeContinue
	case errors.Is(err, handler.ErrQuitWithoutSaving):
		return OutcomeQuitWithoutSaving
	case errors.Is(err, handler.ErrExitRequested), errors.Is(err, context.Canceled):
		return OutcomeExit
	default:
		return OutcomeFatal
	}
}

// PanicError is a recovered panic, with the stack where it happened.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}
