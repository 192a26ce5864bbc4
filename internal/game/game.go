// Package game provides the main game loop. It owns the current handler and
// the output device, and decides what happens to the session when the loop
// ends.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/anotherrogue/internal/handler"
	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/telemetry"
	"github.com/samdwyer/anotherrogue/internal/ui"
)

// Game holds the run state: the current handler and what it is drawn on.
type Game struct {
	cfg     Config
	open    Opener
	current handler.Handler
	grid    *ui.Grid
	logger  *log.Logger
	out     io.Writer
}

// Option customizes a Game.
type Option func(*Game)

// WithOpener replaces the terminal screen with another device.
func WithOpener(open Opener) Option {
	return func(g *Game) { g.open = open }
}

// WithDevice runs on an already created device.
func WithDevice(d Device) Option {
	return WithOpener(func(Config) (Device, error) { return d, nil })
}

// WithLogger sets where per-event failures are reported. Default is the
// standard logger.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithOutput sets where the save confirmation is printed. Default is stdout.
func WithOutput(w io.Writer) Option {
	return func(g *Game) { g.out = w }
}

// WithHandler starts the game on h instead of the main menu.
func WithHandler(h handler.Handler) Option {
	return func(g *Game) { g.current = h }
}

// New creates a new game instance.
func New(cfg Config, opts ...Option) *Game {
	g := &Game{
		cfg:    cfg,
		open:   openScreen,
		grid:   ui.NewGrid(cfg.Width, cfg.Height),
		logger: log.Default(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.current == nil {
		g.current = handler.NewMainMenu(cfg.Env())
	}
	return g
}

// Handler returns the current handler.
func (g *Game) Handler() handler.Handler {
	return g.current
}

// Run executes the main game loop until a handler signals the end or a
// failure escapes it. The live session is saved unless the player quit
// without saving. The error that ended the loop is returned unchanged.
func (g *Game) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.run")
	defer span.End()

	dev, err := g.open(g.cfg)
	if err != nil {
		err = fmt.Errorf("open device: %w", err)
		telemetry.RecordError(span, err)
		return err
	}

	saved := false
	defer func() {
		dev.Close()
		// Only once the terminal is restored
		if saved {
			fmt.Fprintln(g.out, "Game saved.")
		}
	}()

	err = g.loop(ctx, dev)

	outcome := Classify(err)
	span.SetAttributes(attribute.String("game.outcome", outcome.String()))
	if outcome == OutcomeFatal {
		telemetry.RecordError(span, err)
		g.logFailure("game loop failed", err)
	}

	if outcome != OutcomeQuitWithoutSaving {
		saved = g.save(ctx)
	}
	return err
}

// loop runs ticks until one returns an error. A panic anywhere in a tick
// outside event handling ends the loop as a *PanicError.
func (g *Game) loop(ctx context.Context, dev Device) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	for {
		g.grid.Clear()
		g.current.Render(g.grid)
		if err := dev.Present(g.grid); err != nil {
			return fmt.Errorf("present: %w", err)
		}

		events, err := dev.WaitEvents(ctx)
		if err != nil {
			return fmt.Errorf("wait for events: %w", err)
		}
		for _, ev := range events {
			if err := g.dispatch(ctx, dev.ConvertEvent(ev)); err != nil {
				return err
			}
		}
	}
}

// dispatch hands one event to the current handler. Failures are reported
// and swallowed so the rest of the batch still reaches the same handler;
// signals and unrecoverable failures are returned.
func (g *Game) dispatch(ctx context.Context, ev tcell.Event) error {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "handler.event")
	defer span.End()

	span.SetAttributes(
		attribute.String("handler", fmt.Sprintf("%T", g.current)),
		attribute.String("event", eventName(ev)),
	)

	next, err := g.handle(ctx, ev)
	if err == nil {
		g.current = next
		return nil
	}

	if Classify(err) != OutcomeFatal || handler.IsUnrecoverable(err) {
		return err
	}

	telemetry.RecordError(span, err)
	g.logFailure("event failed", err)
	if s, ok := handler.SessionOf(g.current); ok {
		s.Log.AddMessage(err.Error(), palette.Error)
	}
	return nil
}

func (g *Game) handle(ctx context.Context, ev tcell.Event) (next handler.Handler, err error) {
	defer func() {
		if r := recover(); r != nil {
			next, err = nil, &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	next, err = g.current.HandleEvent(ctx, ev)
	if err == nil && next == nil {
		err = fmt.Errorf("%T returned no handler", g.current)
	}
	return next, err
}

// save writes the live session, if any, and reports whether it did.
func (g *Game) save(ctx context.Context) (saved bool) {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "session.save")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err := &PanicError{Value: r, Stack: debug.Stack()}
			telemetry.RecordError(span, err)
			g.logFailure("save failed", err)
			saved = false
		}
	}()

	saved, err := handler.Save(g.current, g.cfg.SavePath)
	span.SetAttributes(
		attribute.String("save.path", g.cfg.SavePath),
		attribute.Bool("save.written", saved),
	)
	if err != nil {
		telemetry.RecordError(span, err)
		g.logFailure("save failed", err)
	}
	return saved
}

// logFailure writes err with the stack it came from.
func (g *Game) logFailure(what string, err error) {
	stack := debug.Stack()
	var p *PanicError
	if errors.As(err, &p) {
		stack = p.Stack
	}
	g.logger.Printf("%s: %v\n%s", what, err, stack)
}

func eventName(ev tcell.Event) string {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ev.Name()
	case *tcell.EventMouse:
		return "mouse"
	default:
		return fmt.Sprintf("%T", ev)
	}
}
