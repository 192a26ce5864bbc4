package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Screen presents a Grid on a terminal through tcell. When the terminal is
// larger than the grid, the grid is centered and input coordinates are
// translated back to grid cells.
type Screen struct {
	screen        tcell.Screen
	width, height int
	offX, offY    int

	// last presented grid, redrawn when the terminal is resized
	last *Grid
}

// NewScreen creates and initializes a terminal screen for a width×height grid.
func NewScreen(title string, width, height int) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newScreen(s, title, width, height)
}

func newScreen(s tcell.Screen, title string, width, height int) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	s.SetTitle(title)
	s.EnableMouse()
	s.Clear()

	scr := &Screen{screen: s, width: width, height: height}
	scr.resize()
	return scr, nil
}

// Close finalizes the screen and restores terminal state.
func (s *Screen) Close() {
	s.screen.Fini()
}

// Present draws the grid and flushes it to the terminal.
func (s *Screen) Present(g *Grid) error {
	s.last = g
	s.draw()
	s.screen.Show()
	return nil
}

func (s *Screen) draw() {
	g := s.last
	if g == nil {
		return
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := g.At(x, y)
			s.screen.SetContent(s.offX+x, s.offY+y, c.Rune, nil, c.Style())
		}
	}
}

// WaitEvents blocks until at least one input event arrives, then returns it
// together with every event already queued behind it. Resize events are
// handled here and never returned: the last grid is redrawn centered on the
// new terminal size. Cancelling ctx wakes the wait and returns
// ctx.Err().
func (s *Screen) WaitEvents(ctx context.Context) ([]tcell.Event, error) {
	stop := context.AfterFunc(ctx, func() {
		_ = s.screen.PostEvent(tcell.NewEventInterrupt(ctx))
	})
	defer stop()

	var events []tcell.Event
	for len(events) == 0 || s.screen.HasPendingEvent() {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized underneath us
			return events, context.Canceled
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.resize()
			s.screen.Sync()
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return events, ctx.Err()
			}
			events = append(events, ev)
		default:
			events = append(events, ev)
		}
	}
	return events, nil
}

// ConvertEvent translates mouse positions from terminal to grid coordinates.
func (s *Screen) ConvertEvent(ev tcell.Event) tcell.Event {
	mouse, ok := ev.(*tcell.EventMouse)
	if !ok || (s.offX == 0 && s.offY == 0) {
		return ev
	}
	x, y := mouse.Position()
	return tcell.NewEventMouse(x-s.offX, y-s.offY, mouse.Buttons(), mouse.Modifiers())
}

func (s *Screen) resize() {
	w, h := s.screen.Size()
	s.offX = max(0, (w-s.width)/2)
	s.offY = max(0, (h-s.height)/2)
	s.screen.Clear()
	s.draw()
}
