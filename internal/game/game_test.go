package game

import (
	"bytes"
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/anotherrogue/internal/entity"
	"github.com/samdwyer/anotherrogue/internal/handler"
	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/session"
	"github.com/samdwyer/anotherrogue/internal/ui"
	"github.com/samdwyer/anotherrogue/internal/world"
)

// fakeDevice replays scripted event batches.
type fakeDevice struct {
	batches   [][]tcell.Event
	presented int
	closed    int
	offX      int
}

func (d *fakeDevice) Present(*ui.Grid) error {
	d.presented++
	return nil
}

func (d *fakeDevice) WaitEvents(ctx context.Context) ([]tcell.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(d.batches) == 0 {
		return nil, errors.New("no more scripted events")
	}
	batch := d.batches[0]
	d.batches = d.batches[1:]
	return batch, nil
}

func (d *fakeDevice) ConvertEvent(ev tcell.Event) tcell.Event {
	if m, ok := ev.(*tcell.EventMouse); ok && d.offX != 0 {
		x, y := m.Position()
		return tcell.NewEventMouse(x-d.offX, y, m.Buttons(), m.Modifiers())
	}
	return ev
}

func (d *fakeDevice) Close() { d.closed++ }

// stubHandler answers events from a script and records what it saw.
type stubHandler struct {
	s      *session.Session
	handle func(ev tcell.Event) (handler.Handler, error)
	render func(g *ui.Grid)
	seen   []tcell.Event
}

func (h *stubHandler) Render(g *ui.Grid) {
	if h.render != nil {
		h.render(g)
	}
}

func (h *stubHandler) HandleEvent(_ context.Context, ev tcell.Event) (handler.Handler, error) {
	h.seen = append(h.seen, ev)
	return h.handle(ev)
}

func (h *stubHandler) Session() *session.Session { return h.s }

type harness struct {
	game *Game
	dev  *fakeDevice
	logs *bytes.Buffer
	out  *bytes.Buffer
	cfg  Config
}

func newHarness(t *testing.T, start handler.Handler, batches ...[]tcell.Event) *harness {
	t.Helper()
	cfg := DefaultConfig()
	cfg.SavePath = filepath.Join(t.TempDir(), session.DefaultSavePath)

	h := &harness{
		dev:  &fakeDevice{batches: batches},
		logs: &bytes.Buffer{},
		out:  &bytes.Buffer{},
		cfg:  cfg,
	}
	h.game = New(cfg,
		WithDevice(h.dev),
		WithLogger(log.New(h.logs, "", 0)),
		WithOutput(h.out),
		WithHandler(start),
	)
	return h
}

func (h *harness) saveExists() bool {
	_, err := os.Stat(h.cfg.SavePath)
	return err == nil
}

// liveSession builds a small session with the player at 7/10 HP on level 2.
func liveSession(t *testing.T) *session.Session {
	t.Helper()
	m := world.NewGameMap(20, 10)
	for y := 1; y < 9; y++ {
		for x := 1; x < 19; x++ {
			m.Tiles[y][x] = world.TileFloor
		}
	}
	player := &entity.Entity{
		Name:    "player",
		Glyph:   '@',
		X:       5,
		Y:       5,
		Blocks:  true,
		Order:   entity.OrderActor,
		Fighter: &entity.Fighter{HP: 7, MaxHP: 10, Defense: 1, Power: 4},
	}
	s := session.Assemble(m, player, session.Params{FOVRadius: 8, Seed: 3})
	s.Level = 2
	return s
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestRunQuitWithoutSaving(t *testing.T) {
	stub := &stubHandler{
		s: liveSession(t),
		handle: func(tcell.Event) (handler.Handler, error) {
			return nil, handler.ErrQuitWithoutSaving
		},
	}
	h := newHarness(t, stub, []tcell.Event{key('q')})

	err := h.game.Run(context.Background())
	if !errors.Is(err, handler.ErrQuitWithoutSaving) {
		t.Fatalf("Run() error = %v, want ErrQuitWithoutSaving", err)
	}
	if h.saveExists() {
		t.Error("Run() wrote a save file after quitting without saving")
	}
	if h.out.Len() != 0 {
		t.Errorf("output = %q, want nothing", h.out.String())
	}
	if h.dev.closed != 1 {
		t.Errorf("device closed %d times, want 1", h.dev.closed)
	}
}

func TestRunExitSavesSession(t *testing.T) {
	s := liveSession(t)
	cfg := DefaultConfig()
	h := newHarness(t, handler.NewMainGame(cfg.Env(), s),
		[]tcell.Event{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)})

	if err := os.WriteFile(h.cfg.SavePath, []byte("old save"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := h.game.Run(context.Background())
	if !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v, want ErrExitRequested", err)
	}
	if got := h.out.String(); got != "Game saved.\n" {
		t.Errorf("output = %q, want %q", got, "Game saved.\n")
	}
	if h.dev.closed != 1 {
		t.Errorf("device closed %d times, want 1", h.dev.closed)
	}

	loaded, err := session.Load(h.cfg.SavePath, session.Params{})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if loaded.Level != 2 {
		t.Errorf("Level = %d, want 2", loaded.Level)
	}
	if f := loaded.Player.Fighter; f.HP != 7 || f.MaxHP != 10 {
		t.Errorf("player HP = %d/%d, want 7/10", f.HP, f.MaxHP)
	}
}

func TestRunFatalWithoutSession(t *testing.T) {
	boom := errors.New("boom")
	stub := &stubHandler{
		handle: func(tcell.Event) (handler.Handler, error) {
			return nil, handler.Unrecoverable(boom)
		},
	}
	h := newHarness(t, stub, []tcell.Event{key('x')})

	err := h.game.Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want boom", err)
	}
	if Classify(err) != OutcomeFatal {
		t.Errorf("Classify() = %v, want fatal", Classify(err))
	}
	if h.saveExists() {
		t.Error("Run() wrote a save file without a live session")
	}
	if h.out.Len() != 0 {
		t.Errorf("output = %q, want nothing", h.out.String())
	}
	if h.dev.closed != 1 {
		t.Errorf("device closed %d times, want 1", h.dev.closed)
	}
}

func TestRunMainMenuExit(t *testing.T) {
	h := newHarness(t, nil, []tcell.Event{key('q')})

	if _, ok := h.game.Handler().(*handler.MainMenu); !ok {
		t.Fatalf("Handler() = %T, want *handler.MainMenu", h.game.Handler())
	}
	err := h.game.Run(context.Background())
	if !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v, want ErrExitRequested", err)
	}
	if h.saveExists() || h.out.Len() != 0 {
		t.Error("exiting from the main menu should not save")
	}
}

func TestRunRenderPanicSaves(t *testing.T) {
	stub := &stubHandler{
		s:      liveSession(t),
		render: func(*ui.Grid) { panic("render broke") },
	}
	h := newHarness(t, stub)

	err := h.game.Run(context.Background())
	var p *PanicError
	if !errors.As(err, &p) {
		t.Fatalf("Run() error = %v, want *PanicError", err)
	}
	if p.Value != "render broke" {
		t.Errorf("panic value = %v", p.Value)
	}
	if !h.saveExists() {
		t.Error("Run() should save the live session after a fatal failure")
	}
	if h.out.String() != "Game saved.\n" {
		t.Errorf("output = %q", h.out.String())
	}
	if !strings.Contains(h.logs.String(), "render broke") {
		t.Errorf("logs = %q, want the panic", h.logs.String())
	}
	if h.dev.closed != 1 {
		t.Errorf("device closed %d times, want 1", h.dev.closed)
	}
}

func TestRunRecoversFailureMidBatch(t *testing.T) {
	s := liveSession(t)
	calls := 0
	stub := &stubHandler{s: s}
	stub.handle = func(ev tcell.Event) (handler.Handler, error) {
		calls++
		switch calls {
		case 1:
			return nil, errors.New("something broke")
		case 2:
			panic("kaboom")
		default:
			return nil, handler.ErrQuitWithoutSaving
		}
	}
	h := newHarness(t, stub, []tcell.Event{key('a'), key('b'), key('c')})

	err := h.game.Run(context.Background())
	if !errors.Is(err, handler.ErrQuitWithoutSaving) {
		t.Fatalf("Run() error = %v, want ErrQuitWithoutSaving", err)
	}
	if len(stub.seen) != 3 {
		t.Fatalf("handler saw %d events, want 3", len(stub.seen))
	}

	msgs := s.Log.Messages()
	if len(msgs) != 2 {
		t.Fatalf("log has %d messages, want 2", len(msgs))
	}
	if msgs[0].Text != "something broke" || msgs[0].Color != palette.Error {
		t.Errorf("msgs[0] = %q (%v), want the failure in error color", msgs[0].Text, msgs[0].Color)
	}
	if msgs[1].Text != "panic: kaboom" {
		t.Errorf("msgs[1] = %q, want %q", msgs[1].Text, "panic: kaboom")
	}

	logs := h.logs.String()
	if !strings.Contains(logs, "something broke") || !strings.Contains(logs, "kaboom") {
		t.Errorf("logs = %q, want both failures", logs)
	}
	if !strings.Contains(logs, "goroutine") {
		t.Error("logs should include a stack trace")
	}
}

func TestRunFailureWithoutSession(t *testing.T) {
	calls := 0
	stub := &stubHandler{}
	stub.handle = func(tcell.Event) (handler.Handler, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("no session to tell")
		}
		return nil, handler.ErrExitRequested
	}
	h := newHarness(t, stub, []tcell.Event{key('a')}, []tcell.Event{key('b')})

	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v, want ErrExitRequested", err)
	}
	if !strings.Contains(h.logs.String(), "no session to tell") {
		t.Errorf("logs = %q", h.logs.String())
	}
	if h.dev.presented != 2 {
		t.Errorf("presented %d frames, want 2", h.dev.presented)
	}
}

func TestRunNilHandlerIsReported(t *testing.T) {
	s := liveSession(t)
	calls := 0
	stub := &stubHandler{s: s}
	stub.handle = func(tcell.Event) (handler.Handler, error) {
		calls++
		if calls == 1 {
			return nil, nil
		}
		return nil, handler.ErrQuitWithoutSaving
	}
	h := newHarness(t, stub, []tcell.Event{key('a'), key('b')})

	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrQuitWithoutSaving) {
		t.Fatalf("Run() error = %v", err)
	}
	if msg, ok := s.Log.Last(); !ok || !strings.Contains(msg.Text, "returned no handler") {
		t.Errorf("last message = %q, want a missing handler failure", msg.Text)
	}
}

func TestRunTransitions(t *testing.T) {
	second := &stubHandler{
		handle: func(tcell.Event) (handler.Handler, error) {
			return nil, handler.ErrQuitWithoutSaving
		},
	}
	first := &stubHandler{}
	first.handle = func(tcell.Event) (handler.Handler, error) { return second, nil }

	h := newHarness(t, first, []tcell.Event{key('a'), key('b')})
	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrQuitWithoutSaving) {
		t.Fatalf("Run() error = %v", err)
	}
	if len(first.seen) != 1 || len(second.seen) != 1 {
		t.Errorf("events seen = %d, %d, want 1, 1", len(first.seen), len(second.seen))
	}
	if h.game.Handler() != second {
		t.Errorf("Handler() = %T, want the second handler", h.game.Handler())
	}
}

func TestRunConvertsEvents(t *testing.T) {
	s := liveSession(t)
	h := newHarness(t, handler.NewMainGame(DefaultConfig().Env(), s),
		[]tcell.Event{
			tcell.NewEventMouse(13, 4, tcell.ButtonNone, tcell.ModNone),
			tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		})
	h.dev.offX = 10

	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v", err)
	}
	if s.MouseX != 3 || s.MouseY != 4 {
		t.Errorf("mouse = (%d, %d), want (3, 4)", s.MouseX, s.MouseY)
	}
}

func TestRunCancelledContextSaves(t *testing.T) {
	h := newHarness(t, handler.NewMainGame(DefaultConfig().Env(), liveSession(t)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.game.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if Classify(err) != OutcomeExit {
		t.Errorf("Classify() = %v, want exit", Classify(err))
	}
	if !h.saveExists() {
		t.Error("an interrupted game should be saved")
	}
}

func TestRunOpenFailure(t *testing.T) {
	want := errors.New("no terminal")
	g := New(DefaultConfig(), WithOpener(func(Config) (Device, error) { return nil, want }))

	if err := g.Run(context.Background()); !errors.Is(err, want) {
		t.Errorf("Run() error = %v, want %v", err, want)
	}
}

func TestRunSaveFailureIsLogged(t *testing.T) {
	h := newHarness(t, handler.NewMainGame(DefaultConfig().Env(), liveSession(t)),
		[]tcell.Event{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)})
	h.game.cfg.SavePath = filepath.Join(t.TempDir(), "missing", "savegame.sav")

	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v", err)
	}
	if h.out.Len() != 0 {
		t.Errorf("output = %q, want no confirmation", h.out.String())
	}
	if !strings.Contains(h.logs.String(), "save failed") {
		t.Errorf("logs = %q", h.logs.String())
	}
}

func TestRunSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	h := newHarness(t, handler.NewMainGame(DefaultConfig().Env(), liveSession(t)),
		[]tcell.Event{key('.'), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)})
	if err := h.game.Run(context.Background()); !errors.Is(err, handler.ErrExitRequested) {
		t.Fatalf("Run() error = %v", err)
	}

	counts := map[string]int{}
	var outcome attribute.Value
	for _, span := range recorder.Ended() {
		counts[span.Name()]++
		if span.Name() == "game.run" {
			for _, kv := range span.Attributes() {
				if kv.Key == "game.outcome" {
					outcome = kv.Value
				}
			}
		}
	}

	want := map[string]int{"game.run": 1, "handler.event": 2, "session.save": 1}
	for name, n := range want {
		if counts[name] != n {
			t.Errorf("%s spans = %d, want %d", name, counts[name], n)
		}
	}
	if outcome.AsString() != "exit" {
		t.Errorf("game.outcome = %q, want %q", outcome.AsString(), "exit")
	}
}

func TestRunCancelledOnGameOverRemovesSave(t *testing.T) {
	h := newHarness(t, handler.NewGameOver(DefaultConfig().Env(), liveSession(t)))
	if err := liveSession(t).SaveAs(h.cfg.SavePath); err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.game.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if h.saveExists() {
		t.Error("the save of a dead game should be removed on exit")
	}
	if h.out.Len() != 0 {
		t.Errorf("output = %q, want no confirmation", h.out.String())
	}
}
