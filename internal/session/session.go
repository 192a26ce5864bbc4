// Package session holds the live state of one game: the current level, the
// player, the message log, and how it is saved and restored.
package session

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/anotherrogue/internal/entity"
	"github.com/samdwyer/anotherrogue/internal/gamedata"
	"github.com/samdwyer/anotherrogue/internal/palette"
	"github.com/samdwyer/anotherrogue/internal/telemetry"
	"github.com/samdwyer/anotherrogue/internal/world"
)

const welcomeMessage = "Hello and welcome, adventurer, to yet another dungeon!"

// Params controls how sessions are generated.
type Params struct {
	MapWidth           int
	MapHeight          int
	FOVRadius          int
	MaxMonstersPerRoom int

	// Seed for level generation. A seed of 0 means a random seed will be generated.
	Seed int64

	// Registry supplies the actor definitions. Nil loads the embedded ones.
	Registry *gamedata.MonsterRegistry
}

// Session is the mutable state of one game in progress.
type Session struct {
	ID     uuid.UUID
	Map    *world.GameMap
	Player *entity.Entity
	Log    *MessageLog
	Level  int

	// Last known mouse position in map coordinates.
	MouseX, MouseY int

	params Params
	rng    *rand.Rand
}

// New starts a fresh game on dungeon level 1.
func New(ctx context.Context, params Params) (*Session, error) {
	tracer := telemetry.Tracer("session")
	ctx, span := tracer.Start(ctx, "session.new")
	defer span.End()

	if params.Registry == nil {
		registry, err := gamedata.LoadMonsterRegistry()
		if err != nil {
			telemetry.RecordError(span, err)
			return nil, fmt.Errorf("load actors: %w", err)
		}
		params.Registry = registry
	}

	s := &Session{
		ID:     uuid.New(),
		Log:    NewMessageLog(),
		Level:  1,
		params: params,
		rng:    newRNG(params.Seed),
	}
	s.Player = entity.NewActor(params.Registry.Player(), 0, 0)
	s.generateLevel(ctx)
	s.Log.AddMessage(welcomeMessage, palette.WelcomeText)

	span.SetAttributes(
		attribute.String("session.id", s.ID.String()),
		attribute.Int("session.entities", len(s.Map.Entities)),
	)
	return s, nil
}

// Assemble wraps an existing map and player into a session on level 1.
// The player is added to the map if it is not already there.
func Assemble(m *world.GameMap, player *entity.Entity, params Params) *Session {
	found := false
	for _, e := range m.Entities {
		if e == player {
			found = true
			break
		}
	}
	if !found {
		m.AddEntity(player)
	}

	s := &Session{
		ID:     uuid.New(),
		Map:    m,
		Player: player,
		Log:    NewMessageLog(),
		Level:  1,
		params: params,
		rng:    newRNG(params.Seed),
	}
	s.UpdateFOV()
	return s
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// generateLevel replaces the current map with a new one for s.Level and
// places the player in the first room.
func (s *Session) generateLevel(ctx context.Context) {
	m := world.Generate(ctx, s.params.MapWidth, s.params.MapHeight, s.rng)

	var px, py int
	if len(m.Rooms) > 0 {
		px, py = m.Rooms[0].Center()
	} else {
		px, py = m.Width/2, m.Height/2
		m.SetTile(px, py, world.TileFloor)
	}
	s.Player.X, s.Player.Y = px, py
	m.AddEntity(s.Player)

	if s.params.Registry != nil {
		for _, room := range m.Rooms[min(1, len(m.Rooms)):] {
			s.spawnMonsters(m, room)
		}
	}

	s.Map = m
	s.UpdateFOV()
}

func (s *Session) spawnMonsters(m *world.GameMap, room world.Room) {
	count := s.rng.Intn(s.params.MaxMonstersPerRoom + 1)
	for i := 0; i < count; i++ {
		x := room.X + s.rng.Intn(room.Width)
		y := room.Y + s.rng.Intn(room.Height)
		if !m.IsWalkable(x, y) || m.BlockingEntityAt(x, y) != nil {
			continue
		}
		if def := s.params.Registry.SpawnRandom(s.rng); def != nil {
			m.AddEntity(entity.NewActor(def, x, y))
		}
	}
}

// SetMouse records the mouse position if it lies on the map.
func (s *Session) SetMouse(x, y int) {
	if s.Map.InBounds(x, y) {
		s.MouseX, s.MouseY = x, y
	}
}

// UpdateFOV recomputes what the player can see.
func (s *Session) UpdateFOV() {
	radius := s.params.FOVRadius
	if radius <= 0 {
		radius = DefaultFOVRadius
	}
	s.Map.ComputeFOV(s.Player.X, s.Player.Y, radius)
}

// DefaultFOVRadius is used when Params.FOVRadius is not set.
const DefaultFOVRadius = 8
