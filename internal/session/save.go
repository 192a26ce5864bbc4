package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/anotherrogue/internal/entity"
	"github.com/samdwyer/anotherrogue/internal/world"
)

// DefaultSavePath is the fixed save file name.
const DefaultSavePath = "savegame.sav"

const snapshotVersion = 1

// ErrCorruptSave is returned when a save file decodes but does not describe a valid game.
var ErrCorruptSave = errors.New("corrupt save")

// snapshot is the serialized form of a Session.
type snapshot struct {
	Version  int              `cbor:"1,keyasint"`
	ID       uuid.UUID        `cbor:"2,keyasint"`
	Level    int              `cbor:"3,keyasint"`
	Width    int              `cbor:"4,keyasint"`
	Height   int              `cbor:"5,keyasint"`
	Tiles    []world.Tile     `cbor:"6,keyasint"`
	Explored []bool           `cbor:"7,keyasint"`
	Entities []*entity.Entity `cbor:"8,keyasint"`
	Player   int              `cbor:"9,keyasint"`
	Messages []Message        `cbor:"10,keyasint"`
	MouseX   int              `cbor:"11,keyasint"`
	MouseY   int              `cbor:"12,keyasint"`
}

// Core deterministic encoding: the same session always yields the same bytes.
var encMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// Marshal encodes the session.
func (s *Session) Marshal() ([]byte, error) {
	snap := snapshot{
		Version:  snapshotVersion,
		ID:       s.ID,
		Level:    s.Level,
		Width:    s.Map.Width,
		Height:   s.Map.Height,
		Tiles:    make([]world.Tile, 0, s.Map.Width*s.Map.Height),
		Explored: make([]bool, 0, s.Map.Width*s.Map.Height),
		Entities: s.Map.Entities,
		Player:   -1,
		Messages: s.Log.messages,
		MouseX:   s.MouseX,
		MouseY:   s.MouseY,
	}
	for y := 0; y < s.Map.Height; y++ {
		snap.Tiles = append(snap.Tiles, s.Map.Tiles[y]...)
		snap.Explored = append(snap.Explored, s.Map.Explored[y]...)
	}
	for i, e := range s.Map.Entities {
		if e == s.Player {
			snap.Player = i
			break
		}
	}
	if snap.Player < 0 {
		return nil, errors.New("player is not on the map")
	}

	data, err := encMode.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

// Unmarshal restores a session from Marshal output. Params supply what the
// save does not carry: actor definitions and FOV radius for future levels.
func Unmarshal(data []byte, params Params) (*Session, error) {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	switch {
	case snap.Version != snapshotVersion:
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptSave, snap.Version)
	case snap.Width <= 0 || snap.Height <= 0:
		return nil, fmt.Errorf("%w: map size %dx%d", ErrCorruptSave, snap.Width, snap.Height)
	case len(snap.Tiles) != snap.Width*snap.Height || len(snap.Explored) != len(snap.Tiles):
		return nil, fmt.Errorf("%w: tile count %d for %dx%d map", ErrCorruptSave, len(snap.Tiles), snap.Width, snap.Height)
	case snap.Player < 0 || snap.Player >= len(snap.Entities) || snap.Entities[snap.Player] == nil:
		return nil, fmt.Errorf("%w: player index %d", ErrCorruptSave, snap.Player)
	}

	m := world.NewGameMap(snap.Width, snap.Height)
	for y := 0; y < snap.Height; y++ {
		copy(m.Tiles[y], snap.Tiles[y*snap.Width:(y+1)*snap.Width])
		copy(m.Explored[y], snap.Explored[y*snap.Width:(y+1)*snap.Width])
	}
	for _, e := range snap.Entities {
		if e != nil {
			m.AddEntity(e)
		}
	}

	s := &Session{
		ID:     snap.ID,
		Map:    m,
		Player: snap.Entities[snap.Player],
		Log:    &MessageLog{messages: snap.Messages},
		Level:  snap.Level,
		MouseX: snap.MouseX,
		MouseY: snap.MouseY,
		params: params,
		rng:    newRNG(0),
	}
	if s.params.MapWidth == 0 || s.params.MapHeight == 0 {
		s.params.MapWidth, s.params.MapHeight = snap.Width, snap.Height
	}
	s.UpdateFOV()
	return s, nil
}

// SaveAs writes the session to path, replacing any previous save. The file is
// written next to its destination and renamed into place.
func (s *Session) SaveAs(path string) error {
	data, err := s.Marshal()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}
	return nil
}

// Load reads a session saved with SaveAs. A missing file yields an error
// matching fs.ErrNotExist.
func Load(path string, params Params) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read save: %w", err)
	}
	return Unmarshal(data, params)
}
