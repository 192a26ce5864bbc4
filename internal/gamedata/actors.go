package gamedata

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/palette"
)

// ActorDef defines the player or a monster type loaded from JSON.
type ActorDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "orc")
	Name        string `json:"name"`        // Display name (e.g., "orc")
	Glyph       string `json:"glyph"`       // Single character for rendering (e.g., "o")
	Color       string `json:"color"`       // Hex color code (e.g., "#3F7F3F")
	HP          int    `json:"hp"`          // Base hit points
	Defense     int    `json:"defense"`     // Damage subtracted from each hit taken
	Power       int    `json:"power"`       // Damage dealt per hit
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// GlyphRune returns the glyph as a rune for rendering.
func (a *ActorDef) GlyphRune() rune {
	for _, r := range a.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (a *ActorDef) TCellColor() tcell.Color {
	color, err := palette.ParseHex(a.Color)
	if err != nil {
		return palette.White
	}
	return color
}

// ActorsFile represents the structure of actors.json.
type ActorsFile struct {
	Player   ActorDef   `json:"player"`
	Monsters []ActorDef `json:"monsters"`
}

// LoadActors loads the player and monster definitions from the embedded actors.json.
func LoadActors() (ActorsFile, error) {
	return Load[ActorsFile]("actors.json")
}
