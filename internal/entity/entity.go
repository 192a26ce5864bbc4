// Package entity provides the actors and objects that occupy the game map.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/anotherrogue/internal/gamedata"
)

// RenderOrder decides which entity is drawn on top when several share a cell.
type RenderOrder int

const (
	OrderCorpse RenderOrder = iota
	OrderItem
	OrderActor
)

// String returns the render order name.
func (o RenderOrder) String() string {
	switch o {
	case OrderCorpse:
		return "corpse"
	case OrderItem:
		return "item"
	case OrderActor:
		return "actor"
	default:
		return "unknown"
	}
}

// Entity is anything placed on the map: the player, monsters and their remains.
type Entity struct {
	ID      string      // Definition ID (e.g., "orc"); empty for ad-hoc entities
	Name    string      // Display name (e.g., "orc")
	Glyph   rune        // Display symbol
	Color   tcell.Color // Foreground color
	X, Y    int         // Position on the map
	Blocks  bool        // True if other actors cannot walk through it
	Order   RenderOrder // Draw priority
	Fighter *Fighter    // Combat stats; nil for non-combatants
}

// NewActor creates a blocking, fighting entity from a data-driven definition.
func NewActor(def *gamedata.ActorDef, x, y int) *Entity {
	return &Entity{
		ID:     def.ID,
		Name:   def.Name,
		Glyph:  def.GlyphRune(),
		Color:  def.TCellColor(),
		X:      x,
		Y:      y,
		Blocks: true,
		Order:  OrderActor,
		Fighter: &Fighter{
			HP:      def.HP,
			MaxHP:   def.HP,
			Defense: def.Defense,
			Power:   def.Power,
		},
	}
}

// Position returns the entity's current x, y coordinates.
func (e *Entity) Position() (int, int) {
	return e.X, e.Y
}

// Move shifts the entity by the given delta.
func (e *Entity) Move(dx, dy int) {
	e.X += dx
	e.Y += dy
}

// DistanceTo returns the Chebyshev distance to the given cell.
func (e *Entity) DistanceTo(x, y int) int {
	return max(abs(e.X-x), abs(e.Y-y))
}

// IsAlive returns true while the entity has a fighter with HP left.
func (e *Entity) IsAlive() bool {
	return e.Fighter != nil && e.Fighter.HP > 0
}

// Die turns a fighting entity into non-blocking remains.
func (e *Entity) Die() {
	e.Glyph = '%'
	e.Color = tcell.NewRGBColor(0xBF, 0x00, 0x00)
	e.Blocks = false
	e.Order = OrderCorpse
	e.Name = "remains of " + e.Name
	if e.Fighter != nil {
		e.Fighter.HP = 0
	}
}

// GetName returns the display name.
func (e *Entity) GetName() string { return e.Name }

// GetPower returns the attack power, 0 for non-combatants.
func (e *Entity) GetPower() int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.Power
}

// GetDefense returns the defense value, 0 for non-combatants.
func (e *Entity) GetDefense() int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.Defense
}

// TakeDamage reduces HP and returns the damage actually taken.
func (e *Entity) TakeDamage(amount int) int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.TakeDamage(amount)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
