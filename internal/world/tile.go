// Package world provides the game map, its generation and field of view.
package world

// Tile represents a single map tile.
type Tile rune

const (
	// TileWall blocks both movement and sight.
	TileWall Tile = '#'
	// TileFloor can be walked on and seen through.
	TileFloor Tile = '.'
	// TileDownStairs leads to the next dungeon level.
	TileDownStairs Tile = '>'
)

// IsWalkable returns true if an actor can stand on the tile.
func (t Tile) IsWalkable() bool {
	return t == TileFloor || t == TileDownStairs
}

// IsTransparent returns true if the tile does not block line of sight.
func (t Tile) IsTransparent() bool {
	return t != TileWall
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
