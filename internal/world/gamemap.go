package world

import "github.com/samdwyer/anotherrogue/internal/entity"

// GameMap is one dungeon level: its tiles, what the player can see, and who is on it.
type GameMap struct {
	Width    int
	Height   int
	Tiles    [][]Tile
	Visible  [][]bool
	Explored [][]bool
	Rooms    []Room

	// Entities in insertion order. The order is observable: names at a
	// cell are listed in it.
	Entities []*entity.Entity
}

// NewGameMap creates a map of the given size filled with walls.
func NewGameMap(width, height int) *GameMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &GameMap{
		Width:    width,
		Height:   height,
		Tiles:    tiles,
		Visible:  newBoolGrid(width, height),
		Explored: newBoolGrid(width, height),
	}
}

func newBoolGrid(width, height int) [][]bool {
	grid := make([][]bool, height)
	for y := range grid {
		grid[y] = make([]bool, width)
	}
	return grid
}

// InBounds returns true if the position lies inside the map.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// IsVisible returns true if the position is currently in the player's field of view.
func (m *GameMap) IsVisible(x, y int) bool {
	return m.InBounds(x, y) && m.Visible[y][x]
}

// IsExplored returns true if the position has ever been seen.
func (m *GameMap) IsExplored(x, y int) bool {
	return m.InBounds(x, y) && m.Explored[y][x]
}

// GetTile returns the tile at the given position, walls outside the map.
func (m *GameMap) GetTile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// SetTile replaces the tile at the given position. Out-of-bounds writes are ignored.
func (m *GameMap) SetTile(x, y int, t Tile) {
	if m.InBounds(x, y) {
		m.Tiles[y][x] = t
	}
}

// IsWalkable returns true if the tile at the position can be walked on.
func (m *GameMap) IsWalkable(x, y int) bool {
	return m.GetTile(x, y).IsWalkable()
}

// AddEntity places an entity on the map, after every entity already there.
func (m *GameMap) AddEntity(e *entity.Entity) {
	m.Entities = append(m.Entities, e)
}

// EntitiesAt returns the entities on the given cell in insertion order.
func (m *GameMap) EntitiesAt(x, y int) []*entity.Entity {
	var found []*entity.Entity
	for _, e := range m.Entities {
		if e.X == x && e.Y == y {
			found = append(found, e)
		}
	}
	return found
}

// BlockingEntityAt returns the entity blocking movement into the cell, or nil.
func (m *GameMap) BlockingEntityAt(x, y int) *entity.Entity {
	for _, e := range m.Entities {
		if e.Blocks && e.X == x && e.Y == y {
			return e
		}
	}
	return nil
}

// Actors returns the living fighting entities on the map.
func (m *GameMap) Actors() []*entity.Entity {
	var actors []*entity.Entity
	for _, e := range m.Entities {
		if e.IsAlive() {
			actors = append(actors, e)
		}
	}
	return actors
}

// StairsLocation returns the position of the down stairs, or (-1, -1).
func (m *GameMap) StairsLocation() (int, int) {
	for y := range m.Tiles {
		for x, t := range m.Tiles[y] {
			if t == TileDownStairs {
				return x, y
			}
		}
	}
	return -1, -1
}
