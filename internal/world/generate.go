package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/anotherrogue/internal/telemetry"
)

// BSP parameters
const (
	minRoomSize = 5  // Minimum room dimension
	maxRoomSize = 12 // Maximum room dimension
	minLeafSize = 9  // Minimum BSP leaf size before stopping split
)

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Room
}

func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

type generator struct {
	m   *GameMap
	rng *rand.Rand
}

// Generate builds a dungeon level of the given size: BSP rooms joined by
// corridors, with the down stairs in the center of the last room.
func Generate(ctx context.Context, width, height int, rng *rand.Rand) *GameMap {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "world.generate")
	defer span.End()

	startTime := time.Now()

	g := &generator{m: NewGameMap(width, height), rng: rng}
	root := &bspNode{x: 1, y: 1, width: width - 2, height: height - 2}

	g.split(root)
	g.createRooms(root)
	g.connect(root)

	if n := len(g.m.Rooms); n > 0 {
		x, y := g.m.Rooms[n-1].Center()
		g.m.SetTile(x, y, TileDownStairs)
	}

	span.SetAttributes(
		attribute.Int("map.width", width),
		attribute.Int("map.height", height),
		attribute.Int("map.room_count", len(g.m.Rooms)),
		attribute.Int64("map.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return g.m
}

// split recursively divides a node until its leaves are too small to split.
func (g *generator) split(node *bspNode) {
	canSplitX := node.width >= minLeafSize*2
	canSplitY := node.height >= minLeafSize*2

	var vertical bool
	switch {
	case canSplitX && (node.width > node.height || !canSplitY):
		vertical = true
	case canSplitY:
		vertical = false
	default:
		return
	}

	if vertical {
		pos := minLeafSize + g.rng.Intn(node.width-minLeafSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: pos, height: node.height}
		node.right = &bspNode{x: node.x + pos, y: node.y, width: node.width - pos, height: node.height}
	} else {
		pos := minLeafSize + g.rng.Intn(node.height-minLeafSize*2+1)
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: pos}
		node.right = &bspNode{x: node.x, y: node.y + pos, width: node.width, height: node.height - pos}
	}

	g.split(node.left)
	g.split(node.right)
}

// createRooms carves one room inside every leaf large enough to hold it.
func (g *generator) createRooms(node *bspNode) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		g.createRooms(node.left)
		g.createRooms(node.right)
		return
	}

	maxW := min(maxRoomSize, node.width-2)
	maxH := min(maxRoomSize, node.height-2)
	if maxW < minRoomSize || maxH < minRoomSize {
		return
	}

	w := minRoomSize + g.rng.Intn(maxW-minRoomSize+1)
	h := minRoomSize + g.rng.Intn(maxH-minRoomSize+1)
	room := Room{
		X:      node.x + 1 + g.rng.Intn(node.width-w-1),
		Y:      node.y + 1 + g.rng.Intn(node.height-h-1),
		Width:  w,
		Height: h,
	}

	node.room = &room
	g.m.Rooms = append(g.m.Rooms, room)
	for y := room.Y; y < room.Y+room.Height; y++ {
		for x := room.X; x < room.X+room.Width; x++ {
			g.carve(x, y)
		}
	}
}

// connect joins sibling subtrees with an L-shaped corridor.
func (g *generator) connect(node *bspNode) {
	if node == nil || node.isLeaf() {
		return
	}

	g.connect(node.left)
	g.connect(node.right)

	a, b := anyRoom(node.left), anyRoom(node.right)
	if a == nil || b == nil {
		return
	}

	x1, y1 := a.Center()
	x2, y2 := b.Center()
	if g.rng.Intn(2) == 0 {
		g.tunnelX(x1, x2, y1)
		g.tunnelY(y1, y2, x2)
	} else {
		g.tunnelY(y1, y2, x1)
		g.tunnelX(x1, x2, y2)
	}
}

func anyRoom(node *bspNode) *Room {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := anyRoom(node.left); room != nil {
		return room
	}
	return anyRoom(node.right)
}

func (g *generator) tunnelX(x1, x2, y int) {
	for x := min(x1, x2); x <= max(x1, x2); x++ {
		g.carve(x, y)
	}
}

func (g *generator) tunnelY(y1, y2, x int) {
	for y := min(y1, y2); y <= max(y1, y2); y++ {
		g.carve(x, y)
	}
}

// carve turns a wall into floor, leaving the outer ring of the map intact.
func (g *generator) carve(x, y int) {
	if x > 0 && x < g.m.Width-1 && y > 0 && y < g.m.Height-1 {
		g.m.Tiles[y][x] = TileFloor
	}
}
