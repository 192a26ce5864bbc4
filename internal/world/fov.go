package world

// ComputeFOV recomputes the visible set from the origin: every cell within
// radius with an unobstructed line of sight becomes visible and explored.
func (m *GameMap) ComputeFOV(ox, oy, radius int) {
	for y := range m.Visible {
		clear(m.Visible[y])
	}
	if !m.InBounds(ox, oy) {
		return
	}

	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := ox+dx, oy+dy
			if !m.InBounds(x, y) || dx*dx+dy*dy > radius*radius {
				continue
			}
			if m.lineOfSight(ox, oy, x, y) {
				m.Visible[y][x] = true
				m.Explored[y][x] = true
			}
		}
	}
}

// lineOfSight walks a Bresenham line and fails on the first opaque cell
// strictly between the two endpoints.
func (m *GameMap) lineOfSight(x0, y0, x1, y1 int) bool {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy

	x, y := x0, y0
	for x != x1 || y != y1 {
		if (x != x0 || y != y0) && !m.GetTile(x, y).IsTransparent() {
			return false
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	return true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
