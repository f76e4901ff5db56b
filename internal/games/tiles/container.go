package tiles

// Container is a block of rows scrolled as one unit.
//
// Offset is the strip coordinate of the container's top edge. The visible
// viewport spans [-viewport, 0) and the trigger line sits at 0, so offsets
// start negative and grow towards the line. Row 0 is the top row.
type Container struct {
	Rows   []Row
	Offset float64
	Height float64
}

// RowTop returns the row's top edge relative to the container's top edge.
func RowTop(row int, rowHeight float64) float64 {
	return float64(row) * rowHeight
}

// RowAt returns the index of the row covering strip coordinate y.
func (c *Container) RowAt(y, rowHeight float64) (int, bool) {
	if y < c.Offset || y >= c.Offset+c.Height {
		return 0, false
	}
	row := int((y - c.Offset) / rowHeight)
	if row < 0 || row >= len(c.Rows) {
		return 0, false
	}
	return row, true
}

// ring holds the two alternating containers.
type ring [2]Container

// front returns the index of the container closer to the trigger line.
// On a tie the second container leads.
func (r *ring) front() int {
	if r[0].Offset > r[1].Offset {
		return 0
	}
	return 1
}

// other returns the index of the container that is not i.
func other(i int) int {
	return 1 - i
}
