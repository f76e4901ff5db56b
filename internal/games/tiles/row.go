package tiles

import (
	"fmt"
	"math/rand"
)

// Lanes is the number of tiles in every row.
const Lanes = 4

// Tile is one slot of a row.
type Tile struct {
	Pressable bool // The tile the player has to tap
	Tapped    bool // Set once, when the pressable tile is tapped
}

// Row is a horizontal strip of Lanes tiles with exactly one pressable tile.
type Row struct {
	Tiles     [Lanes]Tile
	Pressable int // Index of the pressable tile
}

// newRow builds a row with the given pressable lane.
func newRow(pressable int) Row {
	if pressable < 0 || pressable >= Lanes {
		panic(fmt.Sprintf("tiles: pressable lane %d out of range", pressable))
	}
	var r Row
	r.Pressable = pressable
	r.Tiles[pressable].Pressable = true
	return r
}

// PendingTile reports whether the row still has an untapped pressable tile.
func (r Row) PendingTile() bool {
	return !r.Tiles[r.Pressable].Tapped
}

// GenerateRow creates a row whose pressable lane is drawn uniformly from the
// lanes other than prev, and returns it with the lane it picked.
// The returned lane is the prev for the next call.
func GenerateRow(rng *rand.Rand, prev int) (Row, int) {
	var lane int
	for {
		lane = rng.Intn(Lanes)
		if lane != prev {
			break
		}
	}
	return newRow(lane), lane
}

// GenerateRows creates count rows in order, threading the previous lane
// through every call so no two consecutive rows share a pressable lane.
func GenerateRows(rng *rand.Rand, prev, count int) ([]Row, int) {
	rows := make([]Row, count)
	for i := range rows {
		rows[i], prev = GenerateRow(rng, prev)
	}
	return rows, prev
}
