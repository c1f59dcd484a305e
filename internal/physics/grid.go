package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection on a
// wrapping playfield. Items are inserted by position and index; nearby
// items are then visited through a 3x3 neighbourhood lookup.
//
// Cell size must be >= the largest centre distance at which two inserted
// items can collide, otherwise collisions across two cells are missed.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64
	cols        int
	rows        int
	cells       [][]int // Item indices per cell, reset to [:0] between frames
	count       int
}

// NewSpatialGrid creates a grid covering a width x height field.
func NewSpatialGrid(width, height, cellSize float64) *SpatialGrid {
	cols := max(int(math.Ceil(width/cellSize)), 1)
	rows := max(int(math.Ceil(height/cellSize)), 1)

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items without releasing cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.count = 0
}

// Len returns the number of inserted items.
func (g *SpatialGrid) Len() int {
	return g.count
}

// Insert adds an item (identified by index) at p.
func (g *SpatialGrid) Insert(p Vec, index int) {
	col, row := g.cellOf(p)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
	g.count++
}

// QueryAround calls fn for each item index in the 3x3 neighbourhood of p,
// wrapping at the field edges. Returning true from fn stops the walk.
// Neighbour cells that wrap onto the same cell (tiny grids) are visited once.
func (g *SpatialGrid) QueryAround(p Vec, fn func(index int) bool) {
	col, row := g.cellOf(p)

	var seen [9]int
	n := 0

	for dr := -1; dr <= 1; dr++ {
		r := (row + dr + g.rows) % g.rows
		for dc := -1; dc <= 1; dc++ {
			c := (col + dc + g.cols) % g.cols
			cell := r*g.cols + c

			dup := false
			for i := 0; i < n; i++ {
				if seen[i] == cell {
					dup = true
					break
				}
			}
			if dup {
				continue
			}
			seen[n] = cell
			n++

			for _, item := range g.cells[cell] {
				if fn(item) {
					return
				}
			}
		}
	}
}

// cellOf converts a position to grid coordinates, clamping positions that
// sit slightly outside the field into the border cells.
func (g *SpatialGrid) cellOf(p Vec) (col, row int) {
	col = min(max(int(math.Floor(p.X*g.invCellSize)), 0), g.cols-1)
	row = min(max(int(math.Floor(p.Y*g.invCellSize)), 0), g.rows-1)
	return col, row
}
