package model

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-trench/rules"
)

// DenseGrid is a fixed rectangle of the plane stored as rows of cells, with
// everything outside the rectangle holding the background value.
//
// It steps by rescanning its whole rectangle grown by one cell, which makes it
// a slow but independent reference for Engine.
type DenseGrid struct {
	bounds     Bounds
	background bool
	cells      [][]bool
}

// NewDenseGrid creates a grid covering b with every cell set to background.
func NewDenseGrid(b Bounds, background bool) *DenseGrid {
	g := &DenseGrid{}
	g.Reset(b, background)
	return g
}

// DenseFromStore copies the store into a grid covering its active set padded
// by pad cells. An empty store yields a single background cell at the origin.
func DenseFromStore(s *CellStore, pad int) *DenseGrid {
	b, err := s.Bounds()
	if err != nil {
		b = Bounds{}
	}
	g := NewDenseGrid(b.Pad(pad), s.background)
	s.Each(func(c Coord) {
		g.Set(c, !s.background)
	})
	return g
}

// Reset resizes the grid to b and fills it with background.
func (g *DenseGrid) Reset(b Bounds, background bool) {
	g.bounds = b
	g.background = background

	width, height := b.Width(), b.Height()
	if cap(g.cells) < height {
		g.cells = make([][]bool, height)
	}
	g.cells = g.cells[:height]
	for i := range g.cells {
		if cap(g.cells[i]) < width {
			g.cells[i] = make([]bool, width)
			if !background {
				continue
			}
		}
		g.cells[i] = g.cells[i][:width]
		for j := range g.cells[i] {
			g.cells[i][j] = background
		}
	}
}

// Bounds returns the rectangle stored explicitly.
func (g *DenseGrid) Bounds() Bounds { return g.bounds }

// Background returns the state of every cell outside the rectangle.
func (g *DenseGrid) Background() bool { return g.background }

// Get returns the state of a cell.
func (g *DenseGrid) Get(c Coord) bool {
	if !g.bounds.Contains(c) {
		return g.background
	}
	return g.cells[c.Y-g.bounds.MinY][c.X-g.bounds.MinX]
}

// Set updates a cell inside the rectangle; cells outside are ignored.
func (g *DenseGrid) Set(c Coord, value bool) {
	if g.bounds.Contains(c) {
		g.cells[c.Y-g.bounds.MinY][c.X-g.bounds.MinX] = value
	}
}

// Next computes the following generation over the rectangle grown by one
// cell, splitting rows across workers.
func (g *DenseGrid) Next(table *rules.Table, pool *GridPool) *DenseGrid {
	nextBounds := g.bounds.Pad(1)
	nextBackground := table.Lookup(backgroundWindow(g.background))

	var next *DenseGrid
	if pool != nil {
		next = pool.Get(nextBounds, nextBackground)
	} else {
		next = NewDenseGrid(nextBounds, nextBackground)
	}

	var (
		eg            errgroup.Group
		height        = nextBounds.Height()
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, height)
		)
		if startRow >= height {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				y := nextBounds.MinY + row
				for x := nextBounds.MinX; x <= nextBounds.MaxX; x++ {
					next.cells[row][x-nextBounds.MinX] = table.Lookup(Sample(g, Coord{X: x, Y: y}))
				}
			}
			return nil
		})
	}

	// workers only write their own rows and never fail
	_ = eg.Wait()
	return next
}

// ToStore converts the grid into a sparse CellStore.
func (g *DenseGrid) ToStore() *CellStore {
	s := NewCellStore(g.background)
	for row := range g.cells {
		for col, v := range g.cells[row] {
			s.Set(Coord{X: g.bounds.MinX + col, Y: g.bounds.MinY + row}, v)
		}
	}
	return s
}

// CountLivingCells returns the number of lit cells inside the rectangle.
func (g *DenseGrid) CountLivingCells() (count int) {
	for row := range g.cells {
		for _, v := range g.cells[row] {
			if v {
				count++
			}
		}
	}
	return
}
