package model

import (
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-trench/rules"
)

// ErrMismatch is returned when the frontier engine and the dense reference
// disagree.
var ErrMismatch = errors.New("model: engine and dense reference disagree")

// Verifier replays an engine's generations on a DenseGrid and checks that
// both describe the same plane after every step.
type Verifier struct {
	table *rules.Table
	grid  *DenseGrid
	pool  *GridPool
}

// NewVerifier starts a reference run from a copy of store. pool may be nil.
func NewVerifier(table *rules.Table, store *CellStore, pool *GridPool) *Verifier {
	return &Verifier{
		table: table,
		grid:  DenseFromStore(store, 1),
		pool:  pool,
	}
}

// Step advances the reference by one generation.
func (v *Verifier) Step() {
	next := v.grid.Next(v.table, v.pool)
	GridToPool(v.grid, v.pool)
	v.grid = next
}

// Check compares the reference against store over the reference rectangle
// and confirms store has no active cells outside it.
func (v *Verifier) Check(store *CellStore, generation int) error {
	if store.background != v.grid.background {
		return errors.Wrapf(ErrMismatch, "[Verifier.Check] generation %d: background %v, reference %v",
			generation, store.background, v.grid.background)
	}
	b := v.grid.bounds
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			c := Coord{X: x, Y: y}
			if got, want := store.Get(c), v.grid.Get(c); got != want {
				return errors.Wrapf(ErrMismatch, "[Verifier.Check] generation %d: cell (%d,%d) is %v, reference %v",
					generation, x, y, got, want)
			}
		}
	}
	var outside *Coord
	store.Each(func(c Coord) {
		if outside == nil && !b.Contains(c) {
			outside = &c
		}
	})
	if outside != nil {
		return errors.Wrapf(ErrMismatch, "[Verifier.Check] generation %d: active cell (%d,%d) outside reference rectangle",
			generation, outside.X, outside.Y)
	}
	return nil
}

// Reference returns the reference grid.
func (v *Verifier) Reference() *DenseGrid { return v.grid }
