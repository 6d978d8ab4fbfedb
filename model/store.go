package model

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrEmptyState is returned when a bounding box is requested for a store
	// that has no active cells.
	ErrEmptyState = errors.New("model: cell store has no active cells")
	// ErrUnboundedCount is returned when the infinite background is on, so the
	// number of lit cells is not finite.
	ErrUnboundedCount = errors.New("model: live cell count is unbounded")
)

// Unbounded is the count reported alongside ErrUnboundedCount.
const Unbounded = math.MaxInt

// Coord is a cell position on the infinite plane.
type Coord struct {
	X, Y int
}

// Add returns the coordinate offset by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{X: c.X + d.X, Y: c.Y + d.Y}
}

// Bounds is an inclusive rectangle of coordinates.
type Bounds struct {
	MinX, MaxX, MinY, MaxY int
}

// Pad grows the rectangle by n cells on every side.
func (b Bounds) Pad(n int) Bounds {
	return Bounds{MinX: b.MinX - n, MaxX: b.MaxX + n, MinY: b.MinY - n, MaxY: b.MaxY + n}
}

// Width returns the number of columns covered.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of rows covered.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Area returns the number of cells covered.
func (b Bounds) Area() int { return b.Width() * b.Height() }

// Contains reports whether c lies inside the rectangle.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}

// Reader is the read side of a grid state.
type Reader interface {
	Get(c Coord) bool
	Background() bool
}

// CellStore holds the state of the infinite plane as a background value plus
// the set of coordinates whose state differs from it.
//
// A coordinate is in the active set if and only if its state differs from the
// background.
type CellStore struct {
	background bool
	active     map[Coord]struct{}
}

// NewCellStore creates an empty store with the given background.
func NewCellStore(background bool) *CellStore {
	return &CellStore{
		background: background,
		active:     make(map[Coord]struct{}),
	}
}

func newCellStoreSize(background bool, hint int) *CellStore {
	return &CellStore{
		background: background,
		active:     make(map[Coord]struct{}, hint),
	}
}

// Background returns the state of every coordinate not in the active set.
func (s *CellStore) Background() bool {
	return s.background
}

// Get returns the state of a cell.
func (s *CellStore) Get(c Coord) bool {
	if _, ok := s.active[c]; ok {
		return !s.background
	}
	return s.background
}

// Set updates the state of a cell.
func (s *CellStore) Set(c Coord, value bool) {
	if value == s.background {
		delete(s.active, c)
		return
	}
	s.active[c] = struct{}{}
}

// Len returns the size of the active set.
func (s *CellStore) Len() int {
	return len(s.active)
}

// IsActive reports whether c differs from the background.
func (s *CellStore) IsActive(c Coord) bool {
	_, ok := s.active[c]
	return ok
}

// LiveCount returns the number of lit cells. When the background is on the
// count is infinite and ErrUnboundedCount is returned with Unbounded.
func (s *CellStore) LiveCount() (int, error) {
	if s.background {
		return Unbounded, ErrUnboundedCount
	}
	return len(s.active), nil
}

// CountWithin returns the number of lit cells inside b. It is finite
// regardless of the background.
func (s *CellStore) CountWithin(b Bounds) (count int) {
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			if s.Get(Coord{X: x, Y: y}) {
				count++
			}
		}
	}
	return
}

// Bounds returns the bounding box of the active set.
func (s *CellStore) Bounds() (Bounds, error) {
	if len(s.active) == 0 {
		return Bounds{}, ErrEmptyState
	}
	var (
		b     Bounds
		first = true
	)
	for c := range s.active {
		if first {
			b = Bounds{MinX: c.X, MaxX: c.X, MinY: c.Y, MaxY: c.Y}
			first = false
			continue
		}
		b.MinX = min(b.MinX, c.X)
		b.MaxX = max(b.MaxX, c.X)
		b.MinY = min(b.MinY, c.Y)
		b.MaxY = max(b.MaxY, c.Y)
	}
	return b, nil
}

// Each calls fn for every active coordinate in unspecified order.
func (s *CellStore) Each(fn func(c Coord)) {
	for c := range s.active {
		fn(c)
	}
}

// Clone returns an independent copy of the store.
func (s *CellStore) Clone() *CellStore {
	out := newCellStoreSize(s.background, len(s.active))
	for c := range s.active {
		out.active[c] = struct{}{}
	}
	return out
}

// Equal reports whether both stores describe the same plane.
func (s *CellStore) Equal(other *CellStore) bool {
	if s.background != other.background || len(s.active) != len(other.active) {
		return false
	}
	for c := range s.active {
		if _, ok := other.active[c]; !ok {
			return false
		}
	}
	return true
}
