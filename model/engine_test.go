package model

import (
	"math/rand/v2"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/sheikhrachel/go-trench/rules"
)

func loadSample(t testing.TB) (*rules.Table, *CellStore) {
	t.Helper()
	f, err := os.Open("testdata/sample.txt")
	require.NoError(t, err)
	defer f.Close()

	table, store, err := ParseInput(f)
	require.NoError(t, err)
	return table, store
}

// invertCenter flips every cell, and with it the background.
func invertCenter() *rules.Table {
	return rules.FromFunc(func(window uint) bool { return window&16 == 0 })
}

type EngineSuite struct {
	suite.Suite
	table *rules.Table
	store *CellStore
}

func (s *EngineSuite) SetupTest() {
	s.table, s.store = loadSample(s.T())
}

func (s *EngineSuite) newEngine(table *rules.Table, store *CellStore) *Engine {
	e, err := NewEngine(table, store)
	require.NoError(s.T(), err)
	return e
}

func (s *EngineSuite) TestSampleCounts() {
	e := s.newEngine(s.table, s.store)
	require.Equal(s.T(), 0, e.Generation())

	e.Step()
	count, err := e.Store().LiveCount()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 24, count)

	e.Step()
	count, err = e.Store().LiveCount()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 35, count)
	require.Equal(s.T(), 2, e.Generation())
}

func (s *EngineSuite) TestSampleFiftySteps() {
	e := s.newEngine(s.table, s.store)
	e.StepN(50)
	count, err := e.Store().LiveCount()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 3351, count)
	require.Equal(s.T(), 50, e.Generation())
}

func (s *EngineSuite) TestStepDoesNotMutatePrevious() {
	before := s.store.Clone()
	e := s.newEngine(s.table, s.store)
	e.Step()

	require.True(s.T(), s.store.Equal(before))
	require.NotSame(s.T(), s.store, e.Store())
}

func (s *EngineSuite) TestAllOffRuleClearsBoard() {
	off, err := rules.NewTable(make([]bool, rules.Size))
	require.NoError(s.T(), err)

	e := s.newEngine(off, s.store)
	e.Step()
	count, err := e.Store().LiveCount()
	require.NoError(s.T(), err)
	require.Equal(s.T(), 0, count)
	require.Equal(s.T(), 0, e.Store().Len())
}

func (s *EngineSuite) TestTransitioningFlipsBackground() {
	table := invertCenter()
	require.True(s.T(), table.IsTransitioning())

	e := s.newEngine(table, s.store.Clone())
	e.Step()
	require.True(s.T(), e.Store().Background())

	count, err := e.Store().LiveCount()
	require.ErrorIs(s.T(), err, ErrUnboundedCount)
	require.Equal(s.T(), Unbounded, count)

	// the cells lit before the flip are the dark islands afterwards
	s.store.Each(func(c Coord) {
		require.False(s.T(), e.Store().Get(c))
	})
	require.Equal(s.T(), s.store.Len(), e.Store().Len())

	e.Step()
	require.False(s.T(), e.Store().Background())
	require.True(s.T(), e.Store().Equal(s.store))
}

func (s *EngineSuite) TestBackgroundFixedWhenZeroWindowIsOff() {
	e := s.newEngine(s.table, s.store)
	for i := 0; i < 10; i++ {
		e.Step()
		require.False(s.T(), e.Store().Background())
	}
}

func (s *EngineSuite) TestBackgroundLatchesOn() {
	allOn := rules.FromFunc(func(uint) bool { return true })
	require.False(s.T(), allOn.IsTransitioning())

	e := s.newEngine(allOn, s.store)
	e.StepN(3)
	require.True(s.T(), e.Store().Background())
	require.Equal(s.T(), 0, e.Store().Len())
	_, err := e.Store().LiveCount()
	require.ErrorIs(s.T(), err, ErrUnboundedCount)
}

func (s *EngineSuite) TestEmptyStoreStaysEmpty() {
	e := s.newEngine(s.table, nil)
	e.StepN(4)
	require.Equal(s.T(), 0, e.Store().Len())
	require.False(s.T(), e.Store().Background())
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func TestNewEngine_RequiresTable(t *testing.T) {
	_, err := NewEngine(nil, NewCellStore(false))
	require.Error(t, err)
}

func TestEngine_ConwayBlinker(t *testing.T) {
	store := NewCellStore(false)
	store.Set(Coord{2, 1}, true)
	store.Set(Coord{2, 2}, true)
	store.Set(Coord{2, 3}, true)

	e, err := NewEngine(rules.Conway(), store)
	require.NoError(t, err)

	e.Step()
	horizontal := NewCellStore(false)
	horizontal.Set(Coord{1, 2}, true)
	horizontal.Set(Coord{2, 2}, true)
	horizontal.Set(Coord{3, 2}, true)
	require.True(t, e.Store().Equal(horizontal))

	e.Step()
	require.True(t, e.Store().Equal(store))
}

// TestEngine_MatchesDenseReference runs random rule tables over random small
// boards and compares every generation with a full rescan of a padded box.
func TestEngine_MatchesDenseReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(20, 21))

	for trial := 0; trial < 60; trial++ {
		entries := make([]bool, rules.Size)
		for i := range entries {
			entries[i] = rng.IntN(2) == 1
		}
		// force a share of the trials through the flipping and the latching
		// background cases
		switch trial % 3 {
		case 0:
			entries[0], entries[rules.Size-1] = true, false
		case 1:
			entries[0], entries[rules.Size-1] = true, true
		}
		table, err := rules.NewTable(entries)
		require.NoError(t, err)

		store := NewCellStore(false)
		w, h := 1+rng.IntN(6), 1+rng.IntN(6)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if rng.Float64() < 0.4 {
					store.Set(Coord{X: x, Y: y}, true)
				}
			}
		}

		dense := DenseFromStore(store, 0)
		e, err := NewEngine(table, store)
		require.NoError(t, err)

		for gen := 1; gen <= 4; gen++ {
			e.Step()
			dense = dense.Next(table, nil)
			if trial%3 == 1 {
				require.True(t, e.Store().Background(), "trial %d generation %d: background must stay lit", trial, gen)
			}
			require.Truef(t, e.Store().Equal(dense.ToStore()),
				"trial %d generation %d: frontier step differs from dense rescan", trial, gen)
		}
	}
}

func BenchmarkEngine_Step(b *testing.B) {
	table, store := loadSample(b)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e, _ := NewEngine(table, store)
		e.StepN(10)
	}
}

func BenchmarkDenseGrid_Next(b *testing.B) {
	table, store := loadSample(b)
	pool := NewGridPool()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g := DenseFromStore(store, 0)
		for gen := 0; gen < 10; gen++ {
			next := g.Next(table, pool)
			GridToPool(g, pool)
			g = next
		}
		GridToPool(g, pool)
	}
}
