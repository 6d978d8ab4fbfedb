package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifier_SampleRun(t *testing.T) {
	table, store := loadSample(t)
	v := NewVerifier(table, store, NewGridPool())
	e, err := NewEngine(table, store)
	require.NoError(t, err)

	require.NoError(t, v.Check(e.Store(), 0))
	for gen := 1; gen <= 12; gen++ {
		e.Step()
		v.Step()
		require.NoError(t, v.Check(e.Store(), gen))
	}
	// the 5x5 board starts padded by one and grows a cell per side each step
	require.Equal(t, 5+2+2*12, v.Reference().Bounds().Width())
}

func TestVerifier_FlippingBackground(t *testing.T) {
	_, store := loadSample(t)
	table := invertCenter()
	v := NewVerifier(table, store, nil)
	e, err := NewEngine(table, store)
	require.NoError(t, err)

	for gen := 1; gen <= 5; gen++ {
		e.Step()
		v.Step()
		require.NoError(t, v.Check(e.Store(), gen))
		require.Equal(t, gen%2 == 1, v.Reference().Background())
	}
}

func TestVerifier_DetectsMismatch(t *testing.T) {
	table, store := loadSample(t)
	v := NewVerifier(table, store, nil)
	v.Step()

	e, err := NewEngine(table, store)
	require.NoError(t, err)
	e.Step()

	tampered := e.Store().Clone()
	tampered.Set(Coord{0, 0}, !tampered.Get(Coord{0, 0}))
	require.ErrorIs(t, v.Check(tampered, 1), ErrMismatch)

	far := e.Store().Clone()
	far.Set(Coord{100, 100}, true)
	require.ErrorIs(t, v.Check(far, 1), ErrMismatch)

	flipped := NewCellStore(true)
	require.ErrorIs(t, v.Check(flipped, 1), ErrMismatch)
}
