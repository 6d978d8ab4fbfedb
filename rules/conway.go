package rules

import "math/bits"

// centerBit is the position of the window's own cell in a row-major,
// most-significant-bit-first 3x3 encoding.
const centerBit = 1 << (WindowCells / 2)

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

Conway's Game of Life rules: (alive && neighbors == 2) || neighbors == 3
*/
func ApplyConwayRules(neighbors int, alive bool) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

// Conway returns the B3/S23 rule expressed as a window-encoded Table.
func Conway() *Table {
	return FromFunc(func(window uint) bool {
		alive := window&centerBit != 0
		neighbors := bits.OnesCount(window &^ centerBit)
		return ApplyConwayRules(neighbors, alive)
	})
}
