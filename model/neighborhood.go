package model

import "github.com/sheikhrachel/go-trench/rules"

// Window lists the relative offsets of the 3x3 sampling window in scan order,
// top-left to bottom-right.
var Window = [rules.WindowCells]Coord{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {0, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Sample encodes the window around c as an integer, reading cells in scan
// order with the first cell as the most significant bit.
func Sample(s Reader, c Coord) uint {
	var idx uint
	for _, d := range Window {
		idx <<= 1
		if s.Get(c.Add(d)) {
			idx |= 1
		}
	}
	return idx
}

// backgroundWindow is the encoding of a window that only sees background cells.
func backgroundWindow(background bool) uint {
	if background {
		return rules.Size - 1
	}
	return 0
}
