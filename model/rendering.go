package model

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
)

const (
	gridPosOn  = "#"
	gridPosOff = "."
)

// TerminalRenderer draws a store as '#'/'.' rows framed by the active set's
// bounding box grown by Padding cells.
type TerminalRenderer struct {
	Padding    int
	RowNumbers bool
	Color      bool
}

// Render returns the board as text. It fails with ErrEmptyState when the
// store has no active cells.
func (r *TerminalRenderer) Render(s *CellStore) (string, error) {
	b, err := s.Bounds()
	if err != nil {
		return "", errors.Wrap(err, "[Render] nothing to frame")
	}
	return r.RenderWithin(s, b.Pad(r.Padding)), nil
}

// RenderWithin draws the cells inside b.
func (r *TerminalRenderer) RenderWithin(s Reader, b Bounds) string {
	on, off := gridPosOn, gridPosOff
	if r.Color {
		on = aurora.Green(gridPosOn).Bold().String()
		off = aurora.BrightBlack(gridPosOff).String()
	}

	labelWidth := max(len(strconv.Itoa(b.MinY)), len(strconv.Itoa(b.MaxY)))

	var sb strings.Builder
	for y := b.MinY; y <= b.MaxY; y++ {
		if r.RowNumbers {
			fmt.Fprintf(&sb, "%*d: ", labelWidth, y)
		}
		for x := b.MinX; x <= b.MaxX; x++ {
			if s.Get(Coord{X: x, Y: y}) {
				sb.WriteString(on)
			} else {
				sb.WriteString(off)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Display writes the rendered board to w.
func (r *TerminalRenderer) Display(w io.Writer, s *CellStore) error {
	board, err := r.Render(s)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, board)
	return errors.Wrap(err, "[Display] failed to write board")
}
