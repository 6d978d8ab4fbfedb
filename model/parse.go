package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-trench/rules"
)

// ParseInput reads a rule line, a blank line and a board of '#'/'.' rows.
// Row index is y and column index is x, both starting at 0.
func ParseInput(r io.Reader) (*rules.Table, *CellStore, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, nil, errors.Wrap(err, "[ParseInput] failed to read rule line")
		}
		return nil, nil, errors.New("[ParseInput] input is empty")
	}
	table, err := rules.ParseTable(sc.Text())
	if err != nil {
		return nil, nil, errors.Wrap(err, "[ParseInput] failed to parse rule line")
	}

	if !sc.Scan() || strings.TrimSpace(sc.Text()) != "" {
		return nil, nil, errors.New("[ParseInput] expected a blank line after the rule line")
	}

	store, err := parseBoard(sc)
	if err != nil {
		return nil, nil, err
	}
	return table, store, nil
}

// ParseBoard reads rows of '#'/'.' into a store with an off background.
func ParseBoard(r io.Reader) (*CellStore, error) {
	return parseBoard(bufio.NewScanner(r))
}

func parseBoard(sc *bufio.Scanner) (*CellStore, error) {
	store := NewCellStore(false)
	width := -1
	y := 0
	blankAt := -1
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			// only trailing blank lines may follow the first row
			if width != -1 && blankAt == -1 {
				blankAt = y
			}
			continue
		}
		if blankAt != -1 {
			return nil, errors.Errorf("[ParseInput] row %d has width 0, want %d", blankAt, width)
		}
		if width == -1 {
			width = len(line)
		} else if len(line) != width {
			return nil, errors.Errorf("[ParseInput] row %d has width %d, want %d", y, len(line), width)
		}
		for x, ch := range line {
			switch ch {
			case '#':
				store.Set(Coord{X: x, Y: y}, true)
			case '.':
			default:
				return nil, errors.Errorf("[ParseInput] unexpected character %q at row %d column %d", ch, y, x)
			}
		}
		y++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "[ParseInput] failed to read board")
	}
	if width == -1 {
		return nil, errors.New("[ParseInput] board is empty")
	}
	return store, nil
}
