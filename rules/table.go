package rules

import (
	"fmt"
	"strings"
)

const (
	// WindowCells is the number of cells in the 3x3 sampling window.
	WindowCells = 9
	// Size is the number of entries in a rule table, one per window encoding.
	Size = 1 << WindowCells

	onChar  = '#'
	offChar = '.'
)

// ConfigError reports a rule table that cannot be built from its input.
type ConfigError struct {
	Want   int
	Got    int
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rules: invalid rule table: %s", e.Reason)
	}
	return fmt.Sprintf("rules: rule table has %d entries, want %d", e.Got, e.Want)
}

// Table maps window encodings to next-state values. It is immutable once built.
type Table struct {
	entries       [Size]bool
	transitioning bool
}

// NewTable builds a Table from exactly Size entries.
func NewTable(entries []bool) (*Table, error) {
	if len(entries) != Size {
		return nil, &ConfigError{Want: Size, Got: len(entries)}
	}
	t := &Table{}
	copy(t.entries[:], entries)
	t.transitioning = t.entries[0] && !t.entries[Size-1]
	return t, nil
}

// ParseTable reads the '#'/'.' form of a rule table.
func ParseTable(s string) (*Table, error) {
	s = strings.TrimSpace(s)
	entries := make([]bool, 0, len(s))
	for i, r := range s {
		switch r {
		case onChar:
			entries = append(entries, true)
		case offChar:
			entries = append(entries, false)
		default:
			return nil, &ConfigError{
				Want:   Size,
				Got:    len(s),
				Reason: fmt.Sprintf("unexpected character %q at offset %d", r, i),
			}
		}
	}
	return NewTable(entries)
}

// FromFunc builds a Table by evaluating fn for every window encoding.
func FromFunc(fn func(window uint) bool) *Table {
	t := &Table{}
	for i := range t.entries {
		t.entries[i] = fn(uint(i))
	}
	t.transitioning = t.entries[0] && !t.entries[Size-1]
	return t
}

// Lookup returns the next state for a window encoding.
// It panics if index is outside [0, Size).
func (t *Table) Lookup(index uint) bool {
	if index >= Size {
		panic(fmt.Sprintf("rules: window index %d out of range [0, %d)", index, Size))
	}
	return t.entries[index]
}

// IsTransitioning reports whether an all-off window turns on and an all-on
// window turns off, which makes the infinite background flip every generation.
func (t *Table) IsTransitioning() bool {
	return t.transitioning
}

// String renders the table back to its '#'/'.' form.
func (t *Table) String() string {
	var sb strings.Builder
	sb.Grow(Size)
	for _, on := range t.entries {
		if on {
			sb.WriteByte(onChar)
		} else {
			sb.WriteByte(offChar)
		}
	}
	return sb.String()
}
