package model

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-trench/rules"
)

// Engine advances a CellStore one generation at a time using a rule table.
type Engine struct {
	table      *rules.Table
	store      *CellStore
	generation int
	log        logrus.FieldLogger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for per-step debug entries.
func WithLogger(l logrus.FieldLogger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine creates an engine at generation 0. The engine takes ownership of
// store; callers must not mutate it afterwards.
func NewEngine(table *rules.Table, store *CellStore, opts ...EngineOption) (*Engine, error) {
	if table == nil {
		return nil, errors.New("[NewEngine] rule table is required")
	}
	if store == nil {
		store = NewCellStore(false)
	}
	e := &Engine{
		table: table,
		store: store,
		log:   discardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Table returns the rule table.
func (e *Engine) Table() *rules.Table { return e.table }

// Store returns the current generation. It is replaced, never mutated, by Step.
func (e *Engine) Store() *CellStore { return e.store }

// Generation returns the number of steps taken.
func (e *Engine) Generation() int { return e.generation }

// Step advances the grid by one generation.
//
// Only cells within one window radius of an active cell can end up different
// from the new background, so the next store is built by sampling that
// frontier against the frozen previous store.
func (e *Engine) Step() {
	prev := e.store
	nextBackground := e.table.Lookup(backgroundWindow(prev.background))
	next := newCellStoreSize(nextBackground, prev.Len())

	visited := make(map[Coord]struct{}, prev.Len()*2)
	for c := range prev.active {
		for _, d := range Window {
			fc := c.Add(d)
			if _, seen := visited[fc]; seen {
				continue
			}
			visited[fc] = struct{}{}
			next.Set(fc, e.table.Lookup(Sample(prev, fc)))
		}
	}

	e.store = next
	e.generation++

	e.log.WithFields(logrus.Fields{
		"generation": e.generation,
		"frontier":   len(visited),
		"active":     next.Len(),
		"background": next.background,
	}).Debug("step")
}

// StepN advances the grid by n generations.
func (e *Engine) StepN(n int) {
	for i := 0; i < n; i++ {
		e.Step()
	}
}
