package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/sheikhrachel/go-trench/model"
	"github.com/sheikhrachel/go-trench/utils"
)

// session drives one engine run, optionally mirrored by the dense reference
type session struct {
	engine   *model.Engine
	verifier *model.Verifier
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	log      logrus.FieldLogger
}

// loadSession parses the input file and builds the engine and its helpers
func loadSession(config utils.Config, log logrus.FieldLogger) (*session, error) {
	f, err := os.Open(config.Input)
	if err != nil {
		return nil, errors.Wrapf(err, "[loadSession] failed to open input: %+v", config.Input)
	}
	defer f.Close()

	return newSession(f, config, log)
}

func newSession(r io.Reader, config utils.Config, log logrus.FieldLogger) (*session, error) {
	table, store, err := model.ParseInput(r)
	if err != nil {
		return nil, err
	}

	var verifier *model.Verifier
	if config.Verify {
		var pool *model.GridPool
		if config.UseMemoryPool {
			pool = model.NewGridPool()
		}
		verifier = model.NewVerifier(table, store, pool)
	}

	engine, err := model.NewEngine(table, store, model.WithLogger(log))
	if err != nil {
		return nil, err
	}

	return &session{
		engine:   engine,
		verifier: verifier,
		renderer: &model.TerminalRenderer{
			Padding:    config.Padding,
			RowNumbers: config.RowNumbers,
			Color:      config.Color,
		},
		stats: utils.NewStats(),
		log:   log,
	}, nil
}

// Step advances one generation and cross-checks it when verification is on
func (s *session) Step() error {
	start := time.Now()
	s.engine.Step()
	elapsed := time.Since(start)

	store := s.engine.Store()
	boxSize := 0
	if b, err := store.Bounds(); err == nil {
		boxSize = b.Area()
	}
	s.stats.Update(s.engine.Generation(), store.Len(), boxSize, elapsed)

	if s.verifier == nil {
		return nil
	}
	s.verifier.Step()
	if err := s.verifier.Check(store, s.engine.Generation()); err != nil {
		return err
	}
	s.log.WithField("generation", s.engine.Generation()).Debug("Verified against dense reference")
	return nil
}

// Run advances n generations, stopping at the first verification failure
func (s *session) Run(n int) error {
	for i := 0; i < n; i++ {
		if err := s.Step(); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) Store() *model.CellStore { return s.engine.Store() }

func (s *session) Generation() int { return s.engine.Generation() }

func (s *session) Stats() *utils.Stats { return s.stats }

func (s *session) Renderer() *model.TerminalRenderer { return s.renderer }

// liveCountText formats the live count, spelling out the unbounded case
func liveCountText(store *model.CellStore) string {
	count, err := store.LiveCount()
	if errors.Is(err, model.ErrUnboundedCount) {
		return "unbounded (background is lit)"
	}
	return fmt.Sprintf("%d", count)
}

// displayResult prints the final count and, when asked, the board
func displayResult(w io.Writer, s *session, showBoard bool) error {
	store := s.Store()
	fmt.Fprintf(w, "Generation: %d | Lit: %s\n", s.Generation(), liveCountText(store))
	fmt.Fprintf(w, "Performance: %.1f gen/sec | Avg active: %.1f | Runtime: %.1fs\n",
		s.stats.GenerationsPerSecond, s.stats.AverageActive, s.stats.Runtime().Seconds())

	if b, err := store.Bounds(); err == nil && store.Background() {
		frame := b.Pad(s.renderer.Padding)
		fmt.Fprintf(w, "Lit within %dx%d frame: %d\n", frame.Width(), frame.Height(), store.CountWithin(frame))
	}

	if !showBoard {
		return nil
	}
	if err := s.renderer.Display(w, store); err != nil {
		if errors.Is(err, model.ErrEmptyState) {
			fmt.Fprintln(w, "(board is uniform, nothing to draw)")
			return nil
		}
		return err
	}
	return nil
}
