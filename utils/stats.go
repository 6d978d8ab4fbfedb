package utils

import "time"

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AverageActive        float64
	TotalGenerations     int
	StartTime            time.Time
	LastStepTime         time.Duration
	ActiveCells          int
	BoundingBoxSize      int
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one finished generation
func (s *Stats) Update(generation int, active int, boundingBox int, duration time.Duration) {
	s.TotalGenerations = generation
	s.ActiveCells = active
	s.BoundingBoxSize = boundingBox
	s.LastStepTime = duration
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for the active set size
	if s.AverageActive == 0 {
		s.AverageActive = float64(active)
	} else {
		s.AverageActive = (s.AverageActive * 0.9) + (float64(active) * 0.1)
	}
}

// Runtime returns the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}
