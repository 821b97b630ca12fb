package scheduler

import (
	"math"
	"time"

	"github.com/aenteas/omega/pkg/game"
)

// Even divides the remaining wall clock evenly by the number of expected
// remaining moves, with no parabola fit. A supplemental variant named in
// spec.md §4.7 ("two variants exist") but not detailed there; grounded on
// original_source's EvenScheduler.
type Even struct {
	game game.Game

	freq        int
	reserveTime time.Duration

	numPlayouts float64
	startTime   time.Time
	elapsed     time.Duration
	msecsBudget time.Duration
}

func NewEven(g game.Game, freq int, reserveTime time.Duration) (*Even, error) {
	if freq < 2 {
		return nil, ConfigError{Reason: "freq should be at least 2"}
	}
	if reserveTime <= 0 {
		return nil, ConfigError{Reason: "reserveTime should be greater than 0"}
	}
	return &Even{game: g, freq: freq, reserveTime: reserveTime}, nil
}

func (s *Even) Schedule(timeLeft time.Duration) {
	s.numPlayouts = -1
	s.startTime = time.Now()

	remaining := timeLeft - s.reserveTime
	if remaining <= 0 {
		remaining = time.Millisecond
	}
	s.msecsBudget = remaining / time.Duration(s.game.NumExpectedMoves())
}

func (s *Even) Finish() bool {
	s.numPlayouts++
	if math.Mod(s.numPlayouts+1, float64(s.freq)) != 0 {
		return false
	}
	s.elapsed = time.Since(s.startTime)
	return s.msecsBudget <= s.elapsed
}
