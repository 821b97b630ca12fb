package scheduler

import (
	"math"
	"time"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/tt"
)

const (
	defaultP           = 0.9
	defaultFreq        = 100
	defaultReserveTime = 2000 * time.Millisecond
)

// Parabolic is the canonical stop-scheduler: it fits a parabola through
// three support points - (1,1), ((1+n)/2, m), (n,1) - over the expected
// number of remaining moves n, and derives a per-move time budget from it.
// Every freq playouts it additionally checks whether the game already
// looks decided, or whether the leading move's lead is large enough that
// the runner-up cannot catch up within the remaining budget.
//
// Grounded on original_source's StopScheduler.
type Parabolic[N ScoredVisitable] struct {
	game  game.Game
	table tt.Table[N]

	p           float64
	freq        int
	reserveTime time.Duration

	a, b, c, w float64

	numPlayouts  float64
	startTime    time.Time
	elapsed      time.Duration
	msecsBudget  time.Duration
	speed        float64 // playouts per millisecond
}

// NewParabolic fits the parabola from the game's current estimate of
// remaining moves and validates the invariants the reference requires:
// the parabola's slope stays below the y=x line (2a+b < 1), and its
// support values satisfy 0 < s < m.
func NewParabolic[N ScoredVisitable](g game.Game, table tt.Table[N], p float64, freq int, reserveTime time.Duration) (*Parabolic[N], error) {
	if freq < 2 {
		return nil, ConfigError{Reason: "freq should be at least 2"}
	}
	if reserveTime <= 0 {
		return nil, ConfigError{Reason: "reserveTime should be greater than 0"}
	}
	if p < 0 || p > 1 {
		return nil, ConfigError{Reason: "p should be in [0, 1]"}
	}

	n := float64(g.NumExpectedMoves())
	s := 1.0
	m := 1.0 + (n/2.0-1.0)/2.0

	x1, y1 := 1.0, 1.0
	x2, y2 := (1.0+n)/2.0, m
	x3, y3 := n, s

	a, b, c := fitParabola(x1, y1, x2, y2, x3, y3)

	if 2*a+b >= 1 {
		return nil, ConfigError{Reason: "parabolic curve slope is not below the y=x line, lower m"}
	}
	if s >= m {
		return nil, ConfigError{Reason: "s should be smaller than m"}
	}
	if s <= 0 || m <= 0 {
		return nil, ConfigError{Reason: "s and m should be greater than 0"}
	}

	return &Parabolic[N]{game: g, table: table, p: p, freq: freq, reserveTime: reserveTime, a: a, b: b, c: c}, nil
}

func (s *Parabolic[N]) Schedule(timeLeft time.Duration) {
	s.numPlayouts = -1
	s.startTime = time.Now()

	remaining := timeLeft - s.reserveTime
	if remaining <= 0 {
		remaining = time.Millisecond
	}

	n := float64(s.game.NumExpectedMoves())
	s.w = s.a*n*n + s.b*n + s.c
	s.msecsBudget = time.Duration(s.w/n*float64(remaining.Milliseconds())) * time.Millisecond
}

func (s *Parabolic[N]) Finish() bool {
	s.numPlayouts++
	if math.Mod(s.numPlayouts+1, float64(s.freq)) != 0 {
		return false
	}

	s.elapsed = time.Since(s.startTime)
	if s.msecsBudget <= s.elapsed {
		return true
	}
	s.speed = s.numPlayouts / float64(s.elapsed.Milliseconds())

	var best *N
	maxVisits, secondMaxVisits := -1.0, -1.0
	for _, mv := range s.game.ValidMoves() {
		moveIdx := s.game.ToMoveIdx(mv.Piece, mv.Pos)
		child, found := s.table.Select(moveIdx)
		visits := 0.0
		if found {
			visits = child.VisitCount()
		}
		switch {
		case visits > maxVisits:
			secondMaxVisits = maxVisits
			maxVisits, best = visits, child
		case visits > secondMaxVisits:
			secondMaxVisits = visits
		}
	}

	if best != nil && s.elapsed >= 500*time.Millisecond {
		score := best.StateScore()
		if score < 0.01 || score > 0.99 {
			return true
		}
	}

	minPlayouts := maxVisits - secondMaxVisits
	remainingBudget := float64((s.msecsBudget - s.elapsed).Milliseconds())
	if minPlayouts > s.p/s.w*s.speed*remainingBudget {
		return true
	}
	return false
}
