// Package engine wires a Game, a transposition table, an exploration node
// variant, a simulation policy and a scheduler into one concrete AI worker
// and exposes the small, non-generic surface the UI drives:
// updateByOpponent/run/stop/setTimeLeft (spec.md §6.2).
//
// Grounded on the teacher's pkg/engine/engine.go: functional Options,
// build.NewVersion stamping, logw structured logging, and a mutex-guarded
// facade around the search internals.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aenteas/omega/pkg/game"
	"github.com/aenteas/omega/pkg/mcts"
	"github.com/aenteas/omega/pkg/node"
	"github.com/aenteas/omega/pkg/policy"
	"github.com/aenteas/omega/pkg/scheduler"
	"github.com/aenteas/omega/pkg/tt"
	"github.com/aenteas/omega/pkg/zobrist"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
)

var version = build.NewVersion(0, 1, 0)

// Worker is the AI driver surface exposed to the UI (spec.md §6.2),
// satisfied directly by *mcts.Driver[node.UCT, *node.UCT] and
// *mcts.Driver[node.RAVE, *node.RAVE] - the factory below picks one of the
// two at construction time and returns it behind this interface, since Go
// generics can't select a type parameter at runtime.
type Worker interface {
	SetTimeLeft(timeLeft time.Duration)
	UpdateByOpponent(m int) error
	Run() (played bool, err error)
	Stop()
}

// Options are engine creation options (spec.md §6.3).
type Options struct {
	// BoardSize is the hexagonal board radius (NewOmega's boardSize).
	BoardSize int
	// Node selects the exploration node variant: "UCT-2" or "RAVE".
	Node string
	// Policy selects the simulation policy: "random" or "MAST".
	Policy string
	// Scheduler selects the stop-scheduler: "parabolic" or "even".
	Scheduler string
	// Recycling selects the recycling LRU table over the two-slot table.
	Recycling bool
	// Budget is the recycling table's LRU capacity. Required if Recycling.
	Budget int
	// HashCodeSize is the Zobrist/TT bucket array size exponent B.
	HashCodeSize uint
	// ReserveTime is held back from every time budget handed to the
	// scheduler, so a search never spends its very last instant searching.
	ReserveTime time.Duration
	// Seed drives the Zobrist table, the random policy and MAST's RNG, for
	// reproducible runs. Zero uses a fixed default seed.
	Seed int64
}

func (o Options) String() string {
	return fmt.Sprintf("{boardSize=%v, node=%v, policy=%v, scheduler=%v, recycling=%v, budget=%v, hashCodeSize=%v}",
		o.BoardSize, o.Node, o.Policy, o.Scheduler, o.Recycling, o.Budget, o.HashCodeSize)
}

func (o Options) withDefaults() Options {
	if o.BoardSize == 0 {
		o.BoardSize = 5
	}
	if o.Node == "" {
		o.Node = "UCT-2"
	}
	if o.Policy == "" {
		o.Policy = "random"
	}
	if o.Scheduler == "" {
		o.Scheduler = "parabolic"
	}
	if o.HashCodeSize == 0 {
		o.HashCodeSize = 20
	}
	if o.ReserveTime == 0 {
		o.ReserveTime = 2000 * time.Millisecond
	}
	return o
}

// Option is an engine creation option.
type Option func(*Options)

// WithOptions sets all configuration at once, as opposed to incrementally
// via the other With* options.
func WithOptions(opts Options) Option {
	return func(o *Options) { *o = opts }
}

// WithNode selects the exploration node variant.
func WithNode(name string) Option {
	return func(o *Options) { o.Node = name }
}

// WithPolicy selects the simulation policy.
func WithPolicy(name string) Option {
	return func(o *Options) { o.Policy = name }
}

// WithRecycling selects the recycling LRU table, sized to budget.
func WithRecycling(budget int) Option {
	return func(o *Options) { o.Recycling, o.Budget = true, budget }
}

// WithSeed overrides the default zero seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// Engine encapsulates the shared game and the active AI worker. Only one
// side (UI or worker) may mutate the game at a time. The mutex serialises
// the facade methods that take it with each other; Run and Stop do not take
// it, so it does not exclude a live Run.
type Engine struct {
	name string
	opts Options

	g      *game.Omega
	worker Worker

	mu sync.Mutex
}

// New builds the game, transposition table, exploration node context,
// simulation policy, scheduler and worker from opts, and returns the
// assembled Engine. Returns a ConfigError (via the underlying
// constructors) for an invalid configuration, or an ErrResourceExhausted
// if hashCodeSize requests an unrepresentable table.
func New(ctx context.Context, name string, opts ...Option) (*Engine, error) {
	var o Options
	for _, fn := range opts {
		fn(&o)
	}
	o = o.withDefaults()

	g, err := game.NewOmega(o.BoardSize)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	worker, err := newWorker(g, o)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	e := &Engine{name: name, opts: o, g: g, worker: worker}

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), o)
	return e, nil
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Options returns the configuration the engine was built with.
func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

// Board returns the shared game, for read-only UI access while the worker
// is idle (spec.md §5's "shared resources" rule).
func (e *Engine) Board() *game.Omega {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.g
}

// SetTimeLeft supplies the remaining wall clock the next Run may spend.
func (e *Engine) SetTimeLeft(timeLeft time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.worker.SetTimeLeft(timeLeft)
}

// Move applies an opponent move by its (piece, pos) pair and rebases the
// worker onto the resulting position. Must be called with the worker idle.
func (e *Engine) Move(ctx context.Context, piece, pos int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	valid := false
	for _, mv := range e.g.ValidMoves() {
		if mv.Piece == piece && mv.Pos == pos {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("engine: invalid move piece=%v pos=%v", piece, pos)
	}

	m := e.g.ToMoveIdx(piece, pos)
	e.g.Update(m)
	e.g.Checkpoint()
	if err := e.worker.UpdateByOpponent(m); err != nil {
		return fmt.Errorf("engine: %w", err)
	}

	logw.Infof(ctx, "Move piece=%v pos=%v", piece, pos)
	return nil
}

// Run starts the AI worker for one timed search. Blocks until the search
// completes or is interrupted; returns whether a move was played. An
// interrupted search returns (false, nil).
func (e *Engine) Run(ctx context.Context) (bool, error) {
	played, err := e.worker.Run()
	if errors.Is(err, mcts.ErrInterrupted) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	e.g.Checkpoint()

	logw.Infof(ctx, "Search completed: played=%v, depth=%v", played, e.g.CurrentDepth())
	return played, nil
}

// Stop halts an active Run; idempotent, safe to call from any goroutine.
func (e *Engine) Stop() {
	e.worker.Stop()
}

// newWorker selects the node/policy/table/scheduler variants named by opts
// and returns the type-erased Worker. The node type parameter is fixed per
// branch since Go generics can't select a type parameter at runtime.
func newWorker(g *game.Omega, o Options) (Worker, error) {
	zt, err := zobrist.NewTable(g.TotalValidMoveNum(), o.HashCodeSize, o.Seed)
	if err != nil {
		return nil, err
	}

	switch o.Node {
	case "UCT-2":
		table, err := newTable[node.UCT](zt, g, o, node.ResetUCT)
		if err != nil {
			return nil, err
		}
		pol, err := newPolicy(g, o)
		if err != nil {
			return nil, err
		}
		sched, err := newScheduler[node.UCT](g, table, o)
		if err != nil {
			return nil, err
		}
		return mcts.New[node.UCT, *node.UCT](g, table, pol, sched, node.ResetUCT), nil

	case "RAVE":
		table, err := newTable[node.RAVE](zt, g, o, node.ResetRAVE)
		if err != nil {
			return nil, err
		}
		pol, err := newPolicy(g, o)
		if err != nil {
			return nil, err
		}
		sched, err := newScheduler[node.RAVE](g, table, o)
		if err != nil {
			return nil, err
		}
		return mcts.New[node.RAVE, *node.RAVE](g, table, pol, sched, node.ResetRAVE), nil

	default:
		return nil, mcts.ConfigError{Reason: fmt.Sprintf("unknown node variant %q", o.Node)}
	}
}

func newTable[N tt.Visitable](zt *zobrist.Table, g *game.Omega, o Options, reset func(*N, game.Game)) (tt.Table[N], error) {
	init := func(n *N) { reset(n, g) }
	if o.Recycling {
		return tt.NewRecycling[N](zt, g.MaxTurnNum(), o.Budget, init)
	}
	return tt.NewTwoSlot[N](zt, g.MaxTurnNum(), init)
}

func newPolicy(g *game.Omega, o Options) (policy.Policy, error) {
	switch o.Policy {
	case "random":
		return policy.NewRandom(o.Seed), nil
	case "MAST":
		return policy.NewMAST(o.Seed, g.MaxTurnNum(), g.TotalValidMoveNum()), nil
	default:
		return nil, mcts.ConfigError{Reason: fmt.Sprintf("unknown policy variant %q", o.Policy)}
	}
}

func newScheduler[N scheduler.ScoredVisitable](g *game.Omega, table tt.Table[N], o Options) (scheduler.Scheduler, error) {
	switch o.Scheduler {
	case "parabolic":
		return scheduler.NewParabolic[N](g, table, 0.9, 100, o.ReserveTime)
	case "even":
		return scheduler.NewEven(g, 100, o.ReserveTime)
	default:
		return nil, mcts.ConfigError{Reason: fmt.Sprintf("unknown scheduler variant %q", o.Scheduler)}
	}
}
