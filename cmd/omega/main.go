// omega is a console front-end for the Omega MCTS engine: a terminal
// stand-in for the graphical UI, driving the same AI worker surface
// (setTimeLeft/run/stop/updateByOpponent) the real UI would.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/aenteas/omega/pkg/engine"
	"github.com/aenteas/omega/pkg/engine/console"
	"github.com/seekerror/logw"
)

var (
	boardSize    = flag.Int("board-size", 5, "Hexagonal board radius")
	node         = flag.String("node", "UCT-2", "Exploration node variant: UCT-2 or RAVE")
	policy       = flag.String("policy", "random", "Simulation policy: random or MAST")
	scheduler    = flag.String("scheduler", "parabolic", "Stop scheduler: parabolic or even")
	recycling    = flag.Bool("recycling", false, "Use the recycling LRU transposition table")
	budget       = flag.Int("budget", 100000, "Recycling table LRU capacity (only with -recycling)")
	hashCodeSize = flag.Uint("hash-code-size", 20, "Zobrist/TT bucket array size exponent")
	reserveTime  = flag.Duration("reserve-time", 2*time.Second, "Wall clock withheld from every search budget")
	seed         = flag.Int64("seed", 0, "Random seed for Zobrist hashing and simulation policies")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: omega [options]

OMEGA plays the hexagonal stone-placement game of the same name against a
Monte Carlo Tree Search engine, via a console front-end.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e, err := engine.New(ctx, "OMEGA",
		engine.WithOptions(engine.Options{
			BoardSize:    *boardSize,
			Node:         *node,
			Policy:       *policy,
			Scheduler:    *scheduler,
			Recycling:    *recycling,
			Budget:       *budget,
			HashCodeSize: *hashCodeSize,
			ReserveTime:  *reserveTime,
			Seed:         *seed,
		}),
	)
	if err != nil {
		logw.Exitf(ctx, "Failed to initialize engine: %v", err)
	}

	in := console.ReadLines(ctx)
	driver, out := console.NewDriver(ctx, e, in)
	go console.WriteLines(ctx, out)

	<-driver.Closed()
}
