// Package console implements a terminal stand-in for the graphical UI
// described in spec.md §1: it prints the board, reads a human move or
// triggers the AI worker, and relays setTimeLeft/run/stop calls across
// goroutines the same way the teacher's console driver relays UCI
// commands - without widgets, dialogs, or any timer beyond time.Duration
// bookkeeping.
package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aenteas/omega/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// defaultTimeLeft is handed to setTimeLeft when "go" is issued with no
// explicit budget.
const defaultTimeLeft = 5 * time.Second

// Driver implements a console driver for debugging and manual play.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	active  atomic.Bool // an AI run is in flight
	runDone chan struct{}
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v", d.e.Name())
	d.printBoard()

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Fields(line)
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "print", "p":
				if d.active.Load() {
					d.out <- "search in progress"
					break
				}
				d.printBoard()

			case "move", "m":
				d.ensureInactive(ctx)

				if err := d.move(ctx, args); err != nil {
					d.out <- fmt.Sprintf("invalid move: %v", err)
					break
				}
				d.printBoard()

			case "go", "g":
				d.ensureInactive(ctx)
				d.runAsync(ctx, args)

			case "stop", "s":
				d.e.Stop()

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume a bare "<piece> <pos>" move if not a recognized
				// command.

				d.ensureInactive(ctx)
				if err := d.move(ctx, parts); err != nil {
					d.out <- fmt.Sprintf("invalid command: '%v'", line)
					break
				}
				d.printBoard()
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) move(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: move <piece> <pos>")
	}
	piece, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid piece %q", args[0])
	}
	pos, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid pos %q", args[1])
	}
	return d.e.Move(ctx, piece, pos)
}

// runAsync starts the AI worker on its own goroutine, since Engine.Run
// blocks for the whole search; the console loop stays responsive to "stop"
// and new input in the meantime.
func (d *Driver) runAsync(ctx context.Context, args []string) {
	timeLeft := defaultTimeLeft
	if len(args) > 0 {
		if ms, err := strconv.Atoi(args[0]); err == nil {
			timeLeft = time.Duration(ms) * time.Millisecond
		}
	}

	d.e.SetTimeLeft(timeLeft)
	d.active.Store(true)
	d.runDone = make(chan struct{})

	go func() {
		defer close(d.runDone)

		played, err := d.e.Run(ctx)
		d.searchCompleted(played, err)
	}()
}

// ensureInactive stops and waits for any in-flight run before a command
// that needs exclusive access to the shared game, per spec.md §5's
// sequential-ownership rule.
func (d *Driver) ensureInactive(ctx context.Context) {
	if d.active.Load() {
		d.e.Stop()
		<-d.runDone
	}
	_ = ctx
}

func (d *Driver) searchCompleted(played bool, err error) {
	if !d.active.CompareAndSwap(true, false) {
		return // stale or duplicate completion
	}

	switch {
	case err != nil:
		d.out <- fmt.Sprintf("search error: %v", err)
	case !played:
		d.out <- "search interrupted: no move played"
	default:
		d.out <- "search completed"
		d.printBoard()
	}
}

func (d *Driver) printBoard() {
	g := d.e.Board()

	d.out <- ""
	d.out <- fmt.Sprintf("depth=%v  next player=%v", g.CurrentDepth(), g.NextPlayer())

	var sb strings.Builder
	for _, mv := range g.MovesSince(0) {
		sb.WriteString(fmt.Sprintf(" p%v@%v(%v)", mv.Piece, mv.Pos, mv.Player))
	}
	d.out <- "moves:" + sb.String()

	if g.End() {
		d.out <- fmt.Sprintf("result: outcome=%.1f", g.Outcome())
	}
	d.out <- ""
}
