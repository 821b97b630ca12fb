package console

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/seekerror/logw"
)

// ReadLines reads console-protocol commands from stdin into a chan, one
// line per command ("move 0 12", "go 3000", "stop", ...). Async; the
// channel closes when stdin is exhausted, which NewDriver's process loop
// treats as "input stream broken" and exits on.
func ReadLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

// WriteLines writes the Driver's output chan (board prints, search status)
// to stdout, one line at a time, until the driver closes it.
func WriteLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
