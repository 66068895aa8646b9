package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/etnz/gbce"
	"github.com/google/subcommands"
)

// indexCmd holds the flags for the 'index' subcommand.
type indexCmd struct {
	window window
}

func (*indexCmd) Name() string     { return "index" }
func (*indexCmd) Synopsis() string { return "display the GBCE all share index" }
func (*indexCmd) Usage() string {
	return `gbce index [-w <window>]

  Replays the trade journal and prints the GBCE all share index, the geometric
  mean of the volume weighted stock price of every stock. Every stock must
  have traded within the window.
`
}

func (c *indexCmd) SetFlags(f *flag.FlagSet) {
	c.window = window(gbce.DefaultWindow)
	f.Var(&c.window, "w", "trailing window of the volume weighted stock price")
}

func (c *indexCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e, err := OpenMarket(now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market: %v\n", err)
		return subcommands.ExitFailure
	}
	index, err := e.AllShareIndexWithin(c.window.Duration())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing the index: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, strconv.FormatFloat(index, 'g', -1, 64))
	return subcommands.ExitSuccess
}

// window is a flag.Value for a positive duration.
type window time.Duration

func (w window) Duration() time.Duration { return time.Duration(w) }
func (w window) String() string          { return time.Duration(w).String() }

func (w *window) Set(s string) error {
	d, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	if d <= 0 {
		return fmt.Errorf("window must be positive, got %s", d)
	}
	*w = window(d)
	return nil
}
