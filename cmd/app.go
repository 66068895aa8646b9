// Package cmd implements the CLI application to track the GBCE stocks.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/gbce"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range commands {
		c.Register(cmd, "exchange")
	}
}

var commands = []subcommands.Command{
	&stocksCmd{},
	&recordCmd{},
	&reportCmd{},
	&indexCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var stocksFile = flag.String("stocks-file", "", "Path to the stock definitions (JSONL format), the GBCE sample stocks if empty")
var journalFile = flag.String("journal-file", "trades.jsonl", "Path to the trade journal (JSONL format)")
var raw = flag.Bool("raw", false, "print markdown as is, without terminal rendering")

// stdout is where commands write their output.
var stdout io.Writer = os.Stdout

// testingNow is the environment variable that overrides the current time.
const testingNow = "GBCE_TESTING_NOW"

// now returns the current time, or the RFC3339 time in GBCE_TESTING_NOW.
func now() time.Time {
	if v := os.Getenv(testingNow); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			panic(err)
		}
		return t
	}
	return time.Now()
}

// DecodeExchange decodes the stock definitions from the app stocks file.
func DecodeExchange(opts ...gbce.StockOption) (*gbce.Exchange, error) {
	if *stocksFile == "" {
		return gbce.NewReferenceExchange(opts...), nil
	}
	f, err := os.Open(*stocksFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning, stocks file %q does not exist, using the GBCE sample stocks instead", *stocksFile)
		return gbce.NewReferenceExchange(opts...), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	e, err := gbce.DecodeStocks(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", *stocksFile, err)
	}
	return e, nil
}

// DecodeJournal decodes the trade journal from the app journal file.
// A missing journal is an empty one.
func DecodeJournal() ([]gbce.JournalEntry, error) {
	f, err := os.Open(*journalFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	entries, err := gbce.DecodeJournal(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", *journalFile, err)
	}
	return entries, nil
}

// OpenMarket loads the exchange and replays the journal up to asOf.
// The stocks' clock is left at asOf.
func OpenMarket(asOf time.Time) (*gbce.Exchange, error) {
	clock := gbce.NewManualClock(time.Time{})
	e, err := DecodeExchange(gbce.WithClock(clock))
	if err != nil {
		return nil, err
	}
	entries, err := DecodeJournal()
	if err != nil {
		return nil, err
	}
	past := entries[:0]
	for _, entry := range entries {
		if !entry.Time.After(asOf) {
			past = append(past, entry)
		}
	}
	if err := gbce.Replay(e, past, clock); err != nil {
		return nil, fmt.Errorf("cannot replay %q: %w", *journalFile, err)
	}
	clock.Set(asOf)
	return e, nil
}

// EncodeJournalEntry appends a single entry into the app journal file.
func EncodeJournalEntry(entry gbce.JournalEntry) subcommands.ExitStatus {
	filename := *journalFile
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := gbce.EncodeJournalEntry(f, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to journal file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders md for the terminal.
func printMarkdown(md string) {
	if *raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
