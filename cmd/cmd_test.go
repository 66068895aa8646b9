package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/etnz/gbce"
	"github.com/etnz/gbce/renderer"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// setup points the app files to a temporary folder, disables terminal
// rendering and captures the output.
func setup(t *testing.T, journal string) *bytes.Buffer {
	t.Helper()
	tmp := t.TempDir()
	journalPath := filepath.Join(tmp, "trades.jsonl")
	if journal != "" {
		if err := os.WriteFile(journalPath, []byte(journal), 0644); err != nil {
			t.Fatalf("Failed to write journal: %v", err)
		}
	}
	emptyStocks, rawOutput := "", true

	oldJournal, oldStocks, oldRaw, oldStdout := journalFile, stocksFile, raw, stdout
	journalFile, stocksFile, raw = &journalPath, &emptyStocks, &rawOutput
	out := &bytes.Buffer{}
	stdout = out
	t.Cleanup(func() {
		journalFile, stocksFile, raw, stdout = oldJournal, oldStocks, oldRaw, oldStdout
	})
	t.Setenv(testingNow, "2026-10-19T10:03:00Z")
	return out
}

// run parses args for cmd and executes it.
func run(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return cmd.Execute(context.Background(), f)
}

const fullJournal = `{"time":"2026-10-19T10:00:00Z","symbol":"ALE","quantity":10,"indicator":"buy","price":4}
{"time":"2026-10-19T10:00:00Z","symbol":"GIN","quantity":10,"indicator":"buy","price":4}
{"time":"2026-10-19T10:00:00Z","symbol":"JOE","quantity":10,"indicator":"sell","price":4}
{"time":"2026-10-19T10:00:00Z","symbol":"POP","quantity":100,"indicator":"buy","price":5}
{"time":"2026-10-19T10:00:00Z","symbol":"TEA","quantity":10,"indicator":"buy","price":4}
{"time":"2026-10-19T10:01:00Z","symbol":"POP","quantity":100,"indicator":"sell","price":6}
{"time":"2026-10-19T11:00:00Z","symbol":"POP","quantity":100,"indicator":"sell","price":600}
`

func TestRecordCmd(t *testing.T) {
	setup(t, "")

	if status := run(t, &recordCmd{}, "-s", "POP", "-q", "100", "-p", "5.67"); status != subcommands.ExitSuccess {
		t.Fatalf("record status = %v, want success", status)
	}
	if status := run(t, &recordCmd{}, "-s", "GIN", "-q", "30", "-i", "sell", "-p", "6.12"); status != subcommands.ExitSuccess {
		t.Fatalf("record status = %v, want success", status)
	}

	got, err := os.ReadFile(*journalFile)
	if err != nil {
		t.Fatalf("Failed to read journal: %v", err)
	}
	want := `{"time":"2026-10-19T10:03:00Z","symbol":"POP","quantity":100,"indicator":"buy","price":5.67}
{"time":"2026-10-19T10:03:00Z","symbol":"GIN","quantity":30,"indicator":"sell","price":6.12}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("journal mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordCmd_Errors(t *testing.T) {
	setup(t, "")

	tests := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{name: "missing symbol", args: []string{"-q", "1", "-p", "5"}, want: subcommands.ExitUsageError},
		{name: "zero quantity", args: []string{"-s", "POP", "-p", "5"}, want: subcommands.ExitUsageError},
		{name: "negative price", args: []string{"-s", "POP", "-q", "1", "-p", "-5"}, want: subcommands.ExitUsageError},
		{name: "NaN price", args: []string{"-s", "POP", "-q", "1", "-p", "NaN"}, want: subcommands.ExitUsageError},
		{name: "infinite price", args: []string{"-s", "POP", "-q", "1", "-p", "Inf"}, want: subcommands.ExitUsageError},
		{name: "bad indicator", args: []string{"-s", "POP", "-q", "1", "-i", "hold", "-p", "5"}, want: subcommands.ExitUsageError},
		{name: "unknown symbol", args: []string{"-s", "XYZ", "-q", "1", "-p", "5"}, want: subcommands.ExitFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, &recordCmd{}, tc.args...); got != tc.want {
				t.Errorf("record status = %v, want %v", got, tc.want)
			}
		})
	}
	if _, err := os.Stat(*journalFile); !os.IsNotExist(err) {
		t.Errorf("journal file should not exist, Stat() error = %v", err)
	}
}

func TestReportCmd(t *testing.T) {
	out := setup(t, fullJournal)

	if status := run(t, &reportCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("report status = %v, want success", status)
	}
	got := out.String()
	for _, want := range []string{
		"As of 2026-10-19 10:03:00, over the last 5m0s.",
		"| POP | 6 | 1.3333 | 4.5 | 5.5 | 2 | 200 | £11.00 |",
		"| TEA | 4 | 0 | - | 4 | 1 | 10 | £0.40 |",
		"**4.2631**",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report output = %q, want it to contain %q", got, want)
		}
	}
}

func TestReportCmd_JSON(t *testing.T) {
	out := setup(t, fullJournal)

	if status := run(t, &reportCmd{}, "-json", "-w", "150s"); status != subcommands.ExitSuccess {
		t.Fatalf("report status = %v, want success", status)
	}
	var r renderer.Report
	if err := json.Unmarshal(out.Bytes(), &r); err != nil {
		t.Fatalf("report output is not a JSON report: %v\n%s", err, out)
	}
	if r.Window != "2m30s" || len(r.Stocks) != 5 {
		t.Errorf("report = %+v", r)
	}
	// only the 10:01:00 POP trade is left in the window.
	for _, s := range r.Stocks {
		if s.Symbol == "POP" && s.VWSP != renderer.Some(6) {
			t.Errorf("POP VWSP = %v, want 6", s.VWSP)
		}
	}
	if r.Index.Ok || r.IndexError == "" {
		t.Errorf("Index = %v, %q, want an error", r.Index, r.IndexError)
	}
}

func TestReportCmd_InvalidJournal(t *testing.T) {
	setup(t, `{"time":"2026-10-19T10:00:00Z","symbol":"POP","indicator":"buy"}
`)
	for _, args := range [][]string{nil, {"-json"}} {
		if status := run(t, &reportCmd{}, args...); status != subcommands.ExitFailure {
			t.Errorf("report %v status = %v, want failure", args, status)
		}
	}
}

func TestIndexCmd(t *testing.T) {
	out := setup(t, fullJournal)

	if status := run(t, &indexCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("index status = %v, want success", status)
	}
	got, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	if err != nil {
		t.Fatalf("index output %q is not a number: %v", out, err)
	}
	if want := math.Pow(4*4*4*5.5*4, 1.0/5); math.Abs(got-want) > 1e-9 {
		t.Errorf("index = %v, want %v", got, want)
	}
}

func TestIndexCmd_Errors(t *testing.T) {
	setup(t, fullJournal)
	if status := run(t, &indexCmd{}, "-w", "1m"); status != subcommands.ExitFailure {
		t.Errorf("index status = %v, want failure", status)
	}
	if status := run(t, &indexCmd{}, "-w", "-1m"); status != subcommands.ExitUsageError {
		t.Errorf("index status = %v, want usage error", status)
	}

	setup(t, `{"time":"2026-10-19T10:01:00Z","symbol":"POP","quantity":1,"indicator":"buy","price":5}
{"time":"2026-10-19T10:00:00Z","symbol":"POP","quantity":1,"indicator":"buy","price":5}
`)
	if status := run(t, &indexCmd{}); status != subcommands.ExitFailure {
		t.Errorf("index status on an unordered journal = %v, want failure", status)
	}
}

func TestStocksCmd(t *testing.T) {
	out := setup(t, "")

	if status := run(t, &stocksCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("stocks status = %v, want success", status)
	}
	if want := "| GIN | preferred | 8 | 2 | 100 |"; !strings.Contains(out.String(), want) {
		t.Errorf("stocks output = %q, want it to contain %q", out, want)
	}
}

func TestStocksCmd_JSON(t *testing.T) {
	out := setup(t, "")

	if status := run(t, &stocksCmd{}, "-json"); status != subcommands.ExitSuccess {
		t.Fatalf("stocks status = %v, want success", status)
	}
	// the output is a valid stocks file.
	stocksPath := filepath.Join(t.TempDir(), "stocks.jsonl")
	if err := os.WriteFile(stocksPath, out.Bytes(), 0644); err != nil {
		t.Fatalf("Failed to write stocks: %v", err)
	}
	*stocksFile = stocksPath

	e, err := DecodeExchange()
	if err != nil {
		t.Fatalf("DecodeExchange() unexpected error: %v", err)
	}
	if diff := cmp.Diff(gbce.NewReferenceExchange().Symbols(), e.Symbols()); diff != "" {
		t.Errorf("Symbols() mismatch (-want +got):\n%s", diff)
	}
	gin, _ := e.Get("GIN")
	if f, ok := gin.FixedDividend(); !ok || f != 2 {
		t.Errorf("GIN FixedDividend() = %v, %v, want 2", f, ok)
	}
}

func TestDecodeExchange_MissingFile(t *testing.T) {
	setup(t, "")
	missing := filepath.Join(t.TempDir(), "missing.jsonl")
	*stocksFile = missing

	e, err := DecodeExchange()
	if err != nil {
		t.Fatalf("DecodeExchange() unexpected error: %v", err)
	}
	if e.Len() != 5 {
		t.Errorf("Len() = %d, want the 5 sample stocks", e.Len())
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmd := range commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("no completion for command %q", cmd.Name())
		}
	}
}
