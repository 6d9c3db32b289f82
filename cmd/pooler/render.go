package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"

	"github.com/utkarsh5026/pooler/pool"
)

var (
	bold  = color.New(color.Bold)
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

type result = pool.BatchResult[string, string]

// makeProgressBar counts finished inputs. With retries the number of
// attempts is unknown up front, so the bar becomes an open-ended counter.
func makeProgressBar(w io.Writer, total int, retry bool) *progressbar.ProgressBar {
	desc := "Running inputs"
	if retry {
		total = -1
		desc = "Running attempts"
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWriter(w),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionClearOnFinish(),
	)
}

func renderSummary(w io.Writer, res *result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Batch", "Rounds", "Succeeded", "Failed", "Elapsed", "Peak RSS")
	_ = table.Append(
		res.ID.String()[:8],
		strconv.Itoa(res.Rounds),
		strconv.Itoa(len(res.Successes)),
		strconv.Itoa(len(res.Failures)),
		res.Elapsed.Round(time.Millisecond).String(),
		formatBytes(res.PeakRSS),
	)
	return table.Render()
}

func renderFailures(w io.Writer, res *result) error {
	if len(res.Failures) == 0 {
		return nil
	}

	red.Fprintf(w, "\n✗ %d input(s) failed\n", len(res.Failures))
	table := tablewriter.NewWriter(w)
	table.Header("#", "Input", "Round", "Error")
	for i, f := range res.Failures {
		_ = table.Append(strconv.Itoa(i+1), f.Input, strconv.Itoa(f.Round), f.Err.Error())
	}
	return table.Render()
}

func renderSuccesses(w io.Writer, res *result) error {
	bold.Fprintf(w, "\nResults\n")
	table := tablewriter.NewWriter(w)
	table.Header("Input", "Round", "Output")
	for _, s := range res.Successes {
		_ = table.Append(s.Input, strconv.Itoa(s.Round), s.Value)
	}
	return table.Render()
}

func renderVerdict(w io.Writer, res *result) {
	if res.OK() {
		green.Fprintf(w, "✓ all %d input(s) succeeded\n", len(res.Successes))
		return
	}
	red.Fprintf(w, "✗ %d of %d input(s) still failing\n", len(res.Failures), res.Total())
}

// formatBytes renders n with a binary unit suffix.
func formatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
