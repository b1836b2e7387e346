// Package report renders analysis results into the file formats served by
// the report endpoints and the CLI.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/thermetry/thermetry/internal/analysis"
)

// TimestampLayout is the human-readable header timestamp format.
const TimestampLayout = "2006-01-02 15:04:05"

// WriteSummaryText renders a plain-text weather analysis report.
func WriteSummaryText(w io.Writer, generatedAt time.Time, result *analysis.Summary) error {
	var b strings.Builder

	b.WriteString("Weather Analysis Report - " + generatedAt.Format(TimestampLayout) + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "  Count:   %d\n", result.Count)
	fmt.Fprintf(&b, "  Average: %.2f\n", result.Average)
	fmt.Fprintf(&b, "  Median:  %.2f\n", result.Median)
	if result.StdDev != nil {
		fmt.Fprintf(&b, "  Std Dev: %.2f\n", *result.StdDev)
	} else {
		b.WriteString("  Std Dev: n/a\n")
	}
	fmt.Fprintf(&b, "  Minimum: %.2f (at %v)\n", result.Min, result.MinTime)
	fmt.Fprintf(&b, "  Maximum: %.2f (at %v)\n", result.Max, result.MaxTime)

	b.WriteString("\nData Quality:\n")
	fmt.Fprintf(&b, "  Truncated: %t\n", result.Truncated)
	if len(result.Warnings) == 0 {
		b.WriteString("  Warnings:  none\n")
	} else {
		b.WriteString("  Warnings:\n")
		for _, warning := range result.Warnings {
			b.WriteString("    - " + warning + "\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteSummaryCSV renders the summary as metric,value rows.
func WriteSummaryCSV(w io.Writer, result *analysis.Summary) error {
	csvWriter := csv.NewWriter(w)

	stdDev := ""
	if result.StdDev != nil {
		stdDev = strconv.FormatFloat(*result.StdDev, 'f', -1, 64)
	}

	rows := [][]string{
		{"metric", "value"},
		{"count", strconv.Itoa(result.Count)},
		{"average", strconv.FormatFloat(result.Average, 'f', -1, 64)},
		{"median", strconv.FormatFloat(result.Median, 'f', -1, 64)},
		{"stddev", stdDev},
		{"min", strconv.FormatFloat(result.Min, 'f', -1, 64)},
		{"min_time", fmt.Sprintf("%v", result.MinTime)},
		{"max", strconv.FormatFloat(result.Max, 'f', -1, 64)},
		{"max_time", fmt.Sprintf("%v", result.MaxTime)},
		{"truncated", strconv.FormatBool(result.Truncated)},
	}
	for i, warning := range result.Warnings {
		rows = append(rows, []string{fmt.Sprintf("warning_%d", i+1), warning})
	}

	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

type summaryEnvelope struct {
	GeneratedAt string            `json:"generated_at"`
	Summary     *analysis.Summary `json:"summary"`
}

// WriteSummaryJSON renders the summary as an indented JSON document.
func WriteSummaryJSON(w io.Writer, generatedAt time.Time, result *analysis.Summary) error {
	envelope := summaryEnvelope{
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Summary:     result,
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	_, err = w.Write(data)
	return err
}

// WriteNumbersText renders the numeric summary report produced by the CLI.
func WriteNumbersText(w io.Writer, generatedAt time.Time, numbers []float64, summary *analysis.NumberSummary) error {
	var b strings.Builder

	b.WriteString("Analysis Report - " + generatedAt.Format(TimestampLayout) + "\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	b.WriteString("Numbers analyzed:\n")
	for _, n := range numbers {
		fmt.Fprintf(&b, "  %v\n", n)
	}

	b.WriteString("\nResults:\n")
	fmt.Fprintf(&b, "  Total:   %.2f\n", summary.Total)
	fmt.Fprintf(&b, "  Count:   %d\n", summary.Count)
	fmt.Fprintf(&b, "  Average: %.2f\n", summary.Average)
	fmt.Fprintf(&b, "  Minimum: %.2f\n", summary.Min)
	fmt.Fprintf(&b, "  Maximum: %.2f\n", summary.Max)

	_, err := io.WriteString(w, b.String())
	return err
}
