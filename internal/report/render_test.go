package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/thermetry/thermetry/internal/analysis"
)

func sampleSummary(t *testing.T) *analysis.Summary {
	t.Helper()
	result, err := analysis.Analyze(
		[]interface{}{"t0", "t1", "t2"},
		[]interface{}{10.0, nil, 30.0},
	)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	return result
}

func TestWriteSummaryText(t *testing.T) {
	generatedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteSummaryText(&buf, generatedAt, sampleSummary(t)); err != nil {
		t.Fatalf("WriteSummaryText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Weather Analysis Report - 2026-03-14 09:26:53",
		"Count:   2",
		"Average: 20.00",
		"Median:  20.00",
		"Std Dev: 14.14",
		"Minimum: 10.00 (at t0)",
		"Maximum: 30.00 (at t2)",
		"Truncated: false",
		"Skipped 1 pair(s) where time or temperature was missing.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTextNoWarnings(t *testing.T) {
	result, err := analysis.Analyze([]interface{}{"t0", "t1"}, []interface{}{1.0, 2.0})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSummaryText(&buf, time.Now(), result); err != nil {
		t.Fatalf("WriteSummaryText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Warnings:  none") {
		t.Errorf("expected explicit no-warnings marker:\n%s", buf.String())
	}
}

func TestWriteSummaryTextSingleValue(t *testing.T) {
	result, err := analysis.Analyze([]interface{}{"t0"}, []interface{}{21.5})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSummaryText(&buf, time.Now(), result); err != nil {
		t.Fatalf("WriteSummaryText failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Std Dev: n/a") {
		t.Errorf("expected n/a stddev for single value:\n%s", buf.String())
	}
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, sampleSummary(t)); err != nil {
		t.Fatalf("WriteSummaryCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if records[0][0] != "metric" || records[0][1] != "value" {
		t.Errorf("unexpected header row: %v", records[0])
	}

	byMetric := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		byMetric[rec[0]] = rec[1]
	}

	if byMetric["count"] != "2" {
		t.Errorf("count = %s, want 2", byMetric["count"])
	}
	if byMetric["average"] != "20" {
		t.Errorf("average = %s, want 20", byMetric["average"])
	}
	if byMetric["min_time"] != "t0" || byMetric["max_time"] != "t2" {
		t.Errorf("extrema times = %s/%s, want t0/t2", byMetric["min_time"], byMetric["max_time"])
	}
	if !strings.Contains(byMetric["warning_1"], "Skipped 1 pair(s)") {
		t.Errorf("warning_1 = %s", byMetric["warning_1"])
	}
}

func TestWriteSummaryCSVStdDevEmptyWhenNil(t *testing.T) {
	result, err := analysis.Analyze([]interface{}{"t0"}, []interface{}{5.0})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteSummaryCSV(&buf, result); err != nil {
		t.Fatalf("WriteSummaryCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	for _, rec := range records {
		if rec[0] == "stddev" && rec[1] != "" {
			t.Errorf("stddev = %q, want empty", rec[1])
		}
	}
}

func TestWriteSummaryJSON(t *testing.T) {
	generatedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteSummaryJSON(&buf, generatedAt, sampleSummary(t)); err != nil {
		t.Fatalf("WriteSummaryJSON failed: %v", err)
	}

	var decoded struct {
		GeneratedAt string `json:"generated_at"`
		Summary     struct {
			Count    int      `json:"count"`
			Average  float64  `json:"average"`
			MinTime  string   `json:"min_time"`
			Warnings []string `json:"warnings"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if decoded.GeneratedAt != "2026-03-14T09:26:53Z" {
		t.Errorf("generated_at = %s", decoded.GeneratedAt)
	}
	if decoded.Summary.Count != 2 || decoded.Summary.Average != 20 {
		t.Errorf("summary = %+v", decoded.Summary)
	}
	if decoded.Summary.MinTime != "t0" {
		t.Errorf("min_time = %s, want t0", decoded.Summary.MinTime)
	}
	if len(decoded.Summary.Warnings) != 1 {
		t.Errorf("warnings = %v", decoded.Summary.Warnings)
	}
}

func TestWriteNumbersText(t *testing.T) {
	numbers := []float64{10, 20.5}
	summary, err := analysis.SummarizeNumbers(numbers)
	if err != nil {
		t.Fatalf("SummarizeNumbers failed: %v", err)
	}

	generatedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteNumbersText(&buf, generatedAt, numbers, summary); err != nil {
		t.Fatalf("WriteNumbersText failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Analysis Report - 2026-03-14 09:26:53",
		"Numbers analyzed:",
		"  10",
		"  20.5",
		"Total:   30.50",
		"Count:   2",
		"Average: 15.25",
		"Minimum: 10.00",
		"Maximum: 20.50",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
