package analysis

import (
	"github.com/montanaflynn/stats"
)

// NumberSummary is the result of summarizing a clean list of numbers.
type NumberSummary struct {
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// SummarizeNumbers computes total, count, average and extrema over a list
// that needs no reconciliation. The only rejected input is an empty list.
func SummarizeNumbers(numbers []float64) (*NumberSummary, error) {
	if len(numbers) == 0 {
		return nil, newInvalidInput(CauseEmptyArgument,
			"'numbers' must not be empty.")
	}

	total, _ := stats.Sum(numbers)
	average, _ := stats.Mean(numbers)
	min, _ := stats.Min(numbers)
	max, _ := stats.Max(numbers)

	return &NumberSummary{
		Total:   total,
		Count:   len(numbers),
		Average: average,
		Min:     min,
		Max:     max,
	}, nil
}
