// Package analysis turns raw, possibly malformed time/temperature series
// into validated summary statistics. It is pure computation: no I/O, no
// logging, no shared state.
package analysis

import (
	"fmt"
	"reflect"

	"github.com/montanaflynn/stats"

	"github.com/thermetry/thermetry/internal/utils"
)

// Summary is the result of analyzing one time/temperature series.
// StdDev is nil when fewer than two valid pairs exist. MinTime and MaxTime
// echo the caller-supplied time tokens of the selected pairs unmodified.
type Summary struct {
	Median    float64     `json:"median"`
	StdDev    *float64    `json:"stddev"`
	Min       float64     `json:"min"`
	MinTime   interface{} `json:"min_time"`
	Max       float64     `json:"max"`
	MaxTime   interface{} `json:"max_time"`
	Average   float64     `json:"average"`
	Count     int         `json:"count"`
	Truncated bool        `json:"truncated"`
	Warnings  []string    `json:"warnings"`
}

// pair is one aligned observation that survived validation.
type pair struct {
	time interface{}
	temp float64
}

// Analyze validates two parallel sequences and computes summary statistics
// over the pairs that survive reconciliation.
//
// times and temperatures accept any slice or array; JSON arrays decode to
// []interface{} and are the common case. nil elements mark missing values.
// Pairs with a missing side are skipped with a warning; a length mismatch
// truncates to the shorter sequence with a warning. A temperature that is
// present but not coercible to a number fails the whole call: it signals a
// data-integrity problem rather than a gap.
func Analyze(times, temperatures interface{}) (*Summary, error) {
	timeSeq, tempSeq, err := validateShape(times, temperatures)
	if err != nil {
		return nil, err
	}

	pairs, truncated, warnings, err := reconcilePairs(timeSeq, tempSeq)
	if err != nil {
		return nil, err
	}

	return computeSummary(pairs, truncated, warnings), nil
}

// validateShape gates the raw arguments before any pairing occurs.
func validateShape(times, temperatures interface{}) ([]interface{}, []interface{}, error) {
	if times == nil || temperatures == nil {
		return nil, nil, newInvalidInput(CauseMissingArgument,
			"Both 'times' and 'temperatures' must be provided.")
	}

	timeSeq, ok := asSequence(times)
	if !ok {
		return nil, nil, newInvalidInput(CauseMalformedArgument,
			"'times' and 'temperatures' must be sequences (e.g., lists).")
	}
	tempSeq, ok := asSequence(temperatures)
	if !ok {
		return nil, nil, newInvalidInput(CauseMalformedArgument,
			"'times' and 'temperatures' must be sequences (e.g., lists).")
	}

	if len(timeSeq) == 0 || len(tempSeq) == 0 {
		return nil, nil, newInvalidInput(CauseEmptyArgument,
			"'times' and 'temperatures' must not be empty.")
	}

	return timeSeq, tempSeq, nil
}

// asSequence normalizes any slice or array into []interface{}.
// Strings and maps are not sequences here.
func asSequence(v interface{}) ([]interface{}, bool) {
	switch seq := v.(type) {
	case []interface{}:
		return seq, true
	case []string:
		out := make([]interface{}, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]interface{}, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]interface{}, len(seq))
		for i, e := range seq {
			out[i] = e
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]interface{}, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// reconcilePairs aligns the two sequences to their common length and keeps
// the pairs where both sides are present, preserving original order.
// Indices beyond the effective length are never inspected.
func reconcilePairs(timeSeq, tempSeq []interface{}) ([]pair, bool, []string, error) {
	warnings := make([]string, 0, 2)

	effective := len(timeSeq)
	if len(tempSeq) < effective {
		effective = len(tempSeq)
	}

	truncated := len(timeSeq) != len(tempSeq)
	if truncated {
		warnings = append(warnings, fmt.Sprintf(
			"Input lengths differ: times=%d, temperatures=%d; truncated to shorter length.",
			len(timeSeq), len(tempSeq)))
	}

	pairs := make([]pair, 0, effective)
	skipped := 0
	for i := 0; i < effective; i++ {
		if timeSeq[i] == nil || tempSeq[i] == nil {
			skipped++
			continue
		}

		temp, ok := utils.CoerceFloat64(tempSeq[i])
		if !ok {
			err := newInvalidInput(CauseInvalidTemperature, fmt.Sprintf(
				"Invalid temperature value at index %d: %v", i, tempSeq[i]))
			err.Details = map[string]interface{}{
				"index": i,
				"value": tempSeq[i],
			}
			return nil, false, nil, err
		}

		pairs = append(pairs, pair{time: timeSeq[i], temp: temp})
	}

	if skipped > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"Skipped %d pair(s) where time or temperature was missing.", skipped))
	}

	if len(pairs) == 0 {
		return nil, false, nil, newInvalidInput(CauseNoValidPairs,
			"No valid time/temperature pairs available after validation.")
	}

	return pairs, truncated, warnings, nil
}

// computeSummary assembles the statistics over a non-empty pair sequence.
// Extrema ties resolve to the first occurrence in surviving order, so the
// scan runs over the filtered pairs rather than the raw inputs.
func computeSummary(pairs []pair, truncated bool, warnings []string) *Summary {
	temps := make([]float64, len(pairs))
	for i, p := range pairs {
		temps[i] = p.temp
	}

	average, _ := stats.Mean(temps)
	median, _ := stats.Median(temps)

	var stdDev *float64
	if len(temps) >= 2 {
		sd, _ := stats.StandardDeviationSample(temps)
		stdDev = &sd
	}

	minIdx, maxIdx := 0, 0
	for i, p := range pairs {
		if p.temp < pairs[minIdx].temp {
			minIdx = i
		}
		if p.temp > pairs[maxIdx].temp {
			maxIdx = i
		}
	}

	return &Summary{
		Median:    median,
		StdDev:    stdDev,
		Min:       pairs[minIdx].temp,
		MinTime:   pairs[minIdx].time,
		Max:       pairs[maxIdx].temp,
		MaxTime:   pairs[maxIdx].time,
		Average:   average,
		Count:     len(pairs),
		Truncated: truncated,
		Warnings:  warnings,
	}
}
