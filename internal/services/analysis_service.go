package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thermetry/thermetry/internal/analysis"
	"github.com/thermetry/thermetry/internal/logging"
	"github.com/thermetry/thermetry/internal/models"
)

const (
	// DefaultMaxBatchSeries is the maximum number of series accepted per batch request
	DefaultMaxBatchSeries = 100

	// DefaultBatchConcurrency is the number of series analyzed concurrently
	DefaultBatchConcurrency = 4
)

// AnalysisService runs temperature series analysis for the HTTP layer
type AnalysisService struct {
	logger           *logging.Logger
	maxBatchSeries   int
	batchConcurrency int
}

// NewAnalysisService creates a new AnalysisService
func NewAnalysisService(logger *logging.Logger, maxBatchSeries, batchConcurrency int) *AnalysisService {
	if maxBatchSeries <= 0 {
		maxBatchSeries = DefaultMaxBatchSeries
	}
	if batchConcurrency <= 0 {
		batchConcurrency = DefaultBatchConcurrency
	}

	return &AnalysisService{
		logger:           logger,
		maxBatchSeries:   maxBatchSeries,
		batchConcurrency: batchConcurrency,
	}
}

// Analyze validates and summarizes a single time/temperature series
func (s *AnalysisService) Analyze(ctx context.Context, request *models.AnalyzeRequest) (*analysis.Summary, error) {
	start := time.Now()

	summary, err := analysis.Analyze(request.Times, request.Temperatures)
	if err != nil {
		return nil, toServiceError(err)
	}

	s.logger.WithContext(ctx).Info("Series analyzed",
		"count", summary.Count,
		"truncated", summary.Truncated,
		"warnings", len(summary.Warnings),
		"duration", time.Since(start),
	)

	return summary, nil
}

// SummarizeNumbers computes a summary of a plain list of numbers
func (s *AnalysisService) SummarizeNumbers(ctx context.Context, numbers []float64) (*analysis.NumberSummary, error) {
	summary, err := analysis.SummarizeNumbers(numbers)
	if err != nil {
		return nil, toServiceError(err)
	}

	s.logger.WithContext(ctx).Info("Numbers summarized", "count", summary.Count)

	return summary, nil
}

// BatchResult is the outcome for one series in a batch request
type BatchResult struct {
	ID      string            `json:"id,omitempty"`
	Summary *analysis.Summary `json:"summary,omitempty"`
	Error   *ServiceError     `json:"error,omitempty"`
}

// BatchAnalyzeResponse is the response for a batch analysis request
type BatchAnalyzeResponse struct {
	Results   []BatchResult `json:"results"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// AnalyzeBatch analyzes multiple series concurrently. Results keep the input
// order; a failed series carries its own error and never aborts the rest.
func (s *AnalysisService) AnalyzeBatch(ctx context.Context, request *models.BatchAnalyzeRequest) (*BatchAnalyzeResponse, error) {
	if len(request.Series) == 0 {
		return nil, NewServiceError("INVALID_INPUT", "batch must contain at least one series")
	}

	if len(request.Series) > s.maxBatchSeries {
		return nil, NewServiceErrorWithDetails("BATCH_TOO_LARGE",
			fmt.Sprintf("batch contains %d series, maximum is %d", len(request.Series), s.maxBatchSeries),
			map[string]interface{}{"max_series": s.maxBatchSeries},
		)
	}

	start := time.Now()
	results := make([]BatchResult, len(request.Series))

	var g errgroup.Group
	g.SetLimit(s.batchConcurrency)

	for i, series := range request.Series {
		g.Go(func() error {
			summary, err := analysis.Analyze(series.Times, series.Temperatures)
			if err != nil {
				results[i] = BatchResult{ID: series.ID, Error: toServiceError(err)}
				return nil
			}
			results[i] = BatchResult{ID: series.ID, Summary: summary}
			return nil
		})
	}

	// Workers report failures through their slot, never through the group
	_ = g.Wait()

	succeeded := 0
	for i := range results {
		if results[i].Error == nil {
			succeeded++
		}
	}

	s.logger.WithContext(ctx).Info("Batch analysis completed",
		"series", len(results),
		"succeeded", succeeded,
		"failed", len(results)-succeeded,
		"duration", time.Since(start),
	)

	return &BatchAnalyzeResponse{
		Results:   results,
		Succeeded: succeeded,
		Failed:    len(results) - succeeded,
	}, nil
}
