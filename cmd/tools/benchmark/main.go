package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// BenchmarkConfig holds benchmark configuration
type BenchmarkConfig struct {
	BaseURL         string
	SeriesLength    int
	NullRate        float64 // Fraction of temperatures replaced with null
	Duration        time.Duration
	AnalyzeWorkers  int
	SummaryWorkers  int
	SummaryInterval time.Duration
	APIKey          string
	HTTPClient      *http.Client // Shared HTTP client for connection pooling
}

// Metrics holds benchmark metrics
type Metrics struct {
	AnalyzeLatencies  []float64
	SummaryLatencies  []float64
	AnalyzeErrors     int64
	SummaryErrors     int64
	AnalyzeSuccess    int64
	SummarySuccess    int64
	FirstAnalyzeError string
	FirstSummaryError string
	mu                sync.Mutex
}

// Result represents benchmark results
type Result struct {
	Operation  string
	TotalOps   int64
	SuccessOps int64
	ErrorOps   int64
	Duration   time.Duration
	Throughput float64 // ops/sec
	AvgLatency float64 // ms
	MinLatency float64 // ms
	MaxLatency float64 // ms
	P50Latency float64 // ms
	P95Latency float64 // ms
	P99Latency float64 // ms
	ErrorMsg   string  // First error message
}

func main() {
	// Parse flags
	config := BenchmarkConfig{}
	flag.StringVar(&config.BaseURL, "url", "http://127.0.0.1:5600", "Base URL of the API")
	flag.IntVar(&config.SeriesLength, "series-length", 100, "Number of time/temperature pairs per request")
	flag.Float64Var(&config.NullRate, "null-rate", 0.1, "Fraction of temperatures sent as null")
	flag.DurationVar(&config.Duration, "duration", 60*time.Second, "Benchmark duration")
	flag.IntVar(&config.AnalyzeWorkers, "analyze-workers", 10, "Number of concurrent analyze workers")
	flag.IntVar(&config.SummaryWorkers, "summary-workers", 5, "Number of concurrent summary workers")
	flag.DurationVar(&config.SummaryInterval, "summary-interval", 10*time.Millisecond, "Interval between summary requests per worker")
	flag.StringVar(&config.APIKey, "api-key", "", "API key for authentication")
	flag.Parse()

	// Create shared HTTP client with connection pooling
	config.HTTPClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 100,
			IdleConnTimeout:     90 * time.Second,
		},
	}

	fmt.Printf("=== Thermetry Benchmark Tool ===\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  URL: %s\n", config.BaseURL)
	fmt.Printf("  Series Length: %d\n", config.SeriesLength)
	fmt.Printf("  Null Rate: %.2f\n", config.NullRate)
	fmt.Printf("  Duration: %s\n", config.Duration)
	fmt.Printf("  Analyze Workers: %d\n", config.AnalyzeWorkers)
	fmt.Printf("  Summary Workers: %d\n", config.SummaryWorkers)
	fmt.Printf("  Summary Interval: %s\n", config.SummaryInterval)
	fmt.Printf("\n")

	// Run benchmark
	metrics := runBenchmark(config)

	// Calculate and display results
	analyzeResult := calculateResult("Analyze", metrics.AnalyzeLatencies, metrics.AnalyzeSuccess, metrics.AnalyzeErrors, config.Duration, metrics.FirstAnalyzeError)
	summaryResult := calculateResult("Summary", metrics.SummaryLatencies, metrics.SummarySuccess, metrics.SummaryErrors, config.Duration, metrics.FirstSummaryError)

	fmt.Printf("\n=== Benchmark Results ===\n\n")
	displayResult(analyzeResult)
	fmt.Println()
	displayResult(summaryResult)

	// Save results to file
	saveResults(config, analyzeResult, summaryResult)
}

func runBenchmark(config BenchmarkConfig) *Metrics {
	metrics := &Metrics{
		AnalyzeLatencies: make([]float64, 0, 10000),
		SummaryLatencies: make([]float64, 0, 10000),
	}

	var wg sync.WaitGroup
	stopCh := make(chan struct{})
	startTime := time.Now()

	// Start analyze workers
	for i := 0; i < config.AnalyzeWorkers; i++ {
		wg.Add(1)
		go analyzeWorker(config, metrics, stopCh, &wg)
	}

	// Start summary workers
	for i := 0; i < config.SummaryWorkers; i++ {
		wg.Add(1)
		go summaryWorker(config, metrics, stopCh, &wg)
	}

	// Progress reporter
	go progressReporter(metrics, config.Duration, startTime)

	// Wait for duration
	time.Sleep(config.Duration)
	close(stopCh)
	wg.Wait()

	return metrics
}

func analyzeWorker(config BenchmarkConfig, metrics *Metrics, stopCh chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	url := config.BaseURL + "/v1/analyze"

	for {
		select {
		case <-stopCh:
			return
		default:
			payload := generateSeries(config.SeriesLength, config.NullRate)

			start := time.Now()
			err := makeRequest(config, "POST", url, payload)
			latency := time.Since(start).Seconds() * 1000 // ms

			metrics.mu.Lock()
			metrics.AnalyzeLatencies = append(metrics.AnalyzeLatencies, latency)
			metrics.mu.Unlock()

			if err != nil {
				atomic.AddInt64(&metrics.AnalyzeErrors, 1)
				metrics.mu.Lock()
				if metrics.FirstAnalyzeError == "" {
					metrics.FirstAnalyzeError = err.Error()
				}
				metrics.mu.Unlock()
			} else {
				atomic.AddInt64(&metrics.AnalyzeSuccess, 1)
			}
		}
	}
}

func summaryWorker(config BenchmarkConfig, metrics *Metrics, stopCh chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()

	url := config.BaseURL + "/v1/numbers/summary"

	ticker := time.NewTicker(config.SummaryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			numbers := make([]float64, config.SeriesLength)
			for i := range numbers {
				numbers[i] = rand.Float64()*60 - 20
			}
			payload := map[string]interface{}{"numbers": numbers}

			start := time.Now()
			err := makeRequest(config, "POST", url, payload)
			latency := time.Since(start).Seconds() * 1000 // ms

			metrics.mu.Lock()
			metrics.SummaryLatencies = append(metrics.SummaryLatencies, latency)
			metrics.mu.Unlock()

			if err != nil {
				atomic.AddInt64(&metrics.SummaryErrors, 1)
				metrics.mu.Lock()
				if metrics.FirstSummaryError == "" {
					metrics.FirstSummaryError = err.Error()
				}
				metrics.mu.Unlock()
			} else {
				atomic.AddInt64(&metrics.SummarySuccess, 1)
			}
		}
	}
}

// generateSeries builds an analyze payload with hourly timestamps and
// the configured share of null temperatures
func generateSeries(length int, nullRate float64) map[string]interface{} {
	baseTime := time.Now().Add(-time.Duration(length) * time.Hour)

	times := make([]interface{}, length)
	temperatures := make([]interface{}, length)
	for i := 0; i < length; i++ {
		times[i] = baseTime.Add(time.Duration(i) * time.Hour).Format(time.RFC3339)
		if rand.Float64() < nullRate {
			temperatures[i] = nil
		} else {
			temperatures[i] = rand.Float64()*60 - 20
		}
	}

	return map[string]interface{}{
		"times":        times,
		"temperatures": temperatures,
	}
}

func progressReporter(metrics *Metrics, duration time.Duration, startTime time.Time) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		<-ticker.C
		elapsed := time.Since(startTime)
		if elapsed >= duration {
			return
		}

		analyzes := atomic.LoadInt64(&metrics.AnalyzeSuccess)
		summaries := atomic.LoadInt64(&metrics.SummarySuccess)
		analyzeErrors := atomic.LoadInt64(&metrics.AnalyzeErrors)
		summaryErrors := atomic.LoadInt64(&metrics.SummaryErrors)

		analyzeThroughput := float64(analyzes) / elapsed.Seconds()
		summaryThroughput := float64(summaries) / elapsed.Seconds()

		remaining := duration - elapsed
		fmt.Printf("[%s remaining] Analyzes: %d (%.0f/s, %d errors) | Summaries: %d (%.0f/s, %d errors)\n",
			remaining.Round(time.Second), analyzes, analyzeThroughput, analyzeErrors,
			summaries, summaryThroughput, summaryErrors)
	}
}

func makeRequest(config BenchmarkConfig, method, url string, data interface{}) error {
	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Connection", "keep-alive")
	if config.APIKey != "" {
		req.Header.Set("X-API-Key", config.APIKey)
	}

	resp, err := config.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	// Read and discard body to reuse connection
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return nil
}

func calculateResult(operation string, latencies []float64, success, errors int64, duration time.Duration, errorMsg string) Result {
	if len(latencies) == 0 {
		return Result{
			Operation: operation,
			TotalOps:  success + errors,
			ErrorMsg:  errorMsg,
		}
	}

	// Sort for percentiles
	sort.Float64s(latencies)

	result := Result{
		Operation:  operation,
		TotalOps:   success + errors,
		SuccessOps: success,
		ErrorOps:   errors,
		Duration:   duration,
		Throughput: float64(success) / duration.Seconds(),
		MinLatency: latencies[0],
		MaxLatency: latencies[len(latencies)-1],
		P50Latency: percentile(latencies, 50),
		P95Latency: percentile(latencies, 95),
		P99Latency: percentile(latencies, 99),
		ErrorMsg:   errorMsg,
	}

	// Calculate average
	var sum float64
	for _, lat := range latencies {
		sum += lat
	}
	result.AvgLatency = sum / float64(len(latencies))

	return result
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := int(math.Ceil(float64(len(sorted)) * p / 100.0))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}

func displayResult(r Result) {
	fmt.Printf("=== %s Operations ===\n", r.Operation)
	fmt.Printf("Total Operations: %d\n", r.TotalOps)
	fmt.Printf("Success:          %d (%.2f%%)\n", r.SuccessOps, float64(r.SuccessOps)/float64(r.TotalOps)*100)
	fmt.Printf("Errors:           %d (%.2f%%)\n", r.ErrorOps, float64(r.ErrorOps)/float64(r.TotalOps)*100)
	fmt.Printf("Duration:         %s\n", r.Duration)
	fmt.Printf("Throughput:       %.2f ops/sec\n", r.Throughput)
	if r.ErrorOps > 0 && len(r.ErrorMsg) > 0 {
		fmt.Printf("First Error:      %s\n", r.ErrorMsg)
	}
	fmt.Printf("\nLatency (ms):\n")
	fmt.Printf("  Min:  %.2f\n", r.MinLatency)
	fmt.Printf("  Avg:  %.2f\n", r.AvgLatency)
	fmt.Printf("  P50:  %.2f\n", r.P50Latency)
	fmt.Printf("  P95:  %.2f\n", r.P95Latency)
	fmt.Printf("  P99:  %.2f\n", r.P99Latency)
	fmt.Printf("  Max:  %.2f\n", r.MaxLatency)
}

func saveResults(config BenchmarkConfig, analyzeResult, summaryResult Result) {
	if err := os.MkdirAll("benchmark_results", 0o755); err != nil {
		fmt.Printf("Failed to create result directory: %v\n", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("benchmark_results/api_benchmark_%s.txt", timestamp)

	f, err := os.Create(filename)
	if err != nil {
		fmt.Printf("Failed to create result file: %v\n", err)
		return
	}
	defer func() { _ = f.Close() }()

	_, _ = fmt.Fprintf(f, "=== Thermetry API Benchmark Results ===\n")
	_, _ = fmt.Fprintf(f, "Date: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(f, "Configuration:\n")
	_, _ = fmt.Fprintf(f, "  URL: %s\n", config.BaseURL)
	_, _ = fmt.Fprintf(f, "  Series Length: %d\n", config.SeriesLength)
	_, _ = fmt.Fprintf(f, "  Null Rate: %.2f\n", config.NullRate)
	_, _ = fmt.Fprintf(f, "  Duration: %s\n", config.Duration)
	_, _ = fmt.Fprintf(f, "  Analyze Workers: %d\n", config.AnalyzeWorkers)
	_, _ = fmt.Fprintf(f, "  Summary Workers: %d\n", config.SummaryWorkers)
	_, _ = fmt.Fprintf(f, "\n")

	writeResultToFile(f, analyzeResult)
	_, _ = fmt.Fprintf(f, "\n")
	writeResultToFile(f, summaryResult)

	fmt.Printf("\nResults saved to: %s\n", filename)
}

func writeResultToFile(f *os.File, r Result) {
	_, _ = fmt.Fprintf(f, "=== %s Operations ===\n", r.Operation)
	_, _ = fmt.Fprintf(f, "Total Operations: %d\n", r.TotalOps)
	_, _ = fmt.Fprintf(f, "Success:          %d (%.2f%%)\n", r.SuccessOps, float64(r.SuccessOps)/float64(r.TotalOps)*100)
	_, _ = fmt.Fprintf(f, "Errors:           %d (%.2f%%)\n", r.ErrorOps, float64(r.ErrorOps)/float64(r.TotalOps)*100)
	_, _ = fmt.Fprintf(f, "Duration:         %s\n", r.Duration)
	_, _ = fmt.Fprintf(f, "Throughput:       %.2f ops/sec\n", r.Throughput)
	_, _ = fmt.Fprintf(f, "\nLatency (ms):\n")
	_, _ = fmt.Fprintf(f, "  Min:  %.2f\n", r.MinLatency)
	_, _ = fmt.Fprintf(f, "  Avg:  %.2f\n", r.AvgLatency)
	_, _ = fmt.Fprintf(f, "  P50:  %.2f\n", r.P50Latency)
	_, _ = fmt.Fprintf(f, "  P95:  %.2f\n", r.P95Latency)
	_, _ = fmt.Fprintf(f, "  P99:  %.2f\n", r.P99Latency)
	_, _ = fmt.Fprintf(f, "  Max:  %.2f\n", r.MaxLatency)
}
