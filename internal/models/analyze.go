package models

// AnalyzeRequest represents an analysis request over one series.
// Times and Temperatures stay untyped: whether they are usable sequences
// is the analyzer's policy, not the transport's.
type AnalyzeRequest struct {
	Times        interface{} `json:"times"`
	Temperatures interface{} `json:"temperatures"`
}

// BatchSeries is one labeled series inside a batch analysis request
type BatchSeries struct {
	ID           string      `json:"id"`
	Times        interface{} `json:"times"`
	Temperatures interface{} `json:"temperatures"`
}

// BatchAnalyzeRequest represents a batch analysis request
type BatchAnalyzeRequest struct {
	Series []BatchSeries `json:"series"`
}

// NumbersRequest carries a clean list of numbers to summarize or store
type NumbersRequest struct {
	Numbers []float64 `json:"numbers"`
}

// NumbersSaveResponse reports a completed save
type NumbersSaveResponse struct {
	Saved int    `json:"saved"`
	Path  string `json:"path"`
}

// NumbersLoadResponse returns previously stored numbers
type NumbersLoadResponse struct {
	Numbers []float64 `json:"numbers"`
	Count   int       `json:"count"`
}
