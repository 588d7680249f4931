package domain

// GenerateResult is the outcome of a single submit.
type GenerateResult struct {
	Password string
	Request  GenerationRequest
	History  HistoryList
	Recorded bool
	Copied   bool
	// Warnings collects non-fatal problems such as degraded storage.
	Warnings []string
}
