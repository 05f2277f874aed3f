// Package batch builds the paragraph trees of many sections concurrently,
// one section per job. A failing section is recorded and never stops its
// siblings.
package batch

import (
	"runtime"
	"time"
)

// Config controls a batch run.
type Config struct {
	// Workers is the number of sections built at once.
	Workers int `json:"workers"`

	// FailFast stops dispatching after the first failure. Sections not yet
	// started are reported as skipped.
	FailFast bool `json:"fail_fast"`
}

// DefaultConfig uses one worker per CPU.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Entry statuses.
const (
	StatusBuilt   = "built"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Failure categories.
const (
	CategoryClassification = "classification"
	CategoryPlacement      = "placement"
	CategoryFormat         = "format"
	CategoryOther          = "other"
)

// Report summarizes a batch run.
type Report struct {
	RunID          string        `json:"run_id"`
	StartedAt      time.Time     `json:"started_at"`
	Duration       time.Duration `json:"duration"`
	TotalAttempted int           `json:"total_attempted"`
	Succeeded      int           `json:"succeeded"`
	Skipped        int           `json:"skipped"`
	Failed         int           `json:"failed"`
	TotalNodes     int           `json:"total_nodes"`
	Entries        []Entry       `json:"entries"`
}

// Entry records the outcome of one section.
type Entry struct {
	Index       int      `json:"index"`
	Section     string   `json:"section"`
	Status      string   `json:"status"` // "built", "skipped", "failed"
	Category    string   `json:"category,omitempty"`
	Error       string   `json:"error,omitempty"`
	Nodes       int      `json:"nodes,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	Unresolved  []string `json:"unresolved_footnotes,omitempty"`
}

// SuccessRate returns the percentage of attempted sections that built.
func (r *Report) SuccessRate() float64 {
	if r.TotalAttempted == 0 {
		return 0
	}
	return float64(r.Succeeded) / float64(r.TotalAttempted) * 100
}

// Failures returns the failed entries grouped by category.
func (r *Report) Failures() map[string][]Entry {
	failures := make(map[string][]Entry)
	for _, entry := range r.Entries {
		if entry.Status == StatusFailed {
			failures[entry.Category] = append(failures[entry.Category], entry)
		}
	}
	return failures
}
