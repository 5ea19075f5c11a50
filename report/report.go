// Package report collects check results and renders the run summary.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/papermoonio/sidecar-tests-substrate/check"
)

// Report is the ordered outcome of one run.
type Report struct {
	SidecarEndpoint   string `json:"sidecar_endpoint"`
	SubstrateEndpoint string `json:"substrate_endpoint"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Results []check.Result `json:"results"`

	// Notes are informational lines, e.g. block statistics, that do not affect the outcome.
	Notes []string `json:"notes,omitempty"`
}

// GroupSummary aggregates the results of one check group.
type GroupSummary struct {
	Name     string        `json:"name"`
	Passed   int           `json:"passed"`
	Total    int           `json:"total"`
	Duration time.Duration `json:"duration"`
}

// OK reports whether every check in the group passed.
func (g GroupSummary) OK() bool {
	return g.Passed == g.Total
}

// New starts a report for the given endpoints.
func New(sidecarEndpoint, substrateEndpoint string) *Report {
	return &Report{
		SidecarEndpoint:   sidecarEndpoint,
		SubstrateEndpoint: substrateEndpoint,
		StartedAt:         time.Now(),
	}
}

// Add appends results in order.
func (r *Report) Add(results ...check.Result) {
	r.Results = append(r.Results, results...)
}

// Notef appends an informational note.
func (r *Report) Notef(format string, args ...any) {
	r.Notes = append(r.Notes, fmt.Sprintf(format, args...))
}

// Finish records the end of the run.
func (r *Report) Finish() {
	r.FinishedAt = time.Now()
}

// Total returns the number of results.
func (r *Report) Total() int {
	return len(r.Results)
}

// Passed returns the number of passing results.
func (r *Report) Passed() int {
	passed := 0
	for _, result := range r.Results {
		if result.Passed {
			passed++
		}
	}
	return passed
}

// Failed returns the failing results in order.
func (r *Report) Failed() []check.Result {
	var failed []check.Result
	for _, result := range r.Results {
		if !result.Passed {
			failed = append(failed, result)
		}
	}
	return failed
}

// AllPassed reports whether the run succeeded. A run with no results did not.
func (r *Report) AllPassed() bool {
	return r.Total() > 0 && r.Passed() == r.Total()
}

// ExitCode is 0 iff every check passed, 1 otherwise.
func (r *Report) ExitCode() int {
	if r.AllPassed() {
		return 0
	}
	return 1
}

// SuccessRate returns the percentage of passing results.
func (r *Report) SuccessRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Passed()) / float64(r.Total()) * 100
}

// Groups summarises results per group, in order of first appearance.
func (r *Report) Groups() []GroupSummary {
	var groups []GroupSummary
	index := make(map[string]int)

	for _, result := range r.Results {
		i, ok := index[result.Group]
		if !ok {
			i = len(groups)
			index[result.Group] = i
			groups = append(groups, GroupSummary{Name: result.Group})
		}

		groups[i].Total++
		if result.Passed {
			groups[i].Passed++
		}
		if result.Duration > groups[i].Duration {
			groups[i].Duration = result.Duration
		}
	}

	return groups
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	type jsonReport struct {
		*Report
		Passed int            `json:"passed"`
		Total  int            `json:"total"`
		Groups []GroupSummary `json:"groups"`
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonReport{
		Report: r,
		Passed: r.Passed(),
		Total:  r.Total(),
		Groups: r.Groups(),
	})
}
