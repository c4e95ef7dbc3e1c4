package solution

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Report is the outcome of one batch run. Successes and Failures keep the
// sorted input order.
type Report struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Successes  []string  `json:"successes" yaml:"successes"`
	Failures   []string  `json:"failures" yaml:"failures"`
	Results    []Result  `json:"results" yaml:"results"`
}

func NewReport(runID string, startedAt time.Time) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: startedAt,
		Successes: []string{},
		Failures:  []string{},
		Results:   []Result{},
	}
}

// Add appends a terminal result to the matching bucket.
func (r *Report) Add(result Result) {
	r.Results = append(r.Results, result)
	if result.Succeeded() {
		r.Successes = append(r.Successes, result.FileName)
	} else {
		r.Failures = append(r.Failures, result.FileName)
	}
}

func (r *Report) Total() int {
	return len(r.Successes) + len(r.Failures)
}

// Print writes the two summary blocks:
//
//	<n> successes
//		a.cnf c.cnf
//
//	<m> failures
//		b.cnf
func (r *Report) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "\n%d successes\n\t%s\n", len(r.Successes), strings.Join(r.Successes, " ")); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d failures\n\t%s\n", len(r.Failures), strings.Join(r.Failures, " "))
	return err
}
