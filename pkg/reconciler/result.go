package reconciler

import (
	"fmt"
	"time"

	"github.com/agentstation/contactmerge/pkg/contacts"
)

// Result represents the outcome of a reconciliation run.
type Result struct {
	// Contacts is the reduced record list in first-appearance order.
	Contacts []contacts.Contact

	// Metadata
	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	// StartTime when reconciliation started
	StartTime time.Time

	// EndTime when reconciliation completed
	EndTime time.Time

	// Duration of the reconciliation
	Duration time.Duration

	// Policy used for reconciliation
	Policy Policy

	// Statistics about the reconciliation
	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	Input       int
	Output      int
	Merges      int
	Passes      []PassStatistics
	TotalTimeMs int64
}

// PassStatistics describes one pass.
type PassStatistics struct {
	Pass   PassType
	Input  int
	Output int
	Merges int
	Rules  []RuleCount
}

// RuleCount is how often one rule fired.
type RuleCount struct {
	Rule  string
	Count int
}

// count increments the counter of rule, keeping first-seen order.
func (p *PassStatistics) count(rule string) {
	p.Merges++
	for i := range p.Rules {
		if p.Rules[i].Rule == rule {
			p.Rules[i].Count++
			return
		}
	}
	p.Rules = append(p.Rules, RuleCount{Rule: rule, Count: 1})
}

// Pass returns the statistics of one pass.
func (s ResultStatistics) Pass(t PassType) (PassStatistics, bool) {
	for _, p := range s.Passes {
		if p.Pass == t {
			return p, true
		}
	}
	return PassStatistics{}, false
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	if s.Merges == 0 {
		return fmt.Sprintf("Reconciliation completed. %d records, no duplicates found.", s.Input)
	}
	return fmt.Sprintf("Reconciliation completed. %d records reduced to %d with %d merges.", s.Input, s.Output, s.Merges)
}

// NewResult creates a new result with defaults.
func NewResult(policy Policy) *Result {
	return &Result{
		Contacts: []contacts.Contact{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
			Policy:    policy,
		},
	}
}

// Finalize calculates duration and marks completion.
func (r *Result) Finalize() {
	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
	r.Metadata.Stats.Output = len(r.Contacts)
}
