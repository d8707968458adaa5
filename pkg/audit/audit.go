// Package audit collects the decisions made during a merge run: rejected
// rows, every merge with the rule that triggered it, and a closing summary.
//
// A Log is an explicit value owned by the caller and threaded through the
// pipeline. It is not safe for concurrent use.
package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an audit entry.
type Kind string

// Entry kinds.
const (
	KindInvalidRow Kind = "invalid-row"
	KindMerge      Kind = "merge"
	KindSummary    Kind = "summary"
)

// Entry is one audit event.
type Entry struct {
	Kind Kind `json:"kind" yaml:"kind"`

	// Set for invalid rows.
	Sheet  string   `json:"sheet,omitempty" yaml:"sheet,omitempty"`
	Row    int      `json:"row,omitempty" yaml:"row,omitempty"`
	Cells  []string `json:"cells,omitempty" yaml:"cells,omitempty"`
	Reason string   `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Set for merges.
	Pass     string `json:"pass,omitempty" yaml:"pass,omitempty"`
	Rule     string `json:"rule,omitempty" yaml:"rule,omitempty"`
	Incoming string `json:"incoming,omitempty" yaml:"incoming,omitempty"`
	Result   string `json:"result,omitempty" yaml:"result,omitempty"`

	// Set for the summary.
	Summary *Summary `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// SheetCount is the number of valid rows read from one sheet.
type SheetCount struct {
	Sheet string `json:"sheet" yaml:"sheet"`
	Valid int    `json:"valid" yaml:"valid"`
}

// Summary closes a run.
type Summary struct {
	Sheets   []SheetCount `json:"sheets" yaml:"sheets"`
	Rejected int          `json:"rejected" yaml:"rejected"`
	Merges   int          `json:"merges" yaml:"merges"`
	ER       int          `json:"er" yaml:"er"`
	Other    int          `json:"other" yaml:"other"`
}

// Log is an ordered collection of audit entries for one run.
type Log struct {
	runID   string
	started time.Time
	entries []Entry
}

// New creates an empty log stamped with a fresh run ID.
func New() *Log {
	return NewWithID(uuid.NewString())
}

// NewWithID creates an empty log with the given run ID.
func NewWithID(runID string) *Log {
	return &Log{runID: runID, started: time.Now()}
}

// RunID returns the run identifier.
func (l *Log) RunID() string {
	return l.runID
}

// Started returns when the log was created.
func (l *Log) Started() time.Time {
	return l.started
}

// InvalidRow records a rejected row with its raw cells.
func (l *Log) InvalidRow(sheet string, row int, cells []string, reason error) {
	e := Entry{Kind: KindInvalidRow, Sheet: sheet, Row: row, Cells: append([]string(nil), cells...)}
	if reason != nil {
		e.Reason = reason.Error()
	}
	l.entries = append(l.entries, e)
}

// Merge records one merge. incoming and result are serialized records.
func (l *Log) Merge(pass, rule string, incoming, result fmt.Stringer) {
	l.entries = append(l.entries, Entry{
		Kind:     KindMerge,
		Pass:     pass,
		Rule:     rule,
		Incoming: incoming.String(),
		Result:   result.String(),
	})
}

// Summarize records the closing summary.
func (l *Log) Summarize(s Summary) {
	l.entries = append(l.entries, Entry{Kind: KindSummary, Summary: &s})
}

// Entries returns every entry in recording order.
func (l *Log) Entries() []Entry {
	return append([]Entry(nil), l.entries...)
}

// Filter returns the entries of one kind.
func (l *Log) Filter(kind Kind) []Entry {
	var out []Entry
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Lines renders every entry as one human-readable line.
func (l *Log) Lines() []string {
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.String())
	}
	return out
}

// String renders the entry as a log line.
func (e Entry) String() string {
	switch e.Kind {
	case KindInvalidRow:
		return fmt.Sprintf("invalid row %s:%d [%s]: %s", e.Sheet, e.Row, strings.Join(e.Cells, " | "), e.Reason)
	case KindMerge:
		return fmt.Sprintf("merge %s/%s: %s => %s", e.Pass, e.Rule, e.Incoming, e.Result)
	case KindSummary:
		if e.Summary == nil {
			return "summary"
		}
		return e.Summary.String()
	default:
		return string(e.Kind)
	}
}

// String renders the summary as one line.
func (s Summary) String() string {
	parts := make([]string, 0, len(s.Sheets))
	for _, sc := range s.Sheets {
		parts = append(parts, fmt.Sprintf("%s=%d", sc.Sheet, sc.Valid))
	}
	return fmt.Sprintf("summary: valid rows %s; rejected %d; merges %d; ER %d; Other %d",
		strings.Join(parts, " "), s.Rejected, s.Merges, s.ER, s.Other)
}
