// Package alerts provides short status notices printed after a command.
package alerts

import (
	"fmt"
	"strings"

	"github.com/agentstation/contactmerge/internal/cmd/output"
)

// Alert represents a status notice.
type Alert struct {
	Level   Level
	Message string
	Details []string
}

// New creates a new alert with the given level and message.
func New(level Level, message string) *Alert {
	return &Alert{Level: level, Message: message}
}

// NewWarning creates a new warning alert.
func NewWarning(message string) *Alert {
	return New(LevelWarning, message)
}

// NewInfo creates a new info alert.
func NewInfo(message string) *Alert {
	return New(LevelInfo, message)
}

// NewSuccess creates a new success alert.
func NewSuccess(message string) *Alert {
	return New(LevelSuccess, message)
}

// WithDetails adds additional context details to the alert.
func (a *Alert) WithDetails(details ...string) *Alert {
	a.Details = append(a.Details, details...)
	return a
}

// String returns a string representation of the alert.
func (a *Alert) String() string {
	return fmt.Sprintf("%s %s", a.Level.Icon(), a.Message)
}

// FromSummary derives the notices worth showing after a merge run.
func FromSummary(s output.RunSummary) []*Alert {
	var out []*Alert
	var skipped []string
	for _, sh := range s.Sheets {
		if !sh.Selected {
			skipped = append(skipped, sh.Sheet)
			continue
		}
		if !sh.HeaderFound {
			a := NewWarning(fmt.Sprintf("sheet %s: no header row found, %d rows ignored", sh.Sheet, sh.Rows))
			if len(sh.MissingLabels) > 0 {
				a.WithDetails("missing labels: " + strings.Join(sh.MissingLabels, ", "))
			}
			out = append(out, a)
		}
	}
	if len(skipped) > 0 {
		out = append(out, NewInfo(fmt.Sprintf("%d sheets not recognized: %s", len(skipped), strings.Join(skipped, ", "))))
	}
	if s.Rejected > 0 {
		a := NewWarning(fmt.Sprintf("%d rows skipped as invalid", s.Rejected))
		if s.AuditLog != "" {
			a.WithDetails("see " + s.AuditLog)
		}
		out = append(out, a)
	}
	out = append(out, NewSuccess(fmt.Sprintf("%d contacts: %d ER, %d Other after %d merges",
		s.ER+s.Other, s.ER, s.Other, s.Merges)))
	return out
}
