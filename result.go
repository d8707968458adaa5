package contactmerge

import (
	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/normalize"
	"github.com/agentstation/contactmerge/pkg/reconciler"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

// SheetReport describes how one worksheet was handled.
type SheetReport struct {
	Sheet           string           `json:"sheet" yaml:"sheet"`
	Rows            int              `json:"rows" yaml:"rows"`
	Selected        bool             `json:"selected" yaml:"selected"`
	Type            string           `json:"type,omitempty" yaml:"type,omitempty"`
	EmergencyRelief bool             `json:"er" yaml:"er"`
	HeaderFound     bool             `json:"header_found" yaml:"header_found"`
	HeaderRow       int              `json:"header_row,omitempty" yaml:"header_row,omitempty"`
	Columns         header.ColumnMap `json:"columns,omitempty" yaml:"columns,omitempty"`
	MissingLabels   []string         `json:"missing_labels,omitempty" yaml:"missing_labels,omitempty"`
	Valid           int              `json:"valid" yaml:"valid"`
	Rejected        int              `json:"rejected" yaml:"rejected"`
}

// Result is the outcome of one Process call.
type Result struct {
	RunID      string
	Sheets     []SheetReport
	Rejections []normalize.Rejection

	// Contacts holds every merged contact in first-appearance order.
	Contacts []contacts.Contact
	ER       []contacts.Contact
	Other    []contacts.Contact

	Reconcile *reconciler.Result
	Audit     *audit.Log
}

// Summary returns the audit summary of the run.
func (r *Result) Summary() audit.Summary {
	s := audit.Summary{
		Rejected: len(r.Rejections),
		ER:       len(r.ER),
		Other:    len(r.Other),
	}
	if r.Reconcile != nil {
		s.Merges = r.Reconcile.Metadata.Stats.Merges
	}
	for _, sh := range r.Sheets {
		if sh.Selected {
			s.Sheets = append(s.Sheets, audit.SheetCount{Sheet: sh.Sheet, Valid: sh.Valid})
		}
	}
	return s
}

// Output returns the ER and Other partitions in exported record form.
func (r *Result) Output() []workbook.SheetRecords {
	return []workbook.SheetRecords{
		records(constants.EmergencyReliefSheet, r.ER),
		records(constants.OtherSheet, r.Other),
	}
}

func records(name string, cs []contacts.Contact) workbook.SheetRecords {
	out := workbook.SheetRecords{Name: name, Header: contacts.Keys(), Rows: make([][]string, len(cs))}
	for i, c := range cs {
		out.Rows[i] = c.Record().Values()
	}
	return out
}
