package output

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/pkg/constants"
)

// RunSummary is the machine readable outcome of a merge run.
type RunSummary struct {
	RunID      string                     `json:"run_id" yaml:"run_id"`
	Input      string                     `json:"input" yaml:"input"`
	Outputs    []string                   `json:"outputs" yaml:"outputs"`
	AuditLog   string                     `json:"audit_log,omitempty" yaml:"audit_log,omitempty"`
	Sheets     []contactmerge.SheetReport `json:"sheets" yaml:"sheets"`
	Rejected   int                        `json:"rejected" yaml:"rejected"`
	Merges     int                        `json:"merges" yaml:"merges"`
	ER         int                        `json:"er" yaml:"er"`
	Other      int                        `json:"other" yaml:"other"`
	Passes     []PassSummary              `json:"passes" yaml:"passes"`
	DurationMs int64                      `json:"duration_ms" yaml:"duration_ms"`
}

// PassSummary describes one merge pass of a run.
type PassSummary struct {
	Pass   string         `json:"pass" yaml:"pass"`
	Input  int            `json:"input" yaml:"input"`
	Output int            `json:"output" yaml:"output"`
	Merges int            `json:"merges" yaml:"merges"`
	Rules  map[string]int `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// NewRunSummary builds the summary of result. Outputs lists the files written.
func NewRunSummary(result *contactmerge.Result, input string, outputs []string, auditLog string) RunSummary {
	s := result.Summary()
	summary := RunSummary{
		RunID:    result.RunID,
		Input:    input,
		Outputs:  outputs,
		AuditLog: auditLog,
		Sheets:   result.Sheets,
		Rejected: s.Rejected,
		Merges:   s.Merges,
		ER:       s.ER,
		Other:    s.Other,
	}
	if result.Reconcile == nil {
		return summary
	}
	stats := result.Reconcile.Metadata.Stats
	summary.DurationMs = stats.TotalTimeMs
	for _, ps := range stats.Passes {
		p := PassSummary{
			Pass:   ps.Pass.String(),
			Input:  ps.Input,
			Output: ps.Output,
			Merges: ps.Merges,
		}
		if len(ps.Rules) > 0 {
			p.Rules = make(map[string]int, len(ps.Rules))
			for _, rc := range ps.Rules {
				p.Rules[rc.Rule] = rc.Count
			}
		}
		summary.Passes = append(summary.Passes, p)
	}
	return summary
}

// Tables renders the summary as the tables printed on a terminal.
func (s RunSummary) Tables() []Data {
	totals := Data{
		Title:   "Run " + s.RunID,
		Headers: titles("property", "value"),
		Rows: [][]string{
			{"Input", s.Input},
			{"Outputs", strings.Join(s.Outputs, ", ")},
			{"Audit log", s.AuditLog},
			{"Rejected rows", strconv.Itoa(s.Rejected)},
			{"Merges", strconv.Itoa(s.Merges)},
			{constants.EmergencyReliefSheet, strconv.Itoa(s.ER)},
			{constants.OtherSheet, strconv.Itoa(s.Other)},
		},
	}

	passes := Data{
		Title:           "Passes",
		Headers:         titles("pass", "input", "output", "merges", "rules"),
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft},
	}
	for _, p := range s.Passes {
		passes.Rows = append(passes.Rows, []string{
			p.Pass,
			strconv.Itoa(p.Input),
			strconv.Itoa(p.Output),
			strconv.Itoa(p.Merges),
			formatRules(p.Rules),
		})
	}

	return []Data{totals, SheetsTable(s.Sheets), passes}
}

// SheetsTable renders per-sheet reports.
func SheetsTable(reports []contactmerge.SheetReport) Data {
	data := Data{
		Title:           "Sheets",
		Headers:         titles("sheet", "rows", "type", "emergency_relief", "header_row", "valid", "rejected", "columns"),
		ColumnAlignment: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignLeft, tw.AlignCenter, tw.AlignRight, tw.AlignRight, tw.AlignRight, tw.AlignLeft},
	}
	for _, r := range reports {
		typ, headerRow := "-", "-"
		if r.Selected {
			typ = r.Type
			headerRow = "not found"
		}
		if r.HeaderFound {
			headerRow = strconv.Itoa(r.HeaderRow)
		}
		columns := r.Columns.String()
		if len(r.MissingLabels) > 0 {
			columns = "missing " + strings.Join(r.MissingLabels, ", ")
		}
		data.Rows = append(data.Rows, []string{
			r.Sheet,
			strconv.Itoa(r.Rows),
			typ,
			yesNo(r.EmergencyRelief),
			headerRow,
			strconv.Itoa(r.Valid),
			strconv.Itoa(r.Rejected),
			columns,
		})
	}
	return data
}

// titles turns snake_case keys into column titles.
func titles(keys ...string) []string {
	caser := cases.Title(language.English)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = caser.String(strings.ReplaceAll(k, "_", " "))
	}
	return out
}

// formatRules lists rule counts in a stable order.
func formatRules(rules map[string]int) string {
	if len(rules) == 0 {
		return ""
	}
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, rules[k])
	}
	return strings.Join(parts, ", ")
}

func yesNo(b bool) string {
	if b {
		return constants.FlagTrue
	}
	return constants.FlagFalse
}
