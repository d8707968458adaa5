// Package header locates the header row of a sheet and maps its raw column
// labels to canonical contact fields.
package header

import (
	"fmt"
	"slices"
	"strings"

	"github.com/agentstation/contactmerge/pkg/errors"
)

// Field is a canonical contact attribute.
type Field string

// Canonical fields.
const (
	FieldEmail         Field = "email"
	FieldName          Field = "name"
	FieldAddress       Field = "address"
	FieldIdentity      Field = "identity"
	FieldNickname      Field = "nickname"
	FieldUnit          Field = "unit"
	FieldDepartment    Field = "department"
	FieldPaperCard     Field = "paperCard"
	FieldAnnualReport  Field = "annualReport"
	FieldAnnualReceipt Field = "annualReceipt"
)

// Fields returns every canonical field.
func Fields() []Field {
	return []Field{
		FieldEmail, FieldName, FieldAddress, FieldIdentity, FieldNickname,
		FieldUnit, FieldDepartment, FieldPaperCard, FieldAnnualReport, FieldAnnualReceipt,
	}
}

// IsValid reports whether f is a known canonical field.
func (f Field) IsValid() bool {
	return slices.Contains(Fields(), f)
}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

// Label binds a raw column label to a canonical field.
type Label struct {
	Text     string `yaml:"label" json:"label"`
	Field    Field  `yaml:"field" json:"field"`
	Required bool   `yaml:"required,omitempty" json:"required,omitempty"`
}

// ColumnMap maps canonical fields to zero-based column indexes.
type ColumnMap map[Field]int

// Index returns the column of f.
func (m ColumnMap) Index(f Field) (int, bool) {
	i, ok := m[f]
	return i, ok
}

// String renders the map in canonical field order.
func (m ColumnMap) String() string {
	var parts []string
	for _, f := range Fields() {
		if i, ok := m[f]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", f, i))
		}
	}
	return strings.Join(parts, " ")
}

// Resolver recognizes header rows for one sheet layout.
type Resolver struct {
	labels []Label
}

// NewResolver validates the label set and returns a resolver.
// A label text may name only one field, a field may be bound to only one
// label, and at least one label must be required.
func NewResolver(labels []Label) (*Resolver, error) {
	if len(labels) == 0 {
		return nil, &errors.ValidationError{Field: "labels", Message: "cannot be empty"}
	}

	byText := make(map[string]Field, len(labels))
	byField := make(map[Field]string, len(labels))
	required := 0
	clean := make([]Label, 0, len(labels))
	for _, l := range labels {
		l.Text = strings.TrimSpace(l.Text)
		if l.Text == "" {
			return nil, &errors.ValidationError{Field: "label", Value: l.Field, Message: "label text cannot be empty"}
		}
		if !l.Field.IsValid() {
			return nil, &errors.ValidationError{Field: "field", Value: l.Field, Message: "unknown canonical field"}
		}
		if prev, ok := byText[l.Text]; ok {
			return nil, &errors.ValidationError{
				Field:   "label",
				Value:   l.Text,
				Message: fmt.Sprintf("mapped to both %s and %s", prev, l.Field),
			}
		}
		if prev, ok := byField[l.Field]; ok {
			return nil, &errors.ValidationError{
				Field:   "field",
				Value:   l.Field,
				Message: fmt.Sprintf("bound to both %q and %q", prev, l.Text),
			}
		}
		byText[l.Text] = l.Field
		byField[l.Field] = l.Text
		if l.Required {
			required++
		}
		clean = append(clean, l)
	}
	if required == 0 {
		return nil, &errors.ValidationError{Field: "labels", Message: "at least one label must be required"}
	}

	return &Resolver{labels: clean}, nil
}

// Labels returns the configured labels.
func (r *Resolver) Labels() []Label {
	return slices.Clone(r.labels)
}

// Resolve reports whether row is a header row and, if so, maps each
// configured field found in it to its column. Every required label must be
// present; optional ones are mapped when present. The first occurrence of a
// duplicated label wins.
func (r *Resolver) Resolve(row []string) (ColumnMap, bool) {
	columns := make(ColumnMap, len(r.labels))
	for _, l := range r.labels {
		i := indexOf(row, l.Text)
		if i < 0 {
			if l.Required {
				return nil, false
			}
			continue
		}
		columns[l.Field] = i
	}
	return columns, true
}

// Missing lists the required labels absent from row.
func (r *Resolver) Missing(row []string) []string {
	var missing []string
	for _, l := range r.labels {
		if l.Required && indexOf(row, l.Text) < 0 {
			missing = append(missing, l.Text)
		}
	}
	return missing
}

// Scan returns the position and column map of the first header row.
func (r *Resolver) Scan(rows [][]string) (int, ColumnMap, bool) {
	for i, row := range rows {
		if columns, ok := r.Resolve(row); ok {
			return i, columns, true
		}
	}
	return -1, nil, false
}

// MustScan is like Scan but returns a HeaderError naming the labels missing
// from the closest candidate row.
func (r *Resolver) MustScan(sheet string, rows [][]string) (int, ColumnMap, error) {
	if i, columns, ok := r.Scan(rows); ok {
		return i, columns, nil
	}
	missing := r.Missing(nil)
	for _, row := range rows {
		if m := r.Missing(row); len(m) < len(missing) {
			missing = m
		}
	}
	return -1, nil, &errors.HeaderError{Sheet: sheet, Missing: missing}
}

func indexOf(row []string, label string) int {
	for i, cell := range row {
		if strings.TrimSpace(cell) == label {
			return i
		}
	}
	return -1
}
