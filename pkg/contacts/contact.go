// Package contacts defines the canonical contact record and its merge rule.
//
// A Contact is an immutable value. It is created from a single source row with
// New and combined with another record through Merge, which returns a new
// value and never mutates either input.
package contacts

import (
	"fmt"
	"slices"
	"strings"
)

// Origin identifies one source row that contributed to a contact.
type Origin struct {
	Sheet string `json:"sheet" yaml:"sheet"`
	Row   int    `json:"row" yaml:"row"`
}

// String renders the origin as "sheet:row".
func (o Origin) String() string {
	return fmt.Sprintf("%s:%d", o.Sheet, o.Row)
}

// Fields holds the raw values of one source row.
type Fields struct {
	Email       string
	Name        string
	Addresses   []string
	Identities  []string
	Nicknames   []string
	Units       []string
	Departments []string

	PaperCard     bool
	AnnualReport  bool
	AnnualReceipt bool

	// EmergencyRelief marks a row read from an emergency relief sheet.
	EmergencyRelief bool

	Origin Origin
}

// Contact is the canonical record for one real-world person.
type Contact struct {
	email       string
	name        string
	addresses   Set
	identities  Set
	nicknames   Set
	units       Set
	departments Set

	paperCard       bool
	annualReport    bool
	annualReceipt   bool
	emergencyRelief bool

	mergeCount int
	origins    []Origin
}

// New creates a contact from a single row. Strings are trimmed and empty
// values are treated as absent. The merge count starts at 1.
func New(f Fields) Contact {
	c := Contact{
		email:           strings.TrimSpace(f.Email),
		name:            strings.TrimSpace(f.Name),
		addresses:       NewSet(f.Addresses...),
		identities:      NewSet(f.Identities...),
		nicknames:       NewSet(f.Nicknames...),
		units:           NewSet(f.Units...),
		departments:     NewSet(f.Departments...),
		paperCard:       f.PaperCard,
		annualReport:    f.AnnualReport,
		annualReceipt:   f.AnnualReceipt,
		emergencyRelief: f.EmergencyRelief,
		mergeCount:      1,
	}
	if f.Origin != (Origin{}) {
		c.origins = []Origin{f.Origin}
	}
	return c
}

// Email returns the email, or "" when absent.
func (c Contact) Email() string { return c.email }

// Name returns the name, or "" when absent.
func (c Contact) Name() string { return c.name }

// HasEmail reports whether an email is present.
func (c Contact) HasEmail() bool { return c.email != "" }

// HasName reports whether a name is present.
func (c Contact) HasName() bool { return c.name != "" }

// IsAnonymous reports whether neither email nor name is present.
func (c Contact) IsAnonymous() bool { return c.email == "" && c.name == "" }

// Addresses returns the address set.
func (c Contact) Addresses() Set { return c.addresses }

// Identities returns the identity set.
func (c Contact) Identities() Set { return c.identities }

// Nicknames returns the nickname set.
func (c Contact) Nicknames() Set { return c.nicknames }

// Units returns the unit set.
func (c Contact) Units() Set { return c.units }

// Departments returns the department set.
func (c Contact) Departments() Set { return c.departments }

// PaperCard reports whether a paper greeting card is requested.
func (c Contact) PaperCard() bool { return c.paperCard }

// AnnualReport reports whether the annual report is requested.
func (c Contact) AnnualReport() bool { return c.annualReport }

// AnnualReceipt reports whether an annual receipt is requested.
func (c Contact) AnnualReceipt() bool { return c.annualReceipt }

// EmergencyRelief reports whether any contributing row came from an
// emergency relief sheet.
func (c Contact) EmergencyRelief() bool { return c.emergencyRelief }

// MergeCount returns the number of rows folded into this record.
func (c Contact) MergeCount() int { return c.mergeCount }

// Origins returns the contributing source rows in merge order.
func (c Contact) Origins() []Origin { return slices.Clone(c.origins) }

// Merge folds other into c and returns the result.
// Email and name keep the receiver's value when present. Sets are unioned
// with the receiver's members first, and flags are ORed.
func (c Contact) Merge(other Contact) Contact {
	out := Contact{
		email:           firstNonEmpty(c.email, other.email),
		name:            firstNonEmpty(c.name, other.name),
		addresses:       c.addresses.Union(other.addresses),
		identities:      c.identities.Union(other.identities),
		nicknames:       c.nicknames.Union(other.nicknames),
		units:           c.units.Union(other.units),
		departments:     c.departments.Union(other.departments),
		paperCard:       c.paperCard || other.paperCard,
		annualReport:    c.annualReport || other.annualReport,
		annualReceipt:   c.annualReceipt || other.annualReceipt,
		emergencyRelief: c.emergencyRelief || other.emergencyRelief,
		mergeCount:      c.mergeCount + 1,
	}
	out.origins = make([]Origin, 0, len(c.origins)+len(other.origins))
	out.origins = append(out.origins, c.origins...)
	out.origins = append(out.origins, other.origins...)
	return out
}

// String returns the serialized record used in audit lines.
func (c Contact) String() string {
	return c.Record().String()
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
