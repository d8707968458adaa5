package contacts

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/agentstation/contactmerge/pkg/constants"
)

// Exported record keys, in output column order.
const (
	KeyIdentities    = "identities"
	KeyEmail         = "email"
	KeyName          = "name"
	KeyNicknames     = "nicknames"
	KeyAddresses     = "addresses"
	KeyUnits         = "units"
	KeyDepartments   = "departments"
	KeyPaperCard     = "paperCard"
	KeyAnnualReport  = "annualReport"
	KeyAnnualReceipt = "annualReceipt"
	KeyCount         = "count"
)

// Keys returns the exported record keys in column order.
func Keys() []string {
	return []string{
		KeyIdentities, KeyEmail, KeyName, KeyNicknames, KeyAddresses,
		KeyUnits, KeyDepartments, KeyPaperCard, KeyAnnualReport,
		KeyAnnualReceipt, KeyCount,
	}
}

// Field is one key/value pair of an exported record.
type Field struct {
	Key   string
	Value string
}

// Record is the flat, ordered export form of a contact.
type Record []Field

// Record exports the contact. Sets are joined with "/" and flags are
// rendered as Y or N.
func (c Contact) Record() Record {
	sep := constants.SetSeparator
	return Record{
		{KeyIdentities, c.identities.Join(sep)},
		{KeyEmail, c.email},
		{KeyName, c.name},
		{KeyNicknames, c.nicknames.Join(sep)},
		{KeyAddresses, c.addresses.Join(sep)},
		{KeyUnits, c.units.Join(sep)},
		{KeyDepartments, c.departments.Join(sep)},
		{KeyPaperCard, flag(c.paperCard)},
		{KeyAnnualReport, flag(c.annualReport)},
		{KeyAnnualReceipt, flag(c.annualReceipt)},
		{KeyCount, strconv.Itoa(c.mergeCount)},
	}
}

// Values returns the record values in key order.
func (r Record) Values() []string {
	out := make([]string, len(r))
	for i, f := range r {
		out[i] = f.Value
	}
	return out
}

// Get returns the value stored under key.
func (r Record) Get(key string) (string, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// String renders the record as "{key: value, ...}" for audit lines.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Key)
		b.WriteString(": ")
		b.WriteString(f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func flag(b bool) string {
	if b {
		return constants.FlagTrue
	}
	return constants.FlagFalse
}
