package reconciler

import (
	"context"
	"strings"

	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/errors"
)

// PassType names one deduplication pass.
type PassType string

// String returns the string representation of a pass type.
func (p PassType) String() string {
	return string(p)
}

// Name returns the pass type in title case, e.g. "Name Tiered".
func (p PassType) Name() string {
	words := strings.Split(p.String(), "-")
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}

const (
	// PassEmailName merges records with identical (email, name).
	PassEmailName PassType = "email-name"
	// PassNameAddress merges records sharing a name and at least one address.
	PassNameAddress PassType = "name-address"
	// PassNameTiered merges records with the same name using ranked rules.
	PassNameTiered PassType = "name-tiered"
)

// PassTypes returns every pass type in default execution order.
func PassTypes() []PassType {
	return []PassType{PassEmailName, PassNameAddress, PassNameTiered}
}

// ParsePassType parses a pass name.
func ParsePassType(s string) (PassType, error) {
	p := PassType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PassTypes() {
		if p == known {
			return p, nil
		}
	}
	return "", &errors.ValidationError{
		Field:   "pass",
		Value:   s,
		Message: "unknown pass (want email-name, name-address or name-tiered)",
	}
}

// Recorder receives every merge a pass performs.
type Recorder interface {
	Merged(rule string, incoming, result contacts.Contact)
}

// Pass is one sweep over the full record list.
type Pass interface {
	// Type returns the pass type
	Type() PassType

	// Description returns a human-readable description
	Description() string

	// Apply folds matching records together and returns the reduced list.
	// Output order follows first appearance in records.
	Apply(ctx context.Context, records []contacts.Contact, rec Recorder) ([]contacts.Contact, error)
}

// basePass provides common pass functionality.
type basePass struct {
	typ         PassType
	description string
}

// Type returns the pass type.
func (p *basePass) Type() PassType {
	return p.typ
}

// Description returns a human-readable description.
func (p *basePass) Description() string {
	return p.description
}

// NewPass builds the pass of the given type under policy.
func NewPass(typ PassType, policy Policy) (Pass, error) {
	switch typ {
	case PassEmailName:
		return newEmailNamePass(), nil
	case PassNameAddress:
		return newNameAddressPass(policy.GuardAddressMerge), nil
	case PassNameTiered:
		return newNameTieredPass(), nil
	default:
		return nil, &errors.ValidationError{Field: "pass", Value: string(typ), Message: "unknown pass"}
	}
}

// checkpoint reports cancellation every few records.
func checkpoint(ctx context.Context, i int) error {
	if i%checkInterval == 0 {
		return ctx.Err()
	}
	return nil
}
