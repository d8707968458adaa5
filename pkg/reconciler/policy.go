package reconciler

import (
	"slices"

	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/errors"
)

const checkInterval = constants.ContextCheckInterval

// Policy is the ordered set of passes a reconciler runs.
type Policy struct {
	Passes []PassType `json:"passes" yaml:"passes"`

	// GuardAddressMerge restricts the name-address pass to merges where at
	// least one side has no email.
	GuardAddressMerge bool `json:"guard_address_merge" yaml:"guard_address_merge"`
}

// DefaultPolicy runs every pass with the address guard off.
func DefaultPolicy() Policy {
	return Policy{Passes: PassTypes()}
}

// Validate checks that the policy names known passes, each at most once.
func (p Policy) Validate() error {
	if len(p.Passes) == 0 {
		return &errors.ValidationError{Field: "passes", Message: "at least one pass is required"}
	}
	seen := make([]PassType, 0, len(p.Passes))
	for _, t := range p.Passes {
		if _, err := ParsePassType(string(t)); err != nil {
			return err
		}
		if slices.Contains(seen, t) {
			return &errors.ValidationError{Field: "passes", Value: string(t), Message: "listed more than once"}
		}
		seen = append(seen, t)
	}
	return nil
}
