package reconciler

import (
	"context"

	"github.com/agentstation/contactmerge/pkg/contacts"
)

// Rules of the name-tiered pass, in priority order.
const (
	RuleSameEmailSharedAddress    = "same-email-shared-address"
	RuleSameEmailNoER             = "same-email-no-er"
	RuleMissingEmailSharedAddress = "missing-email-shared-address"
)

// tieredRule decides whether incoming may fold into existing.
type tieredRule struct {
	name  string
	match func(existing, incoming contacts.Contact) bool
}

var tieredRules = []tieredRule{
	{
		name: RuleSameEmailSharedAddress,
		match: func(e, in contacts.Contact) bool {
			return sameEmail(e, in) && e.Addresses().Overlaps(in.Addresses())
		},
	},
	{
		name: RuleSameEmailNoER,
		match: func(e, in contacts.Contact) bool {
			return sameEmail(e, in) &&
				!e.Addresses().Overlaps(in.Addresses()) &&
				!e.EmergencyRelief() && !in.EmergencyRelief()
		},
	},
	{
		name: RuleMissingEmailSharedAddress,
		match: func(e, in contacts.Contact) bool {
			return (!e.HasEmail() || !in.HasEmail()) && e.Addresses().Overlaps(in.Addresses())
		},
	},
}

// nameTieredPass groups records by exact name and merges within a group
// using ranked rules. Every rule is tried against every record of the group
// before the next rule is considered.
type nameTieredPass struct {
	basePass
}

func newNameTieredPass() *nameTieredPass {
	return &nameTieredPass{basePass{
		typ:         PassNameTiered,
		description: "Merges same-name records by email and address evidence",
	}}
}

// Apply implements Pass.
func (p *nameTieredPass) Apply(ctx context.Context, records []contacts.Contact, rec Recorder) ([]contacts.Contact, error) {
	out := make([]contacts.Contact, 0, len(records))
	groups := make(map[string][]int)

	for i, c := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		if !c.HasName() {
			out = append(out, c)
			continue
		}

		slots := groups[c.Name()]
		slot, rule := match(out, slots, c)
		if slot < 0 {
			groups[c.Name()] = append(slots, len(out))
			out = append(out, c)
			continue
		}

		merged := out[slot].Merge(c)
		out[slot] = merged
		rec.Merged(rule, c, merged)
	}
	return out, nil
}

func match(out []contacts.Contact, slots []int, incoming contacts.Contact) (int, string) {
	for _, r := range tieredRules {
		for _, s := range slots {
			if r.match(out[s], incoming) {
				return s, r.name
			}
		}
	}
	return -1, ""
}

func sameEmail(a, b contacts.Contact) bool {
	return a.HasEmail() && a.Email() == b.Email()
}
