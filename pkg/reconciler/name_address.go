package reconciler

import (
	"context"

	"github.com/agentstation/contactmerge/pkg/contacts"
)

// RuleSharedNameAddress is the single rule of the name-address pass.
const RuleSharedNameAddress = "shared-name-address"

type nameAddressKey struct {
	name    string
	address string
}

// nameAddressPass merges records that share a name and any address.
// Each record yields one candidate key per address; the first key already
// indexed decides the target.
type nameAddressPass struct {
	basePass
	guard bool
}

func newNameAddressPass(guard bool) *nameAddressPass {
	desc := "Merges records sharing a name and an address"
	if guard {
		desc += " when at least one side has no email"
	}
	return &nameAddressPass{
		basePass: basePass{typ: PassNameAddress, description: desc},
		guard:    guard,
	}
}

// Apply implements Pass.
func (p *nameAddressPass) Apply(ctx context.Context, records []contacts.Contact, rec Recorder) ([]contacts.Contact, error) {
	out := make([]contacts.Contact, 0, len(records))
	index := make(map[nameAddressKey]int, len(records))

	claim := func(c contacts.Contact, slot int) {
		for _, k := range candidateKeys(c) {
			if _, taken := index[k]; !taken {
				index[k] = slot
			}
		}
	}

	for i, c := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		keys := candidateKeys(c)
		if len(keys) == 0 {
			out = append(out, c)
			continue
		}

		slot := -1
		for _, k := range keys {
			if s, ok := index[k]; ok {
				slot = s
				break
			}
		}

		if slot >= 0 && p.allowed(out[slot], c) {
			merged := out[slot].Merge(c)
			out[slot] = merged
			claim(merged, slot)
			rec.Merged(RuleSharedNameAddress, c, merged)
			continue
		}

		claim(c, len(out))
		out = append(out, c)
	}
	return out, nil
}

// allowed applies the optional email guard.
func (p *nameAddressPass) allowed(target, incoming contacts.Contact) bool {
	if !p.guard {
		return true
	}
	return !target.HasEmail() || !incoming.HasEmail()
}

func candidateKeys(c contacts.Contact) []nameAddressKey {
	if !c.HasName() {
		return nil
	}
	addrs := c.Addresses().Values()
	keys := make([]nameAddressKey, len(addrs))
	for i, a := range addrs {
		keys[i] = nameAddressKey{name: c.Name(), address: a}
	}
	return keys
}
