package reconciler

import (
	"context"

	"github.com/agentstation/contactmerge/pkg/contacts"
)

// RuleSameEmailName is the single rule of the email-name pass.
const RuleSameEmailName = "same-email-name"

type emailNameKey struct {
	email string
	name  string
}

// emailNamePass merges records whose (email, name) pair is identical.
// Records with neither field pass through untouched.
type emailNamePass struct {
	basePass
}

func newEmailNamePass() *emailNamePass {
	return &emailNamePass{basePass{
		typ:         PassEmailName,
		description: "Merges records with identical email and name",
	}}
}

// Apply implements Pass.
func (p *emailNamePass) Apply(ctx context.Context, records []contacts.Contact, rec Recorder) ([]contacts.Contact, error) {
	out := make([]contacts.Contact, 0, len(records))
	index := make(map[emailNameKey]int, len(records))

	for i, c := range records {
		if err := checkpoint(ctx, i); err != nil {
			return nil, err
		}
		if c.IsAnonymous() {
			out = append(out, c)
			continue
		}

		key := emailNameKey{email: c.Email(), name: c.Name()}
		if slot, ok := index[key]; ok {
			merged := out[slot].Merge(c)
			out[slot] = merged
			rec.Merged(RuleSameEmailName, c, merged)
			continue
		}
		index[key] = len(out)
		out = append(out, c)
	}
	return out, nil
}
