package reconciler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/reconciler"
)

var row int

// contact builds a single-row contact with a unique origin.
func contact(email, name string, addresses ...string) contacts.Contact {
	row++
	return contacts.New(contacts.Fields{
		Email:     email,
		Name:      name,
		Addresses: addresses,
		Origin:    contacts.Origin{Sheet: "test", Row: row},
	})
}

func erContact(email, name string, addresses ...string) contacts.Contact {
	row++
	return contacts.New(contacts.Fields{
		Email:           email,
		Name:            name,
		Addresses:       addresses,
		EmergencyRelief: true,
		Origin:          contacts.Origin{Sheet: "ER", Row: row},
	})
}

// run reconciles records and returns the result and its audit log.
func run(t *testing.T, records []contacts.Contact, opts ...reconciler.Option) (*reconciler.Result, *audit.Log) {
	t.Helper()

	log := audit.NewWithID("test")
	opts = append([]reconciler.Option{reconciler.WithAuditLog(log), reconciler.WithLogger(logging.NewNopLogger())}, opts...)
	r, err := reconciler.New(opts...)
	require.NoError(t, err)

	result, err := r.Reconcile(context.Background(), records)
	require.NoError(t, err)
	return result, log
}

func rules(log *audit.Log) []string {
	var out []string
	for _, e := range log.Filter(audit.KindMerge) {
		out = append(out, e.Rule)
	}
	return out
}

func names(cs []contacts.Contact) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name()
	}
	return out
}
