// Package reconciler deduplicates contacts with an ordered list of merge
// passes. Each pass folds records it considers the same person into the
// earliest such record and reports every merge to a Recorder.
//
// The default policy runs three passes:
//
//   - email-name: identical (email, name) pairs
//   - name-address: same name and at least one shared address
//   - name-tiered: same name, ranked rules over email, address and the
//     emergency relief flag
//
// Output is deterministic: records keep first-appearance order and no map
// iteration order is observable.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/logging"
)

// Reconciler is the main interface for deduplicating contacts.
type Reconciler interface {
	// Reconcile runs every pass of the policy over records in order.
	Reconcile(ctx context.Context, records []contacts.Contact) (*Result, error)

	// Policy returns the policy in effect.
	Policy() Policy
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	policy Policy
	passes []Pass
	audit  *audit.Log
	logger *zerolog.Logger
}

// New creates a new Reconciler with options.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	passes := make([]Pass, 0, len(options.policy.Passes))
	for _, t := range options.policy.Passes {
		p, err := NewPass(t, options.policy)
		if err != nil {
			return nil, err
		}
		passes = append(passes, p)
	}

	return &reconciler{
		policy: options.policy,
		passes: passes,
		audit:  options.audit,
		logger: options.logger,
	}, nil
}

// Policy implements Reconciler.
func (r *reconciler) Policy() Policy {
	return Policy{
		Passes:            append([]PassType(nil), r.policy.Passes...),
		GuardAddressMerge: r.policy.GuardAddressMerge,
	}
}

// Reconcile implements Reconciler. Cancellation is checked before each pass
// and periodically within a pass.
func (r *reconciler) Reconcile(ctx context.Context, records []contacts.Contact) (*Result, error) {
	if r.logger != nil {
		ctx = logging.WithLogger(ctx, r.logger)
	}

	result := NewResult(r.Policy())
	result.Metadata.Stats.Input = len(records)

	current := append([]contacts.Contact(nil), records...)
	for _, pass := range r.passes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		passCtx := logging.WithPass(ctx, pass.Type().String())
		passLogger := logging.FromContext(passCtx)
		stats := PassStatistics{Pass: pass.Type(), Input: len(current)}

		next, err := pass.Apply(passCtx, current, newCollector(pass.Type(), &stats, r.audit, passLogger))
		if err != nil {
			return nil, err
		}

		stats.Output = len(next)
		result.Metadata.Stats.Merges += stats.Merges
		result.Metadata.Stats.Passes = append(result.Metadata.Stats.Passes, stats)
		passLogger.Info().
			Int("input", stats.Input).
			Int("output", stats.Output).
			Int("merges", stats.Merges).
			Msg("Pass complete")

		current = next
	}

	result.Contacts = current
	result.Finalize()
	return result, nil
}
