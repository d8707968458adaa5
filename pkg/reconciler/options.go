package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/errors"
)

// options configures a reconciler.
type options struct {
	policy Policy
	audit  *audit.Log
	logger *zerolog.Logger
}

func defaultOptions() *options {
	return &options{
		policy: DefaultPolicy(),
	}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// WithPolicy replaces the whole policy.
func WithPolicy(p Policy) Option {
	return func(o *options) error {
		o.policy = Policy{
			Passes:            append([]PassType(nil), p.Passes...),
			GuardAddressMerge: p.GuardAddressMerge,
		}
		return nil
	}
}

// WithPasses sets which passes run, in order.
func WithPasses(passes ...PassType) Option {
	return func(o *options) error {
		if len(passes) == 0 {
			return &errors.ValidationError{Field: "passes", Message: "cannot be empty"}
		}
		o.policy.Passes = append([]PassType(nil), passes...)
		return nil
	}
}

// WithAddressGuard enables the email guard of the name-address pass.
func WithAddressGuard(enabled bool) Option {
	return func(o *options) error {
		o.policy.GuardAddressMerge = enabled
		return nil
	}
}

// WithAuditLog sets the collector that receives every merge.
func WithAuditLog(log *audit.Log) Option {
	return func(o *options) error {
		if log == nil {
			return &errors.ValidationError{Field: "audit", Message: "cannot be nil"}
		}
		o.audit = log
		return nil
	}
}

// WithLogger sets the logger. By default the logger is taken from the
// context passed to Reconcile.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
