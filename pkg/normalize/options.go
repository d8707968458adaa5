package normalize

import (
	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/errors"
)

type options struct {
	separator       string
	sentinels       []string
	keepAddressOnly bool
}

func defaultOptions() *options {
	return &options{
		separator: constants.SetSeparator,
		sentinels: []string{constants.DefaultSentinelName},
	}
}

// Option configures a Normalizer.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithSeparator sets the separator used to split the identity column.
func WithSeparator(sep string) Option {
	return func(o *options) error {
		if sep == "" {
			return &errors.ValidationError{Field: "separator", Message: "cannot be empty"}
		}
		o.separator = sep
		return nil
	}
}

// WithSentinels replaces the names that mark a row as a non-data artifact.
func WithSentinels(names ...string) Option {
	return func(o *options) error {
		o.sentinels = append([]string(nil), names...)
		return nil
	}
}

// WithKeepAddressOnly accepts rows that carry an address but neither email
// nor name. Such rows never match in any merge pass.
func WithKeepAddressOnly(keep bool) Option {
	return func(o *options) error {
		o.keepAddressOnly = keep
		return nil
	}
}
