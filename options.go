package contactmerge

import (
	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/profile"
	"github.com/agentstation/contactmerge/pkg/reconciler"
)

// config holds pipeline settings. Pointer fields override the profile.
type config struct {
	profile         *profile.Profile
	passes          []reconciler.PassType
	addressGuard    *bool
	keepAddressOnly *bool
	sentinels       []string
}

// Option is a function that configures a Pipeline
type Option func(*config) error

// WithProfile sets the sheet profile. The embedded default is used otherwise.
func WithProfile(p *profile.Profile) Option {
	return func(c *config) error {
		if p == nil {
			return &errors.ValidationError{Field: "profile", Message: "cannot be nil"}
		}
		if err := p.Validate(); err != nil {
			return err
		}
		c.profile = p
		return nil
	}
}

// WithPasses overrides the merge passes of the profile.
func WithPasses(passes ...reconciler.PassType) Option {
	return func(c *config) error {
		c.passes = append([]reconciler.PassType(nil), passes...)
		return nil
	}
}

// WithAddressGuard overrides the name-address email guard of the profile.
func WithAddressGuard(enabled bool) Option {
	return func(c *config) error {
		c.addressGuard = &enabled
		return nil
	}
}

// WithKeepAddressOnly overrides whether address-only rows are kept.
func WithKeepAddressOnly(keep bool) Option {
	return func(c *config) error {
		c.keepAddressOnly = &keep
		return nil
	}
}

// WithSentinels overrides the placeholder names that mark non-data rows.
// Calling it with no names disables sentinel filtering.
func WithSentinels(names ...string) Option {
	return func(c *config) error {
		c.sentinels = append(make([]string, 0, len(names)), names...)
		return nil
	}
}

// policy returns the profile policy with overrides applied.
func (c *config) policy() reconciler.Policy {
	p := c.profile.Policy
	if len(c.passes) > 0 {
		p.Passes = c.passes
	}
	if c.addressGuard != nil {
		p.GuardAddressMerge = *c.addressGuard
	}
	return p
}
