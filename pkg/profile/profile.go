// Package profile describes which worksheets to read and how their header
// labels map to contact fields. Profiles are YAML documents; a default
// profile is compiled into the binary.
package profile

import (
	"fmt"
	"os"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/contactmerge/internal/embedded"
	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/reconciler"
)

// SheetType is one sheet layout: the sheets that use it and their labels.
type SheetType struct {
	Name   string         `yaml:"name" json:"name"`
	Sheets []string       `yaml:"sheets" json:"sheets"`
	Labels []header.Label `yaml:"labels" json:"labels"`
}

// Profile is the complete sheet and merge configuration of a run.
type Profile struct {
	Separator       string            `yaml:"separator" json:"separator"`
	Sentinels       []string          `yaml:"sentinels" json:"sentinels"`
	ERSheets        []string          `yaml:"er_sheets" json:"er_sheets"`
	AllSheets       bool              `yaml:"all_sheets" json:"all_sheets"`
	KeepAddressOnly bool              `yaml:"keep_address_only" json:"keep_address_only"`
	Policy          reconciler.Policy `yaml:"policy" json:"policy"`
	Sheets          []SheetType       `yaml:"sheets" json:"sheets"`

	// Source is where the profile was loaded from.
	Source string `yaml:"-" json:"-"`
}

// Default returns the embedded default profile.
func Default() (*Profile, error) {
	data, err := embedded.FS.ReadFile(embedded.DefaultProfilePath)
	if err != nil {
		return nil, errors.WrapIO("read", embedded.DefaultProfilePath, err)
	}
	return Parse(data, "embedded:"+embedded.DefaultProfilePath)
}

// Load reads and validates a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied profile path
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a YAML profile. Unknown keys are rejected.
// Omitted scalars fall back to the defaults.
func Parse(data []byte, source string) (*Profile, error) {
	p := &Profile{
		Separator: constants.SetSeparator,
		Sentinels: []string{constants.DefaultSentinelName},
		ERSheets:  []string{constants.EmergencyReliefSheet},
		Policy:    reconciler.DefaultPolicy(),
	}
	if err := yaml.UnmarshalWithOptions(data, p, yaml.DisallowUnknownField()); err != nil {
		return nil, errors.WrapParse("yaml", source, err)
	}
	p.Source = source
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the profile for consistency, including every label set.
func (p *Profile) Validate() error {
	if p.Separator == "" {
		return &errors.ValidationError{Field: "separator", Message: "cannot be empty"}
	}
	if len(p.Sheets) == 0 {
		return &errors.ValidationError{Field: "sheets", Message: "at least one sheet type is required"}
	}
	if err := p.Policy.Validate(); err != nil {
		return err
	}

	seen := map[string]string{}
	for _, st := range p.Sheets {
		if st.Name == "" {
			return &errors.ValidationError{Field: "sheets.name", Message: "cannot be empty"}
		}
		if _, err := header.NewResolver(st.Labels); err != nil {
			return fmt.Errorf("sheet type %s: %w", st.Name, err)
		}
		for _, s := range st.Sheets {
			if prev, ok := seen[s]; ok {
				return &errors.ValidationError{
					Field:   "sheets",
					Value:   s,
					Message: fmt.Sprintf("listed by both %s and %s", prev, st.Name),
				}
			}
			seen[s] = st.Name
		}
	}
	return nil
}

// SheetType returns the layout for a worksheet name. With AllSheets set,
// unlisted sheets use the first sheet type.
func (p *Profile) SheetType(sheet string) (*SheetType, bool) {
	for i := range p.Sheets {
		if slices.Contains(p.Sheets[i].Sheets, sheet) {
			return &p.Sheets[i], true
		}
	}
	if p.AllSheets {
		return &p.Sheets[0], true
	}
	return nil, false
}

// IsER reports whether rows of sheet carry the emergency relief flag.
func (p *Profile) IsER(sheet string) bool {
	return slices.Contains(p.ERSheets, sheet)
}

// Resolvers builds one header resolver per sheet type, keyed by type name.
func (p *Profile) Resolvers() (map[string]*header.Resolver, error) {
	out := make(map[string]*header.Resolver, len(p.Sheets))
	for _, st := range p.Sheets {
		r, err := header.NewResolver(st.Labels)
		if err != nil {
			return nil, fmt.Errorf("sheet type %s: %w", st.Name, err)
		}
		out[st.Name] = r
	}
	return out, nil
}

// Marshal renders the profile as YAML.
func (p *Profile) Marshal() ([]byte, error) {
	data, err := yaml.MarshalWithOptions(p, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("marshaling profile: %w", err)
	}
	return data, nil
}
