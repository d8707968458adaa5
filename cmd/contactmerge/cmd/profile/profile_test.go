package profile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge/internal/appcontext"
	"github.com/agentstation/contactmerge/pkg/errors"
	pkgprofile "github.com/agentstation/contactmerge/pkg/profile"
)

func TestProfilePrintsDefault(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	// The printed profile must load back unchanged.
	parsed, err := pkgprofile.Parse(buf.Bytes(), "stdout")
	require.NoError(t, err)
	def, err := pkgprofile.Default()
	require.NoError(t, err)
	assert.Equal(t, def.Sheets, parsed.Sheets)
	assert.Equal(t, def.Policy, parsed.Policy)
	assert.Contains(t, buf.String(), "中文全名")
}

func TestProfileFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
separator: ";"
sheets:
  - name: list
    sheets: [Contacts]
    labels:
      - {label: "Name", field: name, required: true}
`), 0o644))

	cmd := NewCommand(&appcontext.Mock{})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--profile", path})
	require.NoError(t, cmd.Execute())
	parsed, err := pkgprofile.Parse(buf.Bytes(), "stdout")
	require.NoError(t, err)
	assert.Equal(t, ";", parsed.Separator)
	assert.Equal(t, []string{"Contacts"}, parsed.Sheets[0].Sheets)
}

func TestProfileInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sheets: []\n"), 0o644))

	cmd := NewCommand(&appcontext.Mock{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--profile", path})
	err := cmd.Execute()
	assert.True(t, errors.IsValidationError(err), "got %v", err)
}
