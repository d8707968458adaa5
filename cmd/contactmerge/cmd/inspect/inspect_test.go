package inspect

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/internal/appcontext"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

func writeInput(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "donors.xlsx")
	require.NoError(t, workbook.Write(path, []workbook.SheetRecords{
		{Name: "捐款人", Header: []string{"地址", "中文全名", "email"}, Rows: [][]string{
			{"Taipei", "王小明", "a@x.com"},
			{"", "", ""},
			{"Tainan", "陳美玲", ""},
		}},
		{Name: "工作表1", Header: []string{"notes"}, Rows: nil},
	}))
	return path
}

func TestInspectJSON(t *testing.T) {
	input := writeInput(t)
	cmd := NewCommand(&appcontext.Mock{OutputFormatFunc: func() string { return "json" }})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{input})
	require.NoError(t, cmd.Execute())

	var reports []contactmerge.SheetReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 2)

	donors := reports[0]
	assert.True(t, donors.Selected)
	assert.True(t, donors.HeaderFound)
	assert.Equal(t, 1, donors.HeaderRow)
	assert.Equal(t, 2, donors.Valid)
	assert.Equal(t, header.ColumnMap{header.FieldAddress: 0, header.FieldName: 1, header.FieldEmail: 2}, donors.Columns)

	assert.False(t, reports[1].Selected)

	_, err := os.Stat(filepath.Join(filepath.Dir(input), "merge.log"))
	assert.True(t, os.IsNotExist(err), "inspect must not write an audit log")
}

func TestInspectTable(t *testing.T) {
	cmd := NewCommand(&appcontext.Mock{OutputFormatFunc: func() string { return "table" }})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{writeInput(t)})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "捐款人")
	assert.Contains(t, buf.String(), "email=2")
}

func TestInspectCustomProfile(t *testing.T) {
	profilePath := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(profilePath, []byte(`
all_sheets: true
sheets:
  - name: notes
    labels:
      - {label: "notes", field: name, required: true}
`), 0o644))

	cmd := NewCommand(&appcontext.Mock{OutputFormatFunc: func() string { return "json" }})
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{writeInput(t), "--profile", profilePath})
	require.NoError(t, cmd.Execute())

	var reports []contactmerge.SheetReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &reports))
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Selected)
	assert.False(t, reports[0].HeaderFound)
	assert.Equal(t, []string{"notes"}, reports[0].MissingLabels)
	assert.True(t, reports[1].HeaderFound)
}
