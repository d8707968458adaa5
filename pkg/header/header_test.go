package header_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/header"
)

func donorLabels() []header.Label {
	return []header.Label{
		{Text: "email", Field: header.FieldEmail, Required: true},
		{Text: "中文全名", Field: header.FieldName, Required: true},
		{Text: "地址", Field: header.FieldAddress, Required: true},
		{Text: "部門", Field: header.FieldDepartment},
	}
}

func TestResolve(t *testing.T) {
	r, err := header.NewResolver(donorLabels())
	require.NoError(t, err)

	tests := []struct {
		name string
		row  []string
		want header.ColumnMap
		ok   bool
	}{
		{
			name: "exact order",
			row:  []string{"email", "中文全名", "地址"},
			want: header.ColumnMap{header.FieldEmail: 0, header.FieldName: 1, header.FieldAddress: 2},
			ok:   true,
		},
		{
			name: "reordered with extra columns and optional label",
			row:  []string{"備註", " 地址 ", "部門", "中文全名", "x", "email"},
			want: header.ColumnMap{header.FieldEmail: 5, header.FieldName: 3, header.FieldAddress: 1, header.FieldDepartment: 2},
			ok:   true,
		},
		{
			name: "duplicate label keeps first occurrence",
			row:  []string{"email", "中文全名", "地址", "email"},
			want: header.ColumnMap{header.FieldEmail: 0, header.FieldName: 1, header.FieldAddress: 2},
			ok:   true,
		},
		{
			name: "missing one required label",
			row:  []string{"email", "中文全名", "部門"},
			ok:   false,
		},
		{
			name: "empty row",
			row:  nil,
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Resolve(tt.row)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestScan(t *testing.T) {
	r, err := header.NewResolver(donorLabels())
	require.NoError(t, err)

	rows := [][]string{
		{"2023 捐款人名單"},
		{"email", "中文全名"},
		{"email", "中文全名", "地址"},
		{"email", "中文全名", "地址", "部門"},
	}
	i, columns, ok := r.Scan(rows)
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "email=0 name=1 address=2", columns.String())

	_, _, ok = r.Scan(rows[:2])
	assert.False(t, ok)
}

func TestMustScan(t *testing.T) {
	r, err := header.NewResolver(donorLabels())
	require.NoError(t, err)

	_, _, err = r.MustScan("MKT", [][]string{{"title"}, {"email", "中文全名"}})
	require.Error(t, err)
	assert.True(t, errors.IsHeaderNotFound(err))

	var he *errors.HeaderError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, []string{"地址"}, he.Missing)
}

func TestNewResolverValidation(t *testing.T) {
	tests := []struct {
		name   string
		labels []header.Label
	}{
		{"empty", nil},
		{"shared label", []header.Label{
			{Text: "名字", Field: header.FieldName, Required: true},
			{Text: "名字", Field: header.FieldNickname},
		}},
		{"field bound twice", []header.Label{
			{Text: "中文全名", Field: header.FieldName, Required: true},
			{Text: "姓名", Field: header.FieldName},
		}},
		{"unknown field", []header.Label{{Text: "x", Field: "phone", Required: true}}},
		{"blank label", []header.Label{{Text: " ", Field: header.FieldName, Required: true}}},
		{"nothing required", []header.Label{{Text: "email", Field: header.FieldEmail}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := header.NewResolver(tt.labels)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}
