package normalize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/normalize"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

var columns = header.ColumnMap{
	header.FieldEmail:         0,
	header.FieldName:          1,
	header.FieldAddress:       2,
	header.FieldIdentity:      3,
	header.FieldNickname:      4,
	header.FieldUnit:          5,
	header.FieldPaperCard:     6,
	header.FieldAnnualReport:  7,
	header.FieldAnnualReceipt: 8,
	header.FieldDepartment:    9,
}

func newNormalizer(t *testing.T, opts ...normalize.Option) *normalize.Normalizer {
	t.Helper()
	n, err := normalize.New(opts...)
	require.NoError(t, err)
	return n
}

func TestNormalize(t *testing.T) {
	n := newNormalizer(t)
	r := workbook.Row{Number: 7, Cells: []workbook.Cell{
		{Text: " a@x.com ", Kind: workbook.KindString},
		{Text: "王小明", Kind: workbook.KindString},
		{Text: " Taipei ", Kind: workbook.KindString},
		{Text: "donor/ /volunteer/donor", Kind: workbook.KindString},
		{Text: "", Kind: workbook.KindEmpty},
		{Text: "ACME", Kind: workbook.KindString},
		{Text: "Y", Kind: workbook.KindString},
		{Text: "TRUE", Kind: workbook.KindBool},
		{Text: "y", Kind: workbook.KindString},
	}}

	c, err := n.Normalize(r, columns, normalize.Source{Sheet: "ER", EmergencyRelief: true})
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", c.Email())
	assert.Equal(t, "王小明", c.Name())
	assert.Equal(t, []string{"Taipei"}, c.Addresses().Values())
	assert.Equal(t, []string{"donor", "volunteer"}, c.Identities().Values())
	assert.True(t, c.Nicknames().IsEmpty())
	assert.Equal(t, []string{"ACME"}, c.Units().Values())
	assert.True(t, c.Departments().IsEmpty(), "short row leaves department absent")
	assert.True(t, c.PaperCard())
	assert.True(t, c.AnnualReport())
	assert.False(t, c.AnnualReceipt(), "only the exact string Y is truthy")
	assert.True(t, c.EmergencyRelief())
	assert.Equal(t, 1, c.MergeCount())
	assert.Equal(t, 7, c.Origins()[0].Row)
}

func TestNormalizeFlags(t *testing.T) {
	n := newNormalizer(t)
	tests := []struct {
		name string
		cell workbook.Cell
		want bool
	}{
		{"string Y", workbook.Cell{Text: "Y", Kind: workbook.KindString}, true},
		{"string N", workbook.Cell{Text: "N", Kind: workbook.KindString}, false},
		{"bool true", workbook.Cell{Text: "TRUE", Kind: workbook.KindBool}, true},
		{"bool false", workbook.Cell{Text: "FALSE", Kind: workbook.KindBool}, false},
		{"string TRUE", workbook.Cell{Text: "TRUE", Kind: workbook.KindString}, false},
		{"yes", workbook.Cell{Text: "yes", Kind: workbook.KindString}, false},
		{"empty", workbook.Cell{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := workbook.Row{Number: 2, Cells: []workbook.Cell{{Text: "Amy", Kind: workbook.KindString}, tt.cell}}
			c, err := n.Normalize(r, header.ColumnMap{header.FieldName: 0, header.FieldPaperCard: 1}, normalize.Source{Sheet: "s"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.PaperCard())
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := newNormalizer(t)
	r := workbook.NewSheet("s", [][]string{{"a@x.com", "Amy", "Taipei", "donor/staff"}}).Rows[0]

	c1, err := n.Normalize(r, columns, normalize.Source{Sheet: "s"})
	require.NoError(t, err)
	c2, err := n.Normalize(r, columns, normalize.Source{Sheet: "s"})
	require.NoError(t, err)

	assert.Equal(t, c1.Record(), c2.Record())
	assert.Equal(t, 1, c2.MergeCount())
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		opts []normalize.Option
		row  []string
		ok   bool
	}{
		{"no email no name", nil, []string{" ", "", "Taipei"}, false},
		{"sentinel name", nil, []string{"a@x.com", "地址貼上的名字"}, false},
		{"custom sentinel", []normalize.Option{normalize.WithSentinels("TEMPLATE")}, []string{"", "TEMPLATE"}, false},
		{"default sentinel replaced", []normalize.Option{normalize.WithSentinels("TEMPLATE")}, []string{"", "地址貼上的名字"}, true},
		{"email only", nil, []string{"a@x.com"}, true},
		{"address only kept", []normalize.Option{normalize.WithKeepAddressOnly(true)}, []string{"", "", "Taipei"}, true},
		{"nothing kept is still invalid", []normalize.Option{normalize.WithKeepAddressOnly(true)}, []string{"", "", "", "donor"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newNormalizer(t, tt.opts...)
			r := workbook.Row{Number: 9}
			for _, v := range tt.row {
				r.Cells = append(r.Cells, workbook.Cell{Text: v, Kind: workbook.KindString})
			}
			_, err := n.Normalize(r, columns, normalize.Source{Sheet: "MKT"})
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsInvalidRecord(err))
			var ire *errors.InvalidRecordError
			require.ErrorAs(t, err, &ire)
			assert.Equal(t, "MKT", ire.Sheet)
			assert.Equal(t, 9, ire.Row)
		})
	}
}

func TestNewRejectsEmptySeparator(t *testing.T) {
	_, err := normalize.New(normalize.WithSeparator(""))
	assert.True(t, errors.IsValidationError(err))
}

func TestNormalizeSheet(t *testing.T) {
	tl := logging.NewTestLogger(t)
	ctx := logging.WithLogger(context.Background(), tl.Logger)

	resolver, err := header.NewResolver([]header.Label{
		{Text: "email", Field: header.FieldEmail, Required: true},
		{Text: "中文全名", Field: header.FieldName, Required: true},
		{Text: "地址", Field: header.FieldAddress},
	})
	require.NoError(t, err)

	sheet := workbook.NewSheet("捐款人", [][]string{
		{"名單"},
		{},
		{"中文全名", "email", "地址"},
		{"王小明", "a@x.com", "Taipei"},
		{"", "", "Tainan"},
		{"地址貼上的名字", "", ""},
		{"李大華"},
	})

	n := newNormalizer(t)
	res, err := n.NormalizeSheet(ctx, sheet, resolver, normalize.Source{Sheet: "捐款人"})
	require.NoError(t, err)

	assert.True(t, res.HeaderFound)
	assert.Equal(t, 3, res.HeaderRow)
	require.Len(t, res.Contacts, 2)
	assert.Equal(t, "王小明", res.Contacts[0].Name())
	assert.Equal(t, "李大華", res.Contacts[1].Name())

	require.Len(t, res.Rejections, 2)
	assert.Equal(t, 5, res.Rejections[0].Row)
	assert.Equal(t, []string{"", "", "Tainan"}, res.Rejections[0].Cells)
	assert.Equal(t, 6, res.Rejections[1].Row)
	tl.AssertContains(t, "Sheet normalized")
}

func TestNormalizeSheetWithoutHeader(t *testing.T) {
	resolver, err := header.NewResolver([]header.Label{{Text: "email", Field: header.FieldEmail, Required: true}})
	require.NoError(t, err)

	n := newNormalizer(t)
	res, err := n.NormalizeSheet(context.Background(), workbook.NewSheet("x", [][]string{{"a"}, {"b"}}), resolver, normalize.Source{Sheet: "x"})
	require.NoError(t, err)
	assert.False(t, res.HeaderFound)
	assert.Equal(t, []string{"email"}, res.MissingLabels)
	assert.Empty(t, res.Contacts)
}

func TestNormalizeSheetCanceled(t *testing.T) {
	resolver, err := header.NewResolver([]header.Label{{Text: "email", Field: header.FieldEmail, Required: true}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := newNormalizer(t)
	_, err = n.NormalizeSheet(ctx, workbook.NewSheet("x", [][]string{{"email"}, {"a@x.com"}}), resolver, normalize.Source{Sheet: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
