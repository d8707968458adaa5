// Package normalize turns raw worksheet rows into canonical contacts.
package normalize

import (
	"context"
	"slices"
	"strings"

	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/errors"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

// Source describes where a row was read from.
type Source struct {
	Sheet string
	// EmergencyRelief tags every row of the sheet with the ER flag.
	EmergencyRelief bool
}

// Normalizer applies the field coercion rules to rows.
type Normalizer struct {
	separator       string
	sentinels       []string
	keepAddressOnly bool
}

// New creates a Normalizer.
func New(opts ...Option) (*Normalizer, error) {
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Normalizer{
		separator:       o.separator,
		sentinels:       o.sentinels,
		keepAddressOnly: o.keepAddressOnly,
	}, nil
}

// Normalize builds one contact from row. Columns missing from the row are
// treated as absent. It returns an *errors.InvalidRecordError when the row
// has neither email nor name, or when the name is a sentinel.
func (n *Normalizer) Normalize(row workbook.Row, columns header.ColumnMap, src Source) (contacts.Contact, error) {
	text := func(f header.Field) string {
		i, ok := columns.Index(f)
		if !ok || i >= len(row.Cells) {
			return ""
		}
		return strings.TrimSpace(row.Cells[i].Text)
	}
	flag := func(f header.Field) bool {
		i, ok := columns.Index(f)
		if !ok || i >= len(row.Cells) {
			return false
		}
		c := row.Cells[i]
		return c.Bool() || strings.TrimSpace(c.Text) == constants.FlagTrue
	}

	fields := contacts.Fields{
		Email:           text(header.FieldEmail),
		Name:            text(header.FieldName),
		Addresses:       single(text(header.FieldAddress)),
		Identities:      split(text(header.FieldIdentity), n.separator),
		Nicknames:       single(text(header.FieldNickname)),
		Units:           single(text(header.FieldUnit)),
		Departments:     single(text(header.FieldDepartment)),
		PaperCard:       flag(header.FieldPaperCard),
		AnnualReport:    flag(header.FieldAnnualReport),
		AnnualReceipt:   flag(header.FieldAnnualReceipt),
		EmergencyRelief: src.EmergencyRelief,
		Origin:          contacts.Origin{Sheet: src.Sheet, Row: row.Number},
	}

	if fields.Name != "" && slices.Contains(n.sentinels, fields.Name) {
		return contacts.Contact{}, errors.NewInvalidRecordError(src.Sheet, row.Number, "name is a placeholder: "+fields.Name)
	}
	if fields.Email == "" && fields.Name == "" {
		if !n.keepAddressOnly || len(fields.Addresses) == 0 {
			return contacts.Contact{}, errors.NewInvalidRecordError(src.Sheet, row.Number, "neither email nor name present")
		}
	}

	return contacts.New(fields), nil
}

// Rejection is a row that failed normalization.
type Rejection struct {
	Sheet string
	Row   int
	Cells []string
	Err   error
}

// SheetResult is the outcome of normalizing one sheet.
type SheetResult struct {
	Sheet       string
	HeaderFound bool
	HeaderRow   int
	Columns     header.ColumnMap
	// MissingLabels lists the required labels absent from the closest
	// candidate row when no header was found.
	MissingLabels []string
	Contacts      []contacts.Contact
	Rejections    []Rejection
}

// NormalizeSheet finds the header row of sheet and normalizes every row
// after it. Invalid rows are collected as rejections and never abort the
// sheet. A sheet without a header yields no contacts.
func (n *Normalizer) NormalizeSheet(ctx context.Context, sheet workbook.Sheet, resolver *header.Resolver, src Source) (SheetResult, error) {
	logger := logging.FromContext(ctx)
	result := SheetResult{Sheet: sheet.Name}

	texts := make([][]string, len(sheet.Rows))
	for i, r := range sheet.Rows {
		texts[i] = r.Texts()
	}
	at, columns, err := resolver.MustScan(sheet.Name, texts)
	if err != nil {
		he, ok := err.(*errors.HeaderError)
		if !ok {
			return result, err
		}
		result.MissingLabels = he.Missing
		logger.Warn().Strs("missing", he.Missing).Msg("No header row found, sheet skipped")
		return result, nil
	}
	result.HeaderFound = true
	result.HeaderRow = sheet.Rows[at].Number
	result.Columns = columns
	logger.Debug().
		Int("header_row", result.HeaderRow).
		Str("columns", columns.String()).
		Msg("Header resolved")

	for i, row := range sheet.Rows[at+1:] {
		if i%constants.ContextCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}
		c, err := n.Normalize(row, columns, src)
		if err != nil {
			if !errors.IsInvalidRecord(err) {
				return result, err
			}
			result.Rejections = append(result.Rejections, Rejection{
				Sheet: sheet.Name,
				Row:   row.Number,
				Cells: texts[at+1+i],
				Err:   err,
			})
			logger.Debug().Err(err).Int("row", row.Number).Msg("Row rejected")
			continue
		}
		result.Contacts = append(result.Contacts, c)
	}

	logger.Info().
		Int("valid", len(result.Contacts)).
		Int("rejected", len(result.Rejections)).
		Msg("Sheet normalized")
	return result, nil
}

func single(v string) []string {
	if v == "" {
		return nil
	}
	return []string{v}
}

func split(v, sep string) []string {
	if v == "" {
		return nil
	}
	return strings.Split(v, sep)
}
