package contactmerge

import (
	"context"
	"fmt"

	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/contacts"
	"github.com/agentstation/contactmerge/pkg/header"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/normalize"
	"github.com/agentstation/contactmerge/pkg/profile"
	"github.com/agentstation/contactmerge/pkg/reconciler"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

// Pipeline turns a workbook into deduplicated contacts.
type Pipeline interface {
	// Process normalizes every selected sheet, merges the records and
	// partitions them into ER and Other.
	Process(ctx context.Context, wb *workbook.Workbook) (*Result, error)

	// Inspect reports sheet selection and header resolution without merging.
	Inspect(ctx context.Context, wb *workbook.Workbook) ([]SheetReport, error)

	// Profile returns the effective profile
	Profile() *profile.Profile

	// Policy returns the effective merge policy
	Policy() reconciler.Policy

	// OnSheet registers a callback for examined sheets
	OnSheet(SheetHook)

	// OnRejected registers a callback for rejected rows
	OnRejected(RejectedHook)
}

// pipeline is the internal implementation of the Pipeline interface
type pipeline struct {
	*hooks
	profile    *profile.Profile
	policy     reconciler.Policy
	normalizer *normalize.Normalizer
	resolvers  map[string]*header.Resolver
}

// New creates a new Pipeline with the given options
func New(opts ...Option) (Pipeline, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}
	if c.profile == nil {
		p, err := profile.Default()
		if err != nil {
			return nil, fmt.Errorf("loading default profile: %w", err)
		}
		c.profile = p
	}

	policy := c.policy()
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	keep := c.profile.KeepAddressOnly
	if c.keepAddressOnly != nil {
		keep = *c.keepAddressOnly
	}
	sentinels := c.profile.Sentinels
	if c.sentinels != nil {
		sentinels = c.sentinels
	}
	n, err := normalize.New(
		normalize.WithSeparator(c.profile.Separator),
		normalize.WithSentinels(sentinels...),
		normalize.WithKeepAddressOnly(keep),
	)
	if err != nil {
		return nil, err
	}

	resolvers, err := c.profile.Resolvers()
	if err != nil {
		return nil, err
	}

	return &pipeline{
		hooks:      newHooks(),
		profile:    c.profile,
		policy:     policy,
		normalizer: n,
		resolvers:  resolvers,
	}, nil
}

// Profile returns the effective profile
func (p *pipeline) Profile() *profile.Profile {
	return p.profile
}

// Policy returns the effective merge policy
func (p *pipeline) Policy() reconciler.Policy {
	return p.policy
}

// Inspect implements Pipeline.
func (p *pipeline) Inspect(ctx context.Context, wb *workbook.Workbook) ([]SheetReport, error) {
	stage, err := p.normalizeSheets(ctx, wb, nil)
	if err != nil {
		return nil, err
	}
	return stage.reports, nil
}

// Process implements Pipeline.
func (p *pipeline) Process(ctx context.Context, wb *workbook.Workbook) (*Result, error) {
	runID := logging.RunID(ctx)
	var log *audit.Log
	if runID != "" {
		log = audit.NewWithID(runID)
	} else {
		log = audit.New()
		ctx = logging.WithRunID(ctx, log.RunID())
	}
	ctx = logging.WithFile(ctx, wb.Path)
	logger := logging.FromContext(ctx)

	stage, err := p.normalizeSheets(ctx, wb, log)
	if err != nil {
		return nil, err
	}

	r, err := reconciler.New(
		reconciler.WithPolicy(p.policy),
		reconciler.WithAuditLog(log),
	)
	if err != nil {
		return nil, err
	}
	merged, err := r.Reconcile(ctx, stage.contacts)
	if err != nil {
		return nil, fmt.Errorf("merging contacts: %w", err)
	}

	er, other := reconciler.Partition(merged.Contacts)
	result := &Result{
		RunID:      log.RunID(),
		Sheets:     stage.reports,
		Rejections: stage.rejections,
		Contacts:   merged.Contacts,
		ER:         er,
		Other:      other,
		Reconcile:  merged,
		Audit:      log,
	}
	log.Summarize(result.Summary())

	logger.Info().
		Int("input", merged.Metadata.Stats.Input).
		Int("output", len(merged.Contacts)).
		Int("merges", merged.Metadata.Stats.Merges).
		Int("er", len(er)).
		Int("other", len(other)).
		Msg("Merge complete")
	return result, nil
}

// sheetStage is the combined output of normalizing every sheet.
type sheetStage struct {
	reports    []SheetReport
	contacts   []contacts.Contact
	rejections []normalize.Rejection
}

// normalizeSheets runs selection, header resolution and normalization over
// wb in sheet order. Rejections go to log when it is non-nil.
func (p *pipeline) normalizeSheets(ctx context.Context, wb *workbook.Workbook, log *audit.Log) (*sheetStage, error) {
	stage := &sheetStage{}
	for _, sheet := range wb.Sheets {
		sctx := logging.WithSheet(ctx, sheet.Name)
		logger := logging.FromContext(sctx)

		report := SheetReport{Sheet: sheet.Name, Rows: len(sheet.Rows)}
		st, ok := p.profile.SheetType(sheet.Name)
		if !ok {
			logger.Debug().Msg("Sheet not recognized, skipped")
			stage.reports = append(stage.reports, report)
			p.hooks.sheet(report)
			continue
		}
		report.Selected = true
		report.Type = st.Name
		report.EmergencyRelief = p.profile.IsER(sheet.Name)

		res, err := p.normalizer.NormalizeSheet(sctx, sheet, p.resolvers[st.Name], normalize.Source{
			Sheet:           sheet.Name,
			EmergencyRelief: report.EmergencyRelief,
		})
		if err != nil {
			return nil, fmt.Errorf("normalizing sheet %s: %w", sheet.Name, err)
		}

		report.HeaderFound = res.HeaderFound
		report.HeaderRow = res.HeaderRow
		report.Columns = res.Columns
		report.MissingLabels = res.MissingLabels
		report.Valid = len(res.Contacts)
		report.Rejected = len(res.Rejections)

		for _, rej := range res.Rejections {
			if log != nil {
				log.InvalidRow(rej.Sheet, rej.Row, rej.Cells, rej.Err)
			}
			p.hooks.rejected(rej)
		}

		stage.contacts = append(stage.contacts, res.Contacts...)
		stage.rejections = append(stage.rejections, res.Rejections...)
		stage.reports = append(stage.reports, report)
		p.hooks.sheet(report)
	}
	return stage, nil
}
