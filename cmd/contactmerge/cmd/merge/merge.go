// Package merge provides the merge command.
package merge

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/agentstation/contactmerge"
	"github.com/agentstation/contactmerge/internal/appcontext"
	"github.com/agentstation/contactmerge/internal/cmd/alerts"
	"github.com/agentstation/contactmerge/internal/cmd/output"
	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/normalize"
	"github.com/agentstation/contactmerge/pkg/reconciler"
	"github.com/agentstation/contactmerge/pkg/staging"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

// Flags holds the merge command flags.
type Flags struct {
	Profile         string
	AuditLog        string
	AuditFormat     string
	Encoding        string
	AddressGuard    bool
	Passes          []string
	KeepAddressOnly bool
	SummaryFormat   string
}

// NewCommand creates the merge command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "merge <input> [output]",
		GroupID: "core",
		Short:   "Deduplicate the contacts of a workbook",
		Long: `Merge reads every recognized sheet of the input workbook, merges duplicate
contacts and writes them to two sheets, ER and Other.

The output defaults to <input>-merged.xlsx next to the input. A .csv output
path writes one <output>-<sheet>.csv file per sheet. The audit log defaults
to merge.log next to the output.

Rows that are not contacts are skipped and recorded in the audit log; they
never fail the run.`,
		Example: `  contactmerge merge donors.xlsx
  contactmerge merge donors.xlsx out/merged.xlsx --audit-format markdown
  contactmerge merge donors.csv --encoding big5 --passes email-name,name-tiered
  contactmerge merge donors.xlsx --address-guard --summary-format json`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := pipelineOptions(cmd, flags)
			if err != nil {
				return err
			}
			pipeline, err := app.PipelineWithOptions(flags.Profile, opts...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			ctx = logging.WithLogger(ctx, app.Logger())

			input := args[0]
			out := DefaultOutputPath(input)
			if len(args) > 1 {
				out = args[1]
			}

			summary, err := Run(ctx, pipeline, Request{
				Input:       input,
				Output:      out,
				AuditLog:    flags.AuditLog,
				AuditFormat: pick(flags.AuditFormat, app.AuditFormat()),
				Encoding:    pick(flags.Encoding, app.Encoding()),
			})
			if err != nil {
				return err
			}

			format, err := output.ParseFormat(pick(flags.SummaryFormat, app.OutputFormat()))
			if err != nil {
				return err
			}
			if err := printSummary(cmd, format, summary); err != nil {
				return err
			}
			return alerts.NewWriter(cmd.ErrOrStderr(), app.NoColor()).Write(alerts.FromSummary(summary)...)
		},
	}

	cmd.Flags().StringVarP(&flags.Profile, "profile", "p", "", "sheet profile YAML file (default: built-in profile)")
	cmd.Flags().StringVar(&flags.AuditLog, "audit-log", "", "audit log path (default: merge.log next to the output)")
	cmd.Flags().StringVar(&flags.AuditFormat, "audit-format", "", "audit log format: text, markdown")
	cmd.Flags().StringVar(&flags.Encoding, "encoding", "", "CSV input encoding, e.g. utf-8, big5")
	cmd.Flags().BoolVar(&flags.AddressGuard, "address-guard", false, "do not merge same-name records across different emails on a shared address")
	cmd.Flags().StringSliceVar(&flags.Passes, "passes", nil, "merge passes to run in order: email-name, name-address, name-tiered")
	cmd.Flags().BoolVar(&flags.KeepAddressOnly, "keep-address-only", false, "accept rows that carry only an address (no email or name)")
	cmd.Flags().StringVar(&flags.SummaryFormat, "summary-format", "", "summary format: table, json, yaml (default: --format)")

	return cmd
}

// Request describes one merge run.
type Request struct {
	Input       string
	Output      string
	AuditLog    string
	AuditFormat string
	Encoding    string
}

// Run reads the input, processes it with pipeline and writes the output
// workbook and the audit log. Either all output files are written or none
// is. Skipped rows are reported through the context logger and do not make
// Run fail.
func Run(ctx context.Context, pipeline contactmerge.Pipeline, req Request) (output.RunSummary, error) {
	logger := logging.FromContext(ctx)

	auditFormat, err := audit.ParseFormat(req.AuditFormat)
	if err != nil {
		return output.RunSummary{}, err
	}

	wb, err := workbook.Read(req.Input, workbook.WithEncoding(req.Encoding))
	if err != nil {
		return output.RunSummary{}, err
	}

	pipeline.OnRejected(func(r normalize.Rejection) {
		logger.Info().
			Str("sheet", r.Sheet).
			Int("row", r.Row).
			Str("reason", r.Err.Error()).
			Msg("Row skipped")
	})

	result, err := pipeline.Process(ctx, wb)
	if err != nil {
		return output.RunSummary{}, err
	}

	auditPath := req.AuditLog
	if auditPath == "" {
		auditPath = filepath.Join(filepath.Dir(req.Output), constants.DefaultAuditLogName)
	}

	// The workbook and the audit log are committed together.
	set := &staging.Set{}
	defer set.Discard()
	sheets := result.Output()
	if err := workbook.Stage(set, req.Output, sheets); err != nil {
		return output.RunSummary{}, err
	}
	outputs := set.Paths()
	if err := result.Audit.Stage(set, auditPath, auditFormat); err != nil {
		return output.RunSummary{}, err
	}
	if err := set.Commit(); err != nil {
		return output.RunSummary{}, err
	}

	logger.Info().
		Strs("outputs", outputs).
		Str("audit_log", auditPath).
		Msg("Output written")

	return output.NewRunSummary(result, req.Input, outputs, auditPath), nil
}

// printSummary writes summary as tables on a terminal and as structured
// data otherwise.
func printSummary(cmd *cobra.Command, format output.Format, summary output.RunSummary) error {
	format = output.DetectFormat(string(format))
	formatter := output.NewFormatter(format)
	if format == output.FormatTable {
		return formatter.Format(cmd.OutOrStdout(), summary.Tables())
	}
	return formatter.Format(cmd.OutOrStdout(), summary)
}

// DefaultOutputPath returns "<input stem>-merged.xlsx" next to input.
func DefaultOutputPath(input string) string {
	return filepath.Join(filepath.Dir(input), workbook.Stem(input)+constants.DefaultOutputSuffix+".xlsx")
}

// pipelineOptions turns explicitly set flags into pipeline options so
// unset flags leave the profile's policy alone.
func pipelineOptions(cmd *cobra.Command, flags *Flags) ([]contactmerge.Option, error) {
	var opts []contactmerge.Option
	if cmd.Flags().Changed("passes") {
		passes := make([]reconciler.PassType, 0, len(flags.Passes))
		for _, s := range flags.Passes {
			p, err := reconciler.ParsePassType(s)
			if err != nil {
				return nil, err
			}
			passes = append(passes, p)
		}
		opts = append(opts, contactmerge.WithPasses(passes...))
	}
	if cmd.Flags().Changed("address-guard") {
		opts = append(opts, contactmerge.WithAddressGuard(flags.AddressGuard))
	}
	if cmd.Flags().Changed("keep-address-only") {
		opts = append(opts, contactmerge.WithKeepAddressOnly(flags.KeepAddressOnly))
	}
	return opts, nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
