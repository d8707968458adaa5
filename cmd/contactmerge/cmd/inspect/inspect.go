// Package inspect provides the inspect command.
package inspect

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/agentstation/contactmerge/internal/appcontext"
	"github.com/agentstation/contactmerge/internal/cmd/output"
	"github.com/agentstation/contactmerge/pkg/constants"
	"github.com/agentstation/contactmerge/pkg/logging"
	"github.com/agentstation/contactmerge/pkg/workbook"
)

// NewCommand creates the inspect command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var (
		profilePath string
		encoding    string
	)

	cmd := &cobra.Command{
		Use:     "inspect <input>",
		GroupID: "core",
		Short:   "Show how each sheet of a workbook would be read",
		Long: `Inspect lists every sheet of the input workbook with its row count,
whether the profile selects it, the header row that was found and the
column each field maps to. Nothing is merged or written.

Use it to check a profile against a workbook whose layout has changed.`,
		Example: `  contactmerge inspect donors.xlsx
  contactmerge inspect donors.xlsx --profile layouts.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, err := app.PipelineWithOptions(profilePath)
			if err != nil {
				return err
			}
			if encoding == "" {
				encoding = app.Encoding()
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.CommandTimeout)
			defer cancel()
			ctx = logging.WithLogger(ctx, app.Logger())

			wb, err := workbook.Read(args[0], workbook.WithEncoding(encoding))
			if err != nil {
				return err
			}
			reports, err := pipeline.Inspect(ctx, wb)
			if err != nil {
				return err
			}

			format := output.DetectFormat(app.OutputFormat())
			formatter := output.NewFormatter(format)
			if format == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), output.SheetsTable(reports))
			}
			return formatter.Format(cmd.OutOrStdout(), reports)
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "sheet profile YAML file (default: built-in profile)")
	cmd.Flags().StringVar(&encoding, "encoding", "", "CSV input encoding, e.g. utf-8, big5")

	return cmd
}
