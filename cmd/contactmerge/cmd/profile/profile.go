// Package profile provides the profile command.
package profile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/contactmerge/internal/appcontext"
)

// NewCommand creates the profile command using app context.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var profilePath string

	cmd := &cobra.Command{
		Use:     "profile",
		GroupID: "management",
		Short:   "Print the effective sheet profile",
		Long: `Profile prints the sheet profile a merge would use as YAML: the
built-in profile, the file named by --profile, or the profile set in the
config file.

The output is a valid profile and can be edited and passed back with
--profile.`,
		Example: `  contactmerge profile > layouts.yaml
  contactmerge profile --profile layouts.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			prof, err := app.Profile(profilePath)
			if err != nil {
				return err
			}
			data, err := prof.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "sheet profile YAML file (default: built-in profile)")

	return cmd
}
