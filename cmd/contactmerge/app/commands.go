package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/agentstation/contactmerge/cmd/contactmerge/cmd/inspect"
	"github.com/agentstation/contactmerge/cmd/contactmerge/cmd/merge"
	"github.com/agentstation/contactmerge/cmd/contactmerge/cmd/profile"
)

// NewMergeCommand creates the merge command with app dependencies.
func (a *App) NewMergeCommand() *cobra.Command {
	return merge.NewCommand(a)
}

// NewInspectCommand creates the inspect command with app dependencies.
func (a *App) NewInspectCommand() *cobra.Command {
	return inspect.NewCommand(a)
}

// NewProfileCommand creates the profile command with app dependencies.
func (a *App) NewProfileCommand() *cobra.Command {
	return profile.NewCommand(a)
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the contactmerge CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "contactmerge version %s\n", a.Version())
			fmt.Fprintf(w, "commit: %s\n", a.Commit())
			fmt.Fprintf(w, "built: %s\n", a.Date())
			fmt.Fprintf(w, "built by: %s\n", a.BuiltBy())
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// NewManCommand creates the man command.
func (a *App) NewManCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "man",
		Short:  "Generate man page",
		Long:   `Generate the man page for the contactmerge CLI.`,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			header := &doc.GenManHeader{
				Title:   "CONTACTMERGE",
				Section: "1",
				Source:  "contactmerge " + a.version,
				Manual:  "contactmerge Manual",
			}
			return doc.GenMan(cmd.Root(), header, cmd.OutOrStdout())
		},
	}
}
