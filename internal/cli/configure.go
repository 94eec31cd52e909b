package cli

import (
	"os"

	"github.com/spf13/cobra"

	"boxup.dev/boxup/internal/configure"
	"boxup.dev/boxup/internal/tui"
)

// newConfigureCmd creates the configure command
func newConfigureCmd() *cobra.Command {
	var (
		path   string
		inline string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Apply a declarative machine configuration through the configuration tool",
		Long: `Resolves a configuration document from a URI, a local file, or an inline
string and pipes it into the configuration tool's apply operation. The tool
is downloaded from its release feed when absent from PATH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := tui.NewSplog()
			defer func() { _ = splog.Close() }()

			runner := configure.NewRunner(cmd.Context(), splog, os.Getenv("GITHUB_TOKEN"))
			err := runner.Apply(cmd.Context(), configure.Source{
				Path:   path,
				Inline: inline,
			})
			if err != nil {
				splog.Error("%v", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "configuration document URI or file path")
	cmd.Flags().StringVar(&inline, "inline", "", "configuration document passed inline")
	cmd.MarkFlagsMutuallyExclusive("path", "inline")

	return cmd
}
