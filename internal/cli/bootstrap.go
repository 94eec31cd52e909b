package cli

import (
	"github.com/spf13/cobra"

	"boxup.dev/boxup/internal/bootstrap"
	"boxup.dev/boxup/internal/tui"
)

// newBootstrapCmd creates the bootstrap command
func newBootstrapCmd() *cobra.Command {
	var (
		branch   string
		basePath string
	)

	cmd := &cobra.Command{
		Use:   "bootstrap <repoName>",
		Short: "Clone a repository into the workspace root and install its dependencies",
		Long: `Clones <basePath>/<repoName> at <branch> under the fixed workspace root
(%USERPROFILE%\Repos). An existing workspace is archived under a UTC
timestamped name first, never deleted. After the clone, submodules are
initialized and updated, and every directory holding a package manifest gets
a dependency install.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := tui.NewSplog()
			defer func() { _ = splog.Close() }()

			b := bootstrap.NewBootstrapper(splog)
			err := b.Run(cmd.Context(), bootstrap.Options{
				RepoName: args[0],
				Branch:   branch,
				BasePath: basePath,
			})
			if err != nil {
				splog.Error("%v", err)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&branch, "branch", "main", "branch to clone")
	cmd.Flags().StringVar(&basePath, "base-path", bootstrap.DefaultBasePath, "repository host prefix to clone from")

	return cmd
}
