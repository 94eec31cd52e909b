// Package cli defines the boxup command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boxup",
		Short: "Boxup provisions Windows development machines",
		Long: `Boxup provisions Windows development machines: applies a declarative
machine configuration, bootstraps a repository workspace, and carves a
performance-optimized Dev Drive out of the system disk.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newConfigureCmd())
	rootCmd.AddCommand(newBootstrapCmd())
	rootCmd.AddCommand(newDevDriveCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
