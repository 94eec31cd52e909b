package cli

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"boxup.dev/boxup/internal/devdrive"
	"boxup.dev/boxup/internal/tui"
)

// newDevDriveCmd creates the devdrive command
func newDevDriveCmd() *cobra.Command {
	opts := devdrive.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "devdrive",
		Short: "Provision a Dev Drive volume and redirect package caches to it",
		Long: `Validates OS support, then either relabels an existing Dev Drive volume or
shrinks the system volume to create and format a new one. Applies the
filesystem minifilter allow-list, marks the volume trusted, and points the
package-manager cache environment variables at it.

Deleting a volume that occupies the requested drive letter is irreversible
and asks for confirmation; --force skips the prompt.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			splog := tui.NewSplog()
			defer func() { _ = splog.Close() }()

			p := devdrive.NewProvisioner(splog)
			if err := p.Run(cmd.Context(), opts); err != nil {
				splog.Error("%v", err)
				splog.Debug("stack trace:\n%s", debug.Stack())
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DriveLetter, "drive-letter", opts.DriveLetter, "drive letter for the Dev Drive")
	cmd.Flags().IntVar(&opts.OsDriveMinSizeGB, "os-drive-min-size-gb", opts.OsDriveMinSizeGB, "minimum size in GB reserved for the system volume")
	cmd.Flags().BoolVar(&opts.EnableGVFS, "enable-gvfs", false, "allow the virtual-filesystem git filter on the Dev Drive")
	cmd.Flags().BoolVar(&opts.EnableContainers, "enable-containers", false, "allow container-mount filters on the Dev Drive")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "skip confirmation before destroying a volume at the requested letter")

	return cmd
}
