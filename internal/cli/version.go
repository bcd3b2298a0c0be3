package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the duckbook release version.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/duckbook"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the duckbook version",
		Args:  cobra.NoArgs,
		// Skip directory resolution and config loading.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "duckbook v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
