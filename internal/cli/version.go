package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	version    = "0.1.0"
	modulePath = "github.com/mesh-intelligence/profileforge"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the profilectl version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "profilectl v%s\nmodule: %s\n", version, modulePath)
			return nil
		},
	}
}
