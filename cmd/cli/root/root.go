package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Exported RootCmd
var RootCmd = &cobra.Command{
	Use:           "members",
	Short:         "Members Only operator CLI",
	Long:          "Command line interface for running migrations and managing Members Only users and posts directly against the database",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// GetRoot returns the RootCmd so subcommand packages can attach to it.
func GetRoot() *cobra.Command {
	return RootCmd
}
