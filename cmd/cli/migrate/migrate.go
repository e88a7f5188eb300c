package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kulewers/members-only/cmd/cli/config"
	"github.com/kulewers/members-only/internal/db"
)

// Swapped out in tests.
var (
	migrateUp   = db.Run
	migrateDown = db.Rollback
)

// ==========================
// Init Migrate
// ==========================
func InitMigrate(rootCmd *cobra.Command) {
	rootCmd.AddCommand(migrateCmd())
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Apply or roll back schema migrations",
		Long:      "up applies every pending migration. down rolls back the most recent one.",
		ValidArgs: []string{"up", "down"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			dsn := config.DSN()

			switch args[0] {
			case "up":
				if err := migrateUp(dsn); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			case "down":
				if err := migrateDown(dsn); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Rolled back one migration.")
			}
			return nil
		},
	}
}
