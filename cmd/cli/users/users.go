package users

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kulewers/members-only/cmd/cli/config"
	"github.com/kulewers/members-only/cmd/cli/output"
	"github.com/kulewers/members-only/internal/repo"
	"github.com/kulewers/members-only/internal/services"
	"github.com/kulewers/members-only/internal/validation"
)

// ==========================
// Init Users
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect and manage forum users",
	}

	usersCmd.AddCommand(
		listUsersCmd(),
		promoteUserCmd(),
	)

	rootCmd.AddCommand(usersCmd)
}

func userService(cmd *cobra.Command) (*services.UserService, func(), error) {
	db, err := config.OpenDB(cmd.Context())
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	return services.NewUserService(repo.NewUserRepo(db)), func() { db.Close() }, nil
}

// ==========================
// LIST
// ==========================
func listUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := userService(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			users, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return output.PrintJSON(cmd.OutOrStdout(), users)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, html.UnescapeString(u.Username), u.MembershipStatus, u.Admin})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Status", "Admin"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output raw JSON instead of a table")
	return cmd
}

// ==========================
// PROMOTE
// ==========================

// promoteUserCmd grants member status without the secret code.
func promoteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "promote <username>",
		Short: "Make a user a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeDB, err := userService(cmd)
			if err != nil {
				return err
			}
			defer closeDB()

			// Usernames are stored escaped, as sign-up left them.
			username := validation.EscapeHTML(strings.TrimSpace(args[0]))

			user, err := svc.PromoteByUsername(cmd.Context(), username)
			if errors.Is(err, services.ErrNotFound) {
				return fmt.Errorf("no user named %q", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is now a %s.\n", args[0], user.MembershipStatus)
			return nil
		},
	}
}
