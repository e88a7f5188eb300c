package posts

import (
	"fmt"
	"html"

	"github.com/spf13/cobra"

	"github.com/kulewers/members-only/cmd/cli/config"
	"github.com/kulewers/members-only/cmd/cli/output"
	"github.com/kulewers/members-only/internal/repo"
	"github.com/kulewers/members-only/internal/services"
)

const maxTitleWidth = 40

// ==========================
// Init Posts
// ==========================
func InitPosts(rootCmd *cobra.Command) {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect forum posts",
	}

	postsCmd.AddCommand(listPostsCmd())

	rootCmd.AddCommand(postsCmd)
}

// ==========================
// LIST
// ==========================
func listPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts with their authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := config.OpenDB(cmd.Context())
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer db.Close()

			posts, err := services.NewPostService(repo.NewPostRepo(db)).List(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return output.PrintJSON(cmd.OutOrStdout(), posts)
			}

			rows := make([][]interface{}, 0, len(posts))
			for _, p := range posts {
				author := "(deleted)"
				if p.Creator != nil {
					author = html.UnescapeString(p.Creator.Username)
				}
				rows = append(rows, []interface{}{
					p.ID,
					truncate(html.UnescapeString(p.Title), maxTitleWidth),
					author,
					p.Timestamp.Local().Format("2006-01-02 15:04"),
				})
			}
			output.RenderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Author", "Created"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolP("json", "j", false, "Output raw JSON instead of a table")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
