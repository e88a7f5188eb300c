package main

import (
	"github.com/kulewers/members-only/cmd/cli/migrate"
	"github.com/kulewers/members-only/cmd/cli/posts"
	"github.com/kulewers/members-only/cmd/cli/root"
	"github.com/kulewers/members-only/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()

	migrate.InitMigrate(rootCmd)
	users.InitUsers(rootCmd)
	posts.InitPosts(rootCmd)

	// Execute the root Cobra command
	root.Execute()
}
