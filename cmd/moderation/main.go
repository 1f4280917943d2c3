package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/moderation/internal/interfaces/cli/migrate"
	"github.com/orris-inc/moderation/internal/interfaces/cli/server"
	"github.com/orris-inc/moderation/internal/interfaces/cli/snapshot"
	"github.com/orris-inc/moderation/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "moderation",
		Short:   "Moderation - content and user moderation service",
		Long:    `Moderation serves the moderator console API: content queues, reports, tickets, appeals, AI rules, and user sanctions.`,
		Version: version.Current,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		snapshot.NewCommand(),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
