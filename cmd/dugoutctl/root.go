package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/dugout/internal/client"
)

const defaultServer = "http://localhost:9080"

type commandContext struct {
	server  string
	timeout time.Duration
	json    bool
}

func (c *commandContext) client() *client.Client {
	return client.New(c.server, client.WithTimeout(c.timeout))
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "dugoutctl",
		Short:         "Inspect and edit dugout player data",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	server := os.Getenv("DUGOUT_SERVER")
	if server == "" {
		server = defaultServer
	}
	rootCmd.PersistentFlags().StringVar(&ctx.server, "server", server, "dugout API base URL (env DUGOUT_SERVER)")
	rootCmd.PersistentFlags().DurationVar(&ctx.timeout, "timeout", 90*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&ctx.json, "json", false, "Print raw JSON")

	rootCmd.AddCommand(newPlayersCommand(ctx))
	rootCmd.AddCommand(newRefreshCommand(ctx))

	return rootCmd
}
