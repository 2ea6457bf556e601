package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRefreshCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Drop the server's cached upstream dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := ctx.client().Refresh(cmd.Context()); err != nil {
				return err
			}
			if ctx.json {
				return writeJSON(cmd, map[string]string{"status": "refreshed"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Upstream cache dropped")
			return nil
		},
	}
}
