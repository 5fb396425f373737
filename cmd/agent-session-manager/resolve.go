package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jh3/agent-session-manager/internal/session"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Print the directory a project slug refers to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := session.ResolvePath(args[0])
			if !ok {
				fmt.Fprintln(a.out, "unresolved")
				return nil
			}
			fmt.Fprintln(a.out, path)
			return nil
		},
	}
}
