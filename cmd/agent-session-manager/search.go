package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jh3/agent-session-manager/internal/session"
)

func newSearchCmd(a *app) *cobra.Command {
	var trash bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "List sessions whose id, project, title or messages contain query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			load := a.store.Load
			if trash {
				load = a.store.LoadTrash
			}
			sessions, err := load()
			if err != nil {
				return err
			}
			printSessions(a, session.Filter(sessions, strings.Join(args, " ")))
			return nil
		},
	}

	cmd.Flags().BoolVar(&trash, "trash", false, "search trashed sessions")
	return cmd
}
