package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRenameCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Give a session a custom title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.store.Load()
			if err != nil {
				return err
			}
			s, err := findSession(sessions, args[0])
			if err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := a.store.Rename(s, title); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Renamed %s to %q\n", s.ShortID(), strings.TrimSpace(title))
			return nil
		},
	}
}
