package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jh3/agent-session-manager/internal/export"
)

func newExportCmd(a *app) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Write a session transcript to a Markdown file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.store.Load()
			if err != nil {
				return err
			}
			s, err := pickSession(withMessages(sessions), args, "Export > ")
			if err != nil || s == nil {
				return err
			}

			target := dir
			if target == "" {
				target = a.cfg.ResolvedExportPath()
			}
			path, err := export.ToDir(*s, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Exported to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "output directory (default export_path from config)")
	return cmd
}
