package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jh3/agent-session-manager/internal/export"
	"github.com/jh3/agent-session-manager/internal/ui"
)

func newShowCmd(a *app) *cobra.Command {
	var (
		raw   bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Print a session transcript",
		Long:  "Print a session transcript. Without an id, pick one interactively. The id may be any unique prefix.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.store.Load()
			if err != nil {
				return err
			}
			s, err := pickSession(withMessages(sessions), args, "Show > ")
			if err != nil || s == nil {
				return err
			}

			md := export.Markdown(*s)
			if raw {
				_, err := fmt.Fprint(a.out, md)
				return err
			}
			out, err := ui.RenderMarkdown(md, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(a.out, out)
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without rendering")
	cmd.Flags().IntVar(&width, "width", 100, "wrap rendered output at this width")
	return cmd
}
