package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jh3/agent-session-manager/internal/session"
	"github.com/jh3/agent-session-manager/internal/ui"
	"github.com/jh3/agent-session-manager/internal/watch"
)

type listOptions struct {
	all   bool
	trash bool
	json  bool
	watch bool
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return a.watchList(cmd.Context(), opts)
			}
			return a.printList(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.all, "all", "a", false, "include sessions with no messages")
	cmd.Flags().BoolVar(&opts.trash, "trash", false, "list trashed sessions instead")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print sessions as JSON")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-list whenever sessions change")
	return cmd
}

func (a *app) loadForList(opts listOptions) ([]session.Session, error) {
	var (
		sessions []session.Session
		err      error
	)
	if opts.trash {
		sessions, err = a.store.LoadTrash()
	} else {
		sessions, err = a.store.LoadWithProgress(func(done, total int) {
			a.log.Debug("load progress", zap.Int("done", done), zap.Int("total", total))
		})
	}
	if err != nil {
		return nil, err
	}
	if !opts.all {
		sessions = withMessages(sessions)
	}
	return sessions, nil
}

func (a *app) printList(opts listOptions) error {
	sessions, err := a.loadForList(opts)
	if err != nil {
		return err
	}

	if opts.json {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if sessions == nil {
			sessions = []session.Session{}
		}
		return enc.Encode(sessions)
	}

	printSessions(a, sessions)
	return nil
}

func printSessions(a *app, sessions []session.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(a.out, "No sessions found.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintln(a.out, ui.StyledSessionLine(s))
	}
}

func (a *app) watchList(ctx context.Context, opts listOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	dir := a.store.ProjectsDir()
	if opts.trash {
		dir = a.store.TrashDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	w, err := watch.New(dir, a.log)
	if err != nil {
		return err
	}

	if err := a.printList(opts); err != nil {
		return err
	}
	return w.Run(ctx, func() {
		fmt.Fprintln(a.out)
		if err := a.printList(opts); err != nil {
			a.log.Warn("reload failed", zap.Error(err))
		}
	})
}
