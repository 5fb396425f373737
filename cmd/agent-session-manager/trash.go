package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jh3/agent-session-manager/internal/session"
)

func newTrashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "trash [id...]",
		Short: "Move sessions to the trash",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.store.Load()
			if err != nil {
				return err
			}
			targets, err := selectTargets(sessions, args, "Trash > ")
			if err != nil {
				return err
			}
			for _, s := range targets {
				if err := a.store.MoveToTrash(s.ProjectName, s.ID); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Moved %s to trash\n", s.DisplayName())
			}
			return nil
		},
	}
}

func newRestoreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "restore [id...]",
		Short: "Move trashed sessions back to their project",
		RunE: func(cmd *cobra.Command, args []string) error {
			trashed, err := a.store.LoadTrash()
			if err != nil {
				return err
			}
			targets, err := selectTargets(trashed, args, "Restore > ")
			if err != nil {
				return err
			}
			for _, s := range targets {
				if err := a.store.Restore(s); err != nil {
					return err
				}
				fmt.Fprintf(a.out, "Restored %s\n", s.DisplayName())
			}
			return nil
		},
	}
}

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "Permanently delete a trashed session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trashed, err := a.store.LoadTrash()
			if err != nil {
				return err
			}
			if len(trashed) == 0 {
				fmt.Fprintln(a.out, "Trash is empty.")
				return nil
			}
			s, err := pickSession(trashed, args, "Delete > ")
			if err != nil || s == nil {
				return err
			}

			if !yes && !confirm(a.in, a.out, "Permanently delete "+s.DisplayName()+"?") {
				fmt.Fprintln(a.out, "Aborted.")
				return nil
			}
			if err := a.store.Delete(*s); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted %s\n", s.DisplayName())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func newEmptyTrashCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "empty-trash",
		Short: "Permanently delete every trashed session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trashed, err := a.store.LoadTrash()
			if err != nil {
				return err
			}
			if len(trashed) == 0 {
				fmt.Fprintln(a.out, "Trash is empty.")
				return nil
			}

			prompt := fmt.Sprintf("Permanently delete %d trashed session(s)?", len(trashed))
			if !yes && !confirm(a.in, a.out, prompt) {
				fmt.Fprintln(a.out, "Aborted.")
				return nil
			}
			if err := a.store.EmptyTrash(); err != nil {
				return err
			}
			a.log.Info("trash emptied", zap.Int("sessions", len(trashed)))
			fmt.Fprintf(a.out, "Deleted %d session(s)\n", len(trashed))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

// selectTargets maps each id argument to a session, or asks for one
func selectTargets(sessions []session.Session, ids []string, prompt string) ([]session.Session, error) {
	if len(ids) == 0 {
		s, err := pickSession(sessions, nil, prompt)
		if err != nil || s == nil {
			return nil, err
		}
		return []session.Session{*s}, nil
	}

	targets := make([]session.Session, 0, len(ids))
	for _, id := range ids {
		s, err := findSession(sessions, id)
		if err != nil {
			return nil, err
		}
		targets = append(targets, s)
	}
	return targets, nil
}
