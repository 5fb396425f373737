package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jh3/agent-session-manager/internal/session"
	"github.com/jh3/agent-session-manager/internal/tmux"
)

func newResumeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resume [id]",
		Short: "Resume a session in its project directory",
		Long: `Resume a session with "claude --resume <id>" from the session's project
directory. Inside tmux the conversation opens in a tmux session named after
the project, created with the windows from the config file if needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.store.Load()
			if err != nil {
				return err
			}
			s, err := pickSession(withMessages(sessions), args, "Resume > ")
			if err != nil || s == nil {
				return err
			}
			if !s.Resolved() {
				return fmt.Errorf("project directory for %s could not be found on disk", s.ProjectName)
			}
			return a.resume(*s)
		},
	}
}

func (a *app) resume(s session.Session) error {
	if tmux.IsInsideTmux() {
		mgr, err := tmux.New(a.log)
		if err == nil {
			return mgr.Resume(s.ProjectPath, s.ID, a.cfg.Tmux.Windows)
		}
		a.log.Warn("tmux unavailable, resuming directly", zap.Error(err))
	}
	return resumeDirectly(s)
}

func resumeDirectly(s session.Session) error {
	cmd := exec.Command("claude", "--resume", s.ID)
	cmd.Dir = s.ProjectPath
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
