package tmux

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GianlucaP106/gotmux/gotmux"
	"go.uber.org/zap"

	"github.com/jh3/agent-session-manager/internal/config"
)

// ClaudeWindow is the window the resumed conversation runs in
const ClaudeWindow = "claude"

// Manager handles tmux operations
type Manager struct {
	tmux *gotmux.Tmux
	log  *zap.Logger
}

// New creates a tmux manager
func New(log *zap.Logger) (*Manager, error) {
	t, err := gotmux.DefaultTmux()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{tmux: t, log: log.Named("tmux")}, nil
}

// IsInsideTmux checks if we're running inside tmux
func IsInsideTmux() bool {
	return os.Getenv("TMUX") != ""
}

// SessionExists checks if a tmux session exists
func (m *Manager) SessionExists(name string) bool {
	return m.tmux.HasSession(name)
}

// Resume switches to the project's tmux session, creating it with the
// configured windows if needed, and restarts the claude window on the
// given conversation.
func (m *Manager) Resume(projectPath, sessionID string, windows []config.Window) error {
	name := ProjectToSessionName(projectPath)

	if !m.SessionExists(name) {
		if err := m.CreateProjectSession(name, projectPath, windows); err != nil {
			return fmt.Errorf("creating tmux session %s: %w", name, err)
		}
	}

	if err := m.SwitchToSession(name); err != nil {
		return fmt.Errorf("switching to %s: %w", name, err)
	}
	if err := m.RespawnWindow(name, ClaudeWindow, ResumeCommand(projectPath, sessionID)); err != nil {
		return fmt.Errorf("respawning %s:%s: %w", name, ClaudeWindow, err)
	}
	if err := m.SelectWindow(name, ClaudeWindow); err != nil {
		return err
	}

	m.log.Info("resumed in tmux", zap.String("session", name), zap.String("id", sessionID))
	return nil
}

// CreateProjectSession creates a session whose first window is "claude",
// followed by one window per configured entry. Windows with a command get
// it typed in and run.
func (m *Manager) CreateProjectSession(name, projectPath string, windows []config.Window) error {
	sess, err := m.tmux.NewSession(&gotmux.SessionOptions{
		Name:           name,
		StartDirectory: projectPath,
	})
	if err != nil {
		return err
	}

	existing, err := sess.ListWindows()
	if err == nil && len(existing) > 0 {
		if err := existing[0].Rename(ClaudeWindow); err != nil {
			return err
		}
	}

	for _, win := range windows {
		if win.Name == "" || win.Name == ClaudeWindow {
			continue
		}
		if _, err := sess.NewWindow(&gotmux.NewWindowOptions{
			WindowName:     win.Name,
			StartDirectory: projectPath,
		}); err != nil {
			return err
		}
		if win.Command != "" {
			if err := m.SendKeysToWindow(name, win.Name, win.Command); err != nil {
				m.log.Warn("window command failed", zap.String("window", win.Name), zap.Error(err))
			}
		}
	}

	return nil
}

// SwitchToSession switches the client to a session
func (m *Manager) SwitchToSession(name string) error {
	return m.tmux.SwitchClient(&gotmux.SwitchClientOptions{
		TargetSession: name,
	})
}

// SelectWindow makes the named window current in its session
func (m *Manager) SelectWindow(sessionName, windowName string) error {
	sess, err := m.tmux.GetSessionByName(sessionName)
	if err != nil {
		return err
	}
	w, err := sess.GetWindowByName(windowName)
	if err != nil {
		return fmt.Errorf("window not found: %s", windowName)
	}
	return w.Select()
}

// SendKeysToWindow sends keys to a specific window and executes them
func (m *Manager) SendKeysToWindow(sessionName, windowName, keys string) error {
	sess, err := m.tmux.GetSessionByName(sessionName)
	if err != nil {
		return err
	}

	w, err := sess.GetWindowByName(windowName)
	if err != nil {
		return fmt.Errorf("window not found: %s", windowName)
	}

	panes, err := w.ListPanes()
	if err != nil || len(panes) == 0 {
		return fmt.Errorf("no panes in window: %s", windowName)
	}

	pane := panes[0]
	if err := pane.SendKeys(keys); err != nil {
		return err
	}
	return pane.SendKeys("Enter")
}

// RespawnWindow kills the current process in a window and runs a new command
func (m *Manager) RespawnWindow(sessionName, windowName, command string) error {
	target := fmt.Sprintf("%s:%s", sessionName, windowName)
	_, err := m.tmux.Command("respawn-pane", "-k", "-t", target, command)
	return err
}

// ResumeCommand is the shell line run in the claude window. The pane drops
// to a shell when claude exits.
func ResumeCommand(projectPath, sessionID string) string {
	return fmt.Sprintf("cd %s && claude --resume %s; exec $SHELL", shellQuote(projectPath), shellQuote(sessionID))
}

// shellQuote wraps s in single quotes so sh passes it through literally
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ProjectToSessionName converts a project path to a tmux session name. tmux
// treats "." and ":" as target separators, so they become "_".
func ProjectToSessionName(projectPath string) string {
	name := filepath.Base(projectPath)
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "claude"
	}
	return strings.NewReplacer(".", "_", ":", "_").Replace(name)
}
