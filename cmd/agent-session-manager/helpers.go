package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
	"github.com/jh3/agent-session-manager/internal/session"
	"github.com/jh3/agent-session-manager/internal/ui"
)

// pickSession resolves the optional id argument against sessions, falling
// back to the interactive picker. A nil session means the user cancelled.
func pickSession(sessions []session.Session, args []string, prompt string) (*session.Session, error) {
	if len(args) == 0 {
		return ui.SelectSession(sessions, prompt)
	}
	s, err := findSession(sessions, args[0])
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func findSession(sessions []session.Session, id string) (session.Session, error) {
	s, ok := session.FindByID(sessions, id)
	if !ok {
		return session.Session{}, serrors.E(serrors.Op("find"), serrors.KindNotFound, fmt.Sprintf("no session matches %q", id))
	}
	return s, nil
}

// withMessages drops sessions that have nothing to read
func withMessages(sessions []session.Session) []session.Session {
	var out []session.Session
	for _, s := range sessions {
		if len(s.Messages) > 0 {
			out = append(out, s)
		}
	}
	return out
}

func confirm(input io.Reader, output io.Writer, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(output, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
