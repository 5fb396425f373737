package ui

import (
	"errors"
	"fmt"

	"github.com/koki-develop/go-fzf"

	"github.com/jh3/agent-session-manager/internal/session"
)

// SelectSession presents an interactive fuzzy finder. It returns nil with no
// error when the user cancels.
func SelectSession(sessions []session.Session, prompt string) (*session.Session, error) {
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no sessions found")
	}
	if prompt == "" {
		prompt = "Sessions > "
	}

	f, err := fzf.New(
		fzf.WithPrompt(prompt),
		fzf.WithInputPosition(fzf.InputPositionTop),
		fzf.WithLimit(1),
	)
	if err != nil {
		return nil, err
	}

	idxs, err := f.Find(
		sessions,
		func(i int) string {
			return FormatSessionLine(sessions[i])
		},
		fzf.WithPreviewWindow(func(i, w, h int) string {
			if i < 0 || i >= len(sessions) {
				return ""
			}
			return FormatPreview(sessions[i], w)
		}),
	)
	if errors.Is(err, fzf.ErrAbort) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(idxs) == 0 {
		return nil, nil
	}

	return &sessions[idxs[0]], nil
}
