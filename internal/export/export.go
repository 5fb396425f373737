// Package export writes session transcripts as Markdown files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
	"github.com/jh3/agent-session-manager/internal/session"
)

// Markdown renders the full transcript of a session
func Markdown(s session.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.DisplayName())
	fmt.Fprintf(&b, "- **Project:** %s\n", s.ProjectPath)
	fmt.Fprintf(&b, "- **Session:** %s\n", s.ID)
	if s.CreatedAt != "" {
		fmt.Fprintf(&b, "- **Created:** %s\n", s.CreatedAt)
	}
	if s.UpdatedAt != "" {
		fmt.Fprintf(&b, "- **Updated:** %s\n", s.UpdatedAt)
	}
	fmt.Fprintf(&b, "- **Entries:** %d\n", s.TotalEntries)

	for _, m := range s.Messages {
		fmt.Fprintf(&b, "\n---\n\n## %s\n\n%s\n", roleHeading(m.Role), m.Content)
	}

	return b.String()
}

// FileName returns the export file name, <project>-<short id>.md
func FileName(s session.Session) string {
	project := strings.NewReplacer("/", "-", `\`, "-").Replace(s.DisplayProjectName())
	if project == "" {
		project = "session"
	}
	return project + "-" + s.ShortID() + ".md"
}

// ToDir writes the transcript into dir, creating it if needed, and returns
// the path of the written file.
func ToDir(s session.Session, dir string) (string, error) {
	const op serrors.Op = "export.ToDir"

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", serrors.FS(op, dir, err)
	}

	path := filepath.Join(dir, FileName(s))
	if err := os.WriteFile(path, []byte(Markdown(s)), 0644); err != nil {
		return "", serrors.FS(op, path, err)
	}
	return path, nil
}

func roleHeading(role string) string {
	switch role {
	case "user":
		return "You"
	case "assistant":
		return "Assistant"
	case "":
		return "Unknown"
	default:
		return strings.ToUpper(role[:1]) + role[1:]
	}
}
