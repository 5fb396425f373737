package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/jh3/agent-session-manager/internal/session"
)

const dateLayout = "2006-01-02 15:04"

var (
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	sizeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	projectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
)

// FormatSessionLine is the plain one-line form used by the picker
func FormatSessionLine(s session.Session) string {
	return fmt.Sprintf("%s  %-20s  %s",
		s.ModTime.Format(dateLayout),
		fixedWidth(s.DisplayProjectName(), 20),
		s.Summary())
}

// StyledSessionLine is the colored list form: date, size, project, id, summary
func StyledSessionLine(s session.Session) string {
	summary := s.Summary()
	if s.Title != "" {
		summary = titleStyle.Render(summary)
	}
	return strings.Join([]string{
		dateStyle.Render(s.ModTime.Format(dateLayout)),
		sizeStyle.Render(fmt.Sprintf("%8s", FormatSize(s.Size))),
		projectStyle.Render(fixedWidth(s.DisplayProjectName(), 28)),
		s.ShortID(),
		summary,
	}, "  ")
}

// FormatSize renders a byte count for humans
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatPreview describes one session for the picker's preview pane
func FormatPreview(s session.Session, width int) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Session: ") + s.ID + "\n")
	b.WriteString(headerStyle.Render("Project: ") + s.ProjectPath + "\n")
	if s.Title != "" {
		b.WriteString(headerStyle.Render("Title:   ") + s.Title + "\n")
	}
	b.WriteString("\n")

	users, assistants := countRoles(s.Messages)
	fmt.Fprintf(&b, "Messages: %d user / %d assistant (%d entries)\n", users, assistants, s.TotalEntries)
	fmt.Fprintf(&b, "Size: %s\n", FormatSize(s.Size))
	b.WriteString(dateStyle.Render("Modified: "+s.ModTime.Format("2006-01-02 15:04:05")) + "\n")

	for _, m := range s.Messages {
		if m.Role != "user" {
			continue
		}
		b.WriteString("\n" + headerStyle.Render("First prompt:") + "\n")
		for _, line := range wordWrap(m.Content, max(width-2, 20)) {
			b.WriteString(line + "\n")
		}
		break
	}

	return b.String()
}

// RenderMarkdown renders a transcript for the terminal, wrapping at width
func RenderMarkdown(md string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func countRoles(messages []session.Message) (users, assistants int) {
	for _, m := range messages {
		switch m.Role {
		case "user":
			users++
		case "assistant":
			assistants++
		}
	}
	return users, assistants
}

// fixedWidth ensures a string is exactly the given width (truncate or pad)
func fixedWidth(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	if len(runes) < width {
		return s + strings.Repeat(" ", width-len(runes))
	}
	return s
}

func wordWrap(s string, width int) []string {
	var lines []string
	words := strings.Fields(s)
	var line string

	for _, word := range words {
		if line == "" {
			line = word
		} else if len(line)+1+len(word) <= width {
			line += " " + word
		} else {
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}
