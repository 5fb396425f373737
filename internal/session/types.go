package session

import (
	"strings"
	"time"
)

// Message is one cleaned conversational turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session represents one recorded conversation backed by a JSONL file
type Session struct {
	ID           string    `json:"id"`
	ProjectName  string    `json:"project_name"`
	ProjectPath  string    `json:"project_path"`
	CreatedAt    string    `json:"created_at"`
	UpdatedAt    string    `json:"updated_at"`
	Size         int64     `json:"size"`
	TotalEntries int       `json:"total_entries"`
	Messages     []Message `json:"messages"`
	Title        string    `json:"title,omitempty"`
	FilePath     string    `json:"-"`
	ModTime      time.Time `json:"-"`
}

// ShortID returns the first 8 characters of the session ID
func (s Session) ShortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// DisplayProjectName returns the slug without its surrounding hyphens
func (s Session) DisplayProjectName() string {
	return strings.Trim(s.ProjectName, "-")
}

// DisplayName combines project, custom title and short ID
func (s Session) DisplayName() string {
	if s.Title != "" {
		return s.ProjectName + " [" + s.Title + "] (" + s.ShortID() + ")"
	}
	return s.ProjectName + " (" + s.ShortID() + ")"
}

// Summary returns the custom title, or the first user message truncated
func (s Session) Summary() string {
	if s.Title != "" {
		return s.Title
	}
	for _, m := range s.Messages {
		if m.Role == "user" {
			return truncate(flatten(m.Content), 60)
		}
	}
	return "(no messages)"
}

// Resolved reports whether the project path was matched on disk
func (s Session) Resolved() bool {
	return s.ProjectPath != "" && s.ProjectPath != s.ProjectName
}

func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
