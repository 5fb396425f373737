package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jh3/agent-session-manager/internal/session"
)

func testSession() session.Session {
	return session.Session{
		ID:           "0123456789abcdef",
		ProjectName:  "-home-me-proj",
		ProjectPath:  "/home/me/proj",
		UpdatedAt:    "2026-01-02T03:04:05Z",
		TotalEntries: 5,
		Messages: []session.Message{
			{Role: "user", Content: "How do I run the tests?"},
			{Role: "assistant", Content: "Use `make test`."},
			{Role: "unknown", Content: "stray"},
		},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(testSession())

	assert.True(t, strings.HasPrefix(md, "# -home-me-proj (01234567)\n"))
	assert.Contains(t, md, "- **Project:** /home/me/proj")
	assert.Contains(t, md, "- **Entries:** 5")
	assert.NotContains(t, md, "**Created:**")
	assert.Contains(t, md, "## You\n\nHow do I run the tests?")
	assert.Contains(t, md, "## Assistant\n\nUse `make test`.")
	assert.Contains(t, md, "## Unknown\n\nstray")
}

func TestToDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := testSession()

	path, err := ToDir(s, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "home-me-proj-01234567.md"), path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, m := range s.Messages {
		assert.Contains(t, string(data), m.Content)
	}
}

func TestFileNameEmptyProject(t *testing.T) {
	assert.Equal(t, "session-abc.md", FileName(session.Session{ID: "abc", ProjectName: "-"}))
}
