package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// writeSession creates <root>/projects/<slug>/<id>.jsonl with the given lines.
func writeSession(t *testing.T, root, slug, id string, lines ...string) string {
	t.Helper()
	return writeSessionIn(t, filepath.Join(root, projectsDirName), slug, id, lines...)
}

func writeSessionIn(t *testing.T, dir, slug, id string, lines ...string) string {
	t.Helper()
	projDir := filepath.Join(dir, slug)
	require.NoError(t, os.MkdirAll(projDir, 0o755))
	path := filepath.Join(projDir, id+sessionExt)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
	return path
}

func setModTime(t *testing.T, path string, mt time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(path, mt, mt))
}

func userLine(text string) string {
	return `{"type":"user","message":{"role":"user","content":` + quote(text) + `},"uuid":"u"}`
}

func assistantLine(text string) string {
	return `{"type":"assistant","message":{"role":"assistant","content":[{"type":"text","text":` + quote(text) + `}]},"uuid":"a"}`
}

func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}
