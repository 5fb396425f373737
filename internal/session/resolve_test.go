package session

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slugFor flattens a path the way session producers do.
func slugFor(path string) string {
	return strings.NewReplacer(string(filepath.Separator), "-", ".", "-").Replace(path)
}

func realTempDir(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("slug walking from / is unix-only")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolvePath(t *testing.T) {
	root := realTempDir(t)
	target := filepath.Join(root, "my-app", "web")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "my"), 0o755))

	got, ok := ResolvePath(slugFor(target))
	require.True(t, ok)
	assert.Equal(t, target, got)

	again, ok := ResolvePath(slugFor(target))
	require.True(t, ok)
	assert.Equal(t, got, again)
}

func TestResolvePathDotted(t *testing.T) {
	root := realTempDir(t)
	target := filepath.Join(root, "github.com", "proj")
	require.NoError(t, os.MkdirAll(target, 0o755))

	got, ok := ResolvePath(slugFor(target))
	require.True(t, ok)
	assert.Equal(t, target, got)
}

func TestResolvePathSymlink(t *testing.T) {
	root := realTempDir(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "real", "dir"), 0o755))
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "link")))

	target := filepath.Join(root, "link", "dir")
	got, ok := ResolvePath(slugFor(target))
	require.True(t, ok)
	assert.Equal(t, target, got)
}

func TestResolvePathUnresolved(t *testing.T) {
	root := realTempDir(t)

	_, ok := ResolvePath(slugFor(root) + "-nonexistent-xyz")
	assert.False(t, ok)

	_, ok = ResolvePath("")
	assert.False(t, ok)
	_, ok = ResolvePath("-")
	assert.False(t, ok)
}

func TestResolvePathIgnoresFiles(t *testing.T) {
	root := realTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes"), nil, 0o644))

	_, ok := ResolvePath(slugFor(filepath.Join(root, "notes")))
	assert.False(t, ok)
}

func TestSplitSlug(t *testing.T) {
	tests := []struct {
		name       string
		slug       string
		goos       string
		wantRoot   string
		wantTokens []string
		wantOK     bool
	}{
		{"unix", "-home-me-proj", "linux", "/", []string{"home", "me", "proj"}, true},
		{"unix empty", "-", "linux", "", nil, false},
		{"windows drive", "C--Users-me", "windows", `C:\`, []string{"Users", "me"}, true},
		{"windows lower drive", "d--src", "windows", `D:\`, []string{"src"}, true},
		{"windows bare drive", "C--", "windows", "", nil, false},
		{"windows no drive", "-home-me", "windows", "", nil, false},
		{"windows long prefix", "CC--x", "windows", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, tokens, ok := splitSlug(tt.slug, tt.goos)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			if tt.goos != "windows" {
				assert.Equal(t, string(filepath.Separator), root)
			} else {
				assert.Equal(t, tt.wantRoot, root)
			}
			assert.Equal(t, tt.wantTokens, tokens)
		})
	}
}
