package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

func TestMoveToTrashAndRestore(t *testing.T) {
	root := t.TempDir()
	content := userLine("keep me") + "\n" + assistantLine("ok") + "\n"
	live := writeSession(t, root, "proj", "id")
	require.NoError(t, os.WriteFile(live, []byte(content), 0o644))
	trashed := filepath.Join(root, trashDirName, "proj", "id.jsonl")

	core, logs := observer.New(zapcore.InfoLevel)
	store := NewStore(root, WithLogger(zap.New(core)))

	require.NoError(t, store.MoveToTrash("proj", "id"))
	assert.NoFileExists(t, live)
	assert.FileExists(t, trashed)

	sessions, err := store.LoadTrash()
	require.NoError(t, err)
	require.Len(t, sessions, 1)

	require.NoError(t, store.Restore(sessions[0]))
	assert.FileExists(t, live)
	assert.NoFileExists(t, trashed)

	got, err := os.ReadFile(live)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, 2, logs.FilterMessage("moved session").Len())
}

func TestMoveToTrashMissing(t *testing.T) {
	store := NewStore(t.TempDir())

	err := store.MoveToTrash("proj", "nope")
	require.Error(t, err)
	assert.True(t, serrors.Is(err, serrors.KindNotFound))
}

func TestMoveToTrashRefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	writeSession(t, root, "proj", "id", userLine("live"))
	writeSessionIn(t, filepath.Join(root, trashDirName), "proj", "id", userLine("old"))

	err := NewStore(root).MoveToTrash("proj", "id")
	require.Error(t, err)
	assert.True(t, serrors.Is(err, serrors.KindInvalid))
	assert.FileExists(t, filepath.Join(root, projectsDirName, "proj", "id.jsonl"))
}

func TestMoveToTrashRejectsBadNames(t *testing.T) {
	store := NewStore(t.TempDir())

	for _, tc := range []struct{ project, id string }{
		{"", "id"},
		{"proj", ""},
		{"..", "id"},
		{"proj", "../escape"},
		{`a\b`, "id"},
	} {
		err := store.MoveToTrash(tc.project, tc.id)
		require.Error(t, err, "%q/%q", tc.project, tc.id)
		assert.True(t, serrors.Is(err, serrors.KindInvalid), "%q/%q", tc.project, tc.id)
	}
}

func TestDelete(t *testing.T) {
	root := t.TempDir()
	writeSessionIn(t, filepath.Join(root, trashDirName), "proj", "id", userLine("x"))
	store := NewStore(root)

	trashed, err := store.LoadTrash()
	require.NoError(t, err)
	require.Len(t, trashed, 1)

	require.NoError(t, store.Delete(trashed[0]))
	assert.NoFileExists(t, trashed[0].FilePath)

	err = store.Delete(trashed[0])
	assert.True(t, serrors.Is(err, serrors.KindNotFound))

	err = store.Delete(Session{ID: "x"})
	assert.True(t, serrors.Is(err, serrors.KindInvalid))
}

func TestEmptyTrash(t *testing.T) {
	root := t.TempDir()
	writeSessionIn(t, filepath.Join(root, trashDirName), "a", "1", userLine("x"))
	writeSessionIn(t, filepath.Join(root, trashDirName), "b", "2", userLine("y"))
	writeSession(t, root, "a", "3", userLine("z"))
	store := NewStore(root)

	require.NoError(t, store.EmptyTrash())
	assert.NoDirExists(t, store.TrashDir())

	trashed, err := store.LoadTrash()
	require.NoError(t, err)
	assert.Empty(t, trashed)

	live, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, live, 1)

	// nothing left to remove
	require.NoError(t, store.EmptyTrash())
}
