package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindUnknown, "unknown error"},
		{KindNotFound, "not found"},
		{KindInvalid, "invalid"},
		{KindPermission, "permission denied"},
		{KindIO, "I/O error"},
		{KindConfig, "configuration error"},
		{Kind(999), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.String())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name:     "with op and context",
			err:      &Error{Op: "session.Restore", Context: "proj/abc", Err: errors.New("boom")},
			expected: "session.Restore: proj/abc: boom",
		},
		{
			name:     "with op only",
			err:      &Error{Op: "session.Restore", Err: errors.New("boom")},
			expected: "session.Restore: boom",
		},
		{
			name:     "without op",
			err:      &Error{Err: errors.New("boom")},
			expected: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestE_ContextOnlyBecomesError(t *testing.T) {
	err := E(Op("session.Rename"), KindInvalid, "title is empty")
	assert.Equal(t, "session.Rename: title is empty", err.Error())
	assert.True(t, Is(err, KindInvalid))
}

func TestFS_DerivesKind(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	require.Error(t, statErr)

	err := FS("session.MoveToTrash", "proj/id", statErr)
	assert.Equal(t, KindNotFound, GetKind(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	assert.Equal(t, KindPermission, KindOf(fs.ErrPermission))
	assert.Equal(t, KindIO, KindOf(errors.New("disk on fire")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestGetKind_Wrapped(t *testing.T) {
	inner := E(Op("session.EmptyTrash"), KindPermission, errors.New("denied"))
	wrapped := fmt.Errorf("cli: %w", inner)
	assert.Equal(t, KindPermission, GetKind(wrapped))
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
	assert.False(t, Is(errors.New("plain"), KindIO))
}
