package session

import (
	"io"
	"os"
	"strings"

	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

// Rename appends a custom-title entry to the session file. The loaded Session
// is not touched; the new title shows up on the next load.
func (s *Store) Rename(sess Session, title string) error {
	const op serrors.Op = "session.Rename"

	title = strings.TrimSpace(title)
	if title == "" {
		return serrors.E(op, serrors.KindInvalid, "title must not be empty")
	}
	if sess.FilePath == "" {
		return serrors.E(op, serrors.KindInvalid, "session "+sess.ID+" has no backing file")
	}

	line, err := titleLine(sess.ID, title)
	if err != nil {
		return serrors.E(op, serrors.KindInvalid, err)
	}

	f, err := os.OpenFile(sess.FilePath, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return serrors.FS(op, sess.FilePath, err)
	}
	defer f.Close()

	prefix, err := needsNewline(f)
	if err != nil {
		return serrors.FS(op, sess.FilePath, err)
	}
	if _, err := f.WriteString(prefix + line + "\n"); err != nil {
		return serrors.FS(op, sess.FilePath, err)
	}

	s.log.Info("renamed session", zap.String("id", sess.ID), zap.String("title", title))
	return nil
}

func titleLine(id, title string) (string, error) {
	line, err := sjson.Set(`{}`, "type", entryCustomTitle)
	if err != nil {
		return "", err
	}
	if line, err = sjson.Set(line, "customTitle", title); err != nil {
		return "", err
	}
	return sjson.Set(line, "sessionId", id)
}

// needsNewline returns "\n" when the file has content that does not end in
// a newline, so the appended entry starts on its own line.
func needsNewline(f *os.File) (string, error) {
	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.Size() == 0 {
		return "", nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil && err != io.EOF {
		return "", err
	}
	if last[0] == '\n' {
		return "", nil
	}
	return "\n", nil
}
