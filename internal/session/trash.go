package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

// MoveToTrash moves <projects>/<project>/<id>.jsonl to the same place under
// the trash tree. Callers drop the session from their own lists on success.
func (s *Store) MoveToTrash(project, id string) error {
	const op serrors.Op = "session.MoveToTrash"
	return s.relocate(op, s.projectsDir, s.trashDir, project, id)
}

// Restore moves a trashed session back into the live tree under the same
// project and ID.
func (s *Store) Restore(sess Session) error {
	const op serrors.Op = "session.Restore"
	return s.relocate(op, s.trashDir, s.projectsDir, sess.ProjectName, sess.ID)
}

// Delete removes the session's backing file for good.
func (s *Store) Delete(sess Session) error {
	const op serrors.Op = "session.Delete"
	if sess.FilePath == "" {
		return serrors.E(op, serrors.KindInvalid, "session "+sess.ID+" has no backing file")
	}
	if err := os.Remove(sess.FilePath); err != nil {
		return serrors.FS(op, sess.FilePath, err)
	}
	s.log.Info("deleted session", zap.String("project", sess.ProjectName), zap.String("id", sess.ID))
	return nil
}

// EmptyTrash removes the whole trash tree. Whatever could not be removed
// stays on disk and the first failure is returned.
func (s *Store) EmptyTrash() error {
	const op serrors.Op = "session.EmptyTrash"
	if err := os.RemoveAll(s.trashDir); err != nil {
		return serrors.FS(op, s.trashDir, err)
	}
	s.log.Info("emptied trash", zap.String("dir", s.trashDir))
	return nil
}

func (s *Store) relocate(op serrors.Op, fromRoot, toRoot, project, id string) error {
	if err := validateName(project); err != nil {
		return serrors.E(op, serrors.KindInvalid, "project", err)
	}
	if err := validateName(id); err != nil {
		return serrors.E(op, serrors.KindInvalid, "id", err)
	}

	src := filepath.Join(fromRoot, project, id+sessionExt)
	dstDir := filepath.Join(toRoot, project)
	dst := filepath.Join(dstDir, id+sessionExt)

	if _, err := os.Stat(src); err != nil {
		return serrors.FS(op, src, err)
	}
	if _, err := os.Stat(dst); err == nil {
		return serrors.E(op, serrors.KindInvalid, dst+" already exists")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return serrors.FS(op, dst, err)
	}

	if err := os.MkdirAll(dstDir, 0755); err != nil {
		return serrors.FS(op, dstDir, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return serrors.FS(op, src, err)
	}

	s.log.Info("moved session",
		zap.String("op", string(op)),
		zap.String("from", src),
		zap.String("to", dst))
	return nil
}

// validateName rejects project or ID values that would escape their directory.
func validateName(name string) error {
	switch {
	case name == "":
		return errors.New("must not be empty")
	case name == "." || name == "..":
		return errors.New("must not be a relative directory")
	case strings.ContainsAny(name, `/\`):
		return errors.New("must not contain path separators")
	}
	return nil
}
