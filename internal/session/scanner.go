package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	serrors "github.com/jh3/agent-session-manager/internal/errors"
)

const (
	projectsDirName = "projects"
	trashDirName    = "trash"
	sessionExt      = ".jsonl"
)

// Store finds, parses and relocates sessions under one data root. It keeps no
// sessions in memory: every Load reads the filesystem again.
type Store struct {
	projectsDir string
	trashDir    string
	log         *zap.Logger
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger used for skipped files and trash operations
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// NewStore creates a store for <root>/projects and <root>/trash
func NewStore(root string, opts ...Option) *Store {
	s := &Store{
		projectsDir: filepath.Join(root, projectsDirName),
		trashDir:    filepath.Join(root, trashDirName),
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("session")
	return s
}

// ProjectsDir returns the live session tree
func (s *Store) ProjectsDir() string { return s.projectsDir }

// TrashDir returns the soft-deleted session tree
func (s *Store) TrashDir() string { return s.trashDir }

// Load scans all live sessions one file at a time, newest first.
func (s *Store) Load() ([]Session, error) {
	return s.loadSequential(s.projectsDir)
}

// LoadTrash scans all trashed sessions, newest first.
func (s *Store) LoadTrash() ([]Session, error) {
	return s.loadSequential(s.trashDir)
}

// LoadWithProgress scans all live sessions with one goroutine per file.
// progress is called once, with (total, total), after every worker is done.
func (s *Store) LoadWithProgress(progress func(done, total int)) ([]Session, error) {
	start := time.Now()
	files, err := s.findSessionFiles(s.projectsDir)
	if err != nil {
		return nil, err
	}

	sessions := s.parseFilesParallel(files)
	if progress != nil {
		progress(len(files), len(files))
	}

	s.log.Debug("loaded sessions",
		zap.Int("files", len(files)),
		zap.Int("sessions", len(sessions)),
		zap.Duration("took", time.Since(start)))
	return sessions, nil
}

// sessionFile is a discovered JSONL file with its project already resolved
type sessionFile struct {
	path        string
	slug        string
	projectPath string
}

func (s *Store) loadSequential(dir string) ([]Session, error) {
	files, err := s.findSessionFiles(dir)
	if err != nil {
		return nil, err
	}

	sessions := make([]Session, 0, len(files))
	for _, f := range files {
		sess, err := parseSessionFile(f)
		if err != nil {
			s.log.Debug("skipping session file", zap.String("path", f.path), zap.Error(err))
			continue
		}
		sessions = append(sessions, sess)
	}

	sortNewestFirst(sessions)
	return sessions, nil
}

// findSessionFiles lists <dir>/<slug>/*.jsonl in lexical order. Only the
// root itself failing to open is an error; a missing root is empty.
func (s *Store) findSessionFiles(dir string) ([]sessionFile, error) {
	projects, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, serrors.FS("session.Load", dir, err)
	}

	var files []sessionFile
	for _, proj := range projects {
		if !isDirOrSymlink(proj, dir) {
			continue
		}
		projDir := filepath.Join(dir, proj.Name())
		// only reachable if the trash tree is ever nested under projects
		if filepath.Clean(projDir) == filepath.Clean(s.trashDir) {
			continue
		}

		entries, err := os.ReadDir(projDir)
		if err != nil {
			s.log.Debug("skipping project dir", zap.String("dir", projDir), zap.Error(err))
			continue
		}

		projectPath := proj.Name()
		if resolved, ok := ResolvePath(proj.Name()); ok {
			projectPath = resolved
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), sessionExt) {
				continue
			}
			files = append(files, sessionFile{
				path:        filepath.Join(projDir, e.Name()),
				slug:        proj.Name(),
				projectPath: projectPath,
			})
		}
	}

	return files, nil
}

// parseFilesParallel parses each file on its own goroutine. Workers write only
// their own slot, so discovery order survives for the stable sort.
func (s *Store) parseFilesParallel(files []sessionFile) []Session {
	results := make([]*Session, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f sessionFile) {
			defer wg.Done()
			sess, err := parseSessionFile(f)
			if err != nil {
				s.log.Debug("skipping session file", zap.String("path", f.path), zap.Error(err))
				return
			}
			results[i] = &sess
		}(i, f)
	}
	wg.Wait()

	return collectResults(results)
}

func collectResults(results []*Session) []Session {
	sessions := make([]Session, 0, len(results))
	for _, sess := range results {
		if sess != nil {
			sessions = append(sessions, *sess)
		}
	}
	sortNewestFirst(sessions)
	return sessions
}

func parseSessionFile(f sessionFile) (Session, error) {
	sess, err := parseFile(f.path, f.slug)
	if err != nil {
		return Session{}, err
	}
	sess.ProjectPath = f.projectPath
	return sess, nil
}

func sortNewestFirst(sessions []Session) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
}
