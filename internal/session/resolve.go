package session

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// ResolvePath maps a project slug back to the directory it was derived from
// by walking the live filesystem. Separators (and with some producers, dots)
// were flattened to hyphens, so at every level the longest run of tokens that
// names an existing child directory wins.
//
// Resolution is best-effort: siblings such as "a" and "a-b" under one parent
// can make a slug ambiguous, and the greedy walk does not backtrack. A miss
// returns ok == false and callers fall back to the slug itself.
func ResolvePath(slug string) (string, bool) {
	root, tokens, ok := splitSlug(slug, runtime.GOOS)
	if !ok {
		return "", false
	}
	return walkTokens(root, tokens)
}

// splitSlug returns the directory the walk starts from and the tokens left
// to consume.
func splitSlug(slug, goos string) (string, []string, bool) {
	rest := strings.TrimPrefix(slug, "-")
	if rest == "" {
		return "", nil, false
	}
	tokens := strings.Split(rest, "-")

	if goos == "windows" {
		drive, ok := driveRoot(tokens)
		if !ok || len(tokens) < 3 || tokens[2] == "" {
			return "", nil, false
		}
		return drive, tokens[2:], true
	}
	return string(filepath.Separator), tokens, true
}

// driveRoot recognizes the "<letter>--" prefix that "C:\" flattens to.
func driveRoot(tokens []string) (string, bool) {
	if len(tokens) < 2 || tokens[1] != "" {
		return "", false
	}
	letter := []rune(tokens[0])
	if len(letter) != 1 || !unicode.IsLetter(letter[0]) {
		return "", false
	}
	return strings.ToUpper(tokens[0]) + `:\`, true
}

func walkTokens(dir string, tokens []string) (string, bool) {
	cur := dir
	for i := 0; i < len(tokens); {
		entries, err := os.ReadDir(cur)
		if err != nil {
			return "", false
		}

		next := -1
		for j := len(tokens); j > i; j-- {
			if name, ok := matchChild(cur, entries, strings.Join(tokens[i:j], "-")); ok {
				cur = filepath.Join(cur, name)
				next = j
				break
			}
		}
		if next < 0 {
			return "", false
		}
		i = next
	}
	return cur, true
}

// matchChild looks for a directory named candidate, falling back to one whose
// dots read as hyphens.
func matchChild(parent string, entries []os.DirEntry, candidate string) (string, bool) {
	for _, e := range entries {
		if e.Name() == candidate && isDirOrSymlink(e, parent) {
			return e.Name(), true
		}
	}
	for _, e := range entries {
		if !strings.Contains(e.Name(), ".") {
			continue
		}
		if strings.ReplaceAll(e.Name(), ".", "-") == candidate && isDirOrSymlink(e, parent) {
			return e.Name(), true
		}
	}
	return "", false
}

// isDirOrSymlink reports whether the entry is a directory or a symlink that
// resolves to one.
func isDirOrSymlink(entry os.DirEntry, parentDir string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(filepath.Join(parentDir, entry.Name()))
	return err == nil && fi.IsDir()
}
