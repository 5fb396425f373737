package session

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	entryUser        = "user"
	entryAssistant   = "assistant"
	entryCustomTitle = "custom-title"
)

// ParseFile reads a session file whole and builds its Session. slug is the
// name of the project directory the file lives in; it is also the project
// path when the slug cannot be resolved.
func ParseFile(path, slug string) (Session, error) {
	sess, err := parseFile(path, slug)
	if err != nil {
		return Session{}, err
	}
	if resolved, ok := ResolvePath(slug); ok {
		sess.ProjectPath = resolved
	}
	return sess, nil
}

func parseFile(path, slug string) (Session, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Session{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, err
	}

	sess := Session{
		ID:           strings.TrimSuffix(filepath.Base(path), ".jsonl"),
		ProjectName:  slug,
		ProjectPath:  slug,
		Size:         info.Size(),
		FilePath:     path,
		ModTime:      info.ModTime(),
		UpdatedAt:    formatTime(info.ModTime()),
		TotalEntries: CountEntries(data),
		Messages:     ExtractMessages(data),
		Title:        CustomTitle(data),
	}

	if created, ok := birthTime(path, info); ok {
		sess.CreatedAt = formatTime(created)
	}

	return sess, nil
}

// CountEntries counts every line that is valid JSON, whatever its type.
func CountEntries(content []byte) int {
	n := 0
	eachLine(content, func(line []byte) {
		if gjson.ValidBytes(line) {
			n++
		}
	})
	return n
}

// ExtractMessages returns the cleaned, non-noise user and assistant messages
// in file order.
func ExtractMessages(content []byte) []Message {
	var messages []Message

	eachLine(content, func(line []byte) {
		if !gjson.ValidBytes(line) {
			return
		}
		entry := gjson.ParseBytes(line)

		typ := entry.Get("type")
		if typ.Type != gjson.String || (typ.Str != entryUser && typ.Str != entryAssistant) {
			return
		}

		msg := entry.Get("message")
		if !msg.Exists() {
			return
		}

		text, ok := messageText(msg.Get("content"))
		if !ok {
			return
		}

		text = CleanContent(text)
		if IsNoise(text) {
			return
		}

		role := "unknown"
		if r := msg.Get("role"); r.Type == gjson.String {
			role = r.Str
		}
		messages = append(messages, Message{Role: role, Content: text})
	})

	return messages
}

// messageText flattens message.content, which is either a plain string or an
// array of typed blocks of which only "text" blocks are kept.
func messageText(content gjson.Result) (string, bool) {
	if content.Type == gjson.String {
		return content.Str, true
	}
	if !content.IsArray() {
		return "", false
	}

	var parts []string
	content.ForEach(func(_, block gjson.Result) bool {
		if block.Get("type").String() != "text" {
			return true
		}
		if t := block.Get("text"); t.Type == gjson.String {
			parts = append(parts, t.Str)
		}
		return true
	})
	return strings.Join(parts, "\n"), true
}

// CustomTitle returns the title set by the most recent rename, or "" when the
// session was never renamed. Renames are appended, so the last entry wins.
func CustomTitle(content []byte) string {
	var title string
	eachLine(content, func(line []byte) {
		if !gjson.ValidBytes(line) {
			return
		}
		entry := gjson.ParseBytes(line)
		if entry.Get("type").String() != entryCustomTitle {
			return
		}
		if t := entry.Get("customTitle"); t.Type == gjson.String && t.Str != "" {
			title = t.Str
		}
	})
	return title
}

func eachLine(content []byte, fn func(line []byte)) {
	scanner := bufio.NewScanner(bytes.NewReader(content))
	// the whole file is already in memory, so no line can outgrow it
	scanner.Buffer(make([]byte, 0, 64*1024), len(content)+1)

	for scanner.Scan() {
		fn(scanner.Bytes())
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(time.RFC3339)
}
