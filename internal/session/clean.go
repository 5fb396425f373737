package session

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var (
	caveatRe  = regexp.MustCompile(`(?s)<local-command-caveat>.*?</local-command-caveat>\n?`)
	taskRe    = regexp.MustCompile(`(?s)<task-notification>(.*?)</task-notification>`)
	commandRe = regexp.MustCompile(`(?s)<command-name>(.*?)</command-name>.*?<command-args>(.*?)</command-args>`)
	stdoutRe  = regexp.MustCompile(`(?s)<local-command-stdout>(.*?)</local-command-stdout>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	// color codes whose ESC byte was lost on the way into the log
	orphanSGRRe = regexp.MustCompile(`\[[0-9;]*m`)
	blankRe     = regexp.MustCompile(`\n{3,}`)
)

// CleanContent turns raw message text into display text. The steps run in a
// fixed order: later patterns assume the earlier tags are already gone.
func CleanContent(content string) string {
	text := caveatRe.ReplaceAllString(content, "")

	text = taskRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := taskRe.FindStringSubmatch(m)[1]
		status := innerTag(inner, "status")
		summary := innerTag(inner, "summary")
		return "> **[Task " + status + "]** " + summary
	})

	text = commandRe.ReplaceAllStringFunc(text, func(m string) string {
		sub := commandRe.FindStringSubmatch(m)
		name := strings.TrimSpace(sub[1])
		args := strings.TrimSpace(sub[2])
		if args == "" {
			return "`" + name + "`"
		}
		return "`" + name + " " + args + "`"
	})

	text = stdoutRe.ReplaceAllStringFunc(text, func(m string) string {
		inner := strings.TrimSpace(stripEscapes(stdoutRe.FindStringSubmatch(m)[1]))
		if inner == "" {
			return ""
		}
		return "\n```\n" + inner + "\n```\n"
	})

	text = tagRe.ReplaceAllString(text, "")
	text = stripEscapes(text)
	text = blankRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

// IsNoise reports whether cleaned text carries no conversation: a single
// back-ticked slash command or a lone fenced block of tool output.
func IsNoise(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}

	if len(t) > 2 && strings.HasPrefix(t, "`") && strings.HasSuffix(t, "`") &&
		strings.Count(t, "`") == 2 {
		inner := t[1 : len(t)-1]
		if strings.HasPrefix(inner, "/") && !strings.Contains(inner, "\n") {
			return true
		}
	}

	if len(t) > 6 && strings.HasPrefix(t, "```") && strings.HasSuffix(t, "```") &&
		strings.Count(t, "```") == 2 {
		return true
	}

	return false
}

func stripEscapes(s string) string {
	return orphanSGRRe.ReplaceAllString(ansi.Strip(s), "")
}

// innerTag returns the trimmed text between <tag> and </tag>, or "?".
func innerTag(text, tag string) string {
	open := "<" + tag + ">"
	start := strings.Index(text, open)
	if start < 0 {
		return "?"
	}
	start += len(open)
	end := strings.Index(text[start:], "</"+tag+">")
	if end < 0 {
		return "?"
	}
	return strings.TrimSpace(text[start : start+end])
}
