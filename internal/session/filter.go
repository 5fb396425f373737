package session

import "strings"

// Filter returns the sessions whose ID, project, title or message text
// contains query, ignoring case. An empty query matches everything.
func Filter(sessions []Session, query string) []Session {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return sessions
	}

	var matched []Session
	for _, s := range sessions {
		if s.matches(q) {
			matched = append(matched, s)
		}
	}
	return matched
}

func (s Session) matches(q string) bool {
	fields := []string{s.ID, s.ProjectName, s.ProjectPath, s.Title}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	for _, m := range s.Messages {
		if strings.Contains(strings.ToLower(m.Content), q) {
			return true
		}
	}
	return false
}

// FindByID returns the session with the given ID, or the only session whose
// ID starts with it.
func FindByID(sessions []Session, id string) (Session, bool) {
	var match Session
	found := 0
	for _, s := range sessions {
		if s.ID == id {
			return s, true
		}
		if id != "" && strings.HasPrefix(s.ID, id) {
			match = s
			found++
		}
	}
	return match, found == 1
}
