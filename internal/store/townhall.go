package store

import "strings"

// Shout prepends a message to the townhall feed. Empty messages are a
// silent no-op.
func (s *Store) Shout(msg string) (Post, bool, error) {
	msg = strings.TrimSpace(msg)

	var created Post
	ok := false
	err := s.update(func(st *state) []string {
		if msg == "" {
			return nil
		}
		post := Post{
			ID:     s.newID(),
			Author: st.displayName(),
			Text:   msg,
			At:     s.clock.Now(),
		}
		st.Townhall = append([]Post{post}, st.Townhall...)
		created = post
		ok = true
		return []string{SliceTownhall}
	})
	return created, ok, err
}
