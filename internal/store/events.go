package store

import (
	"strings"
	"time"
)

// CreateEvent prepends a new event. Empty title or zero time is a silent
// no-op. podID may be empty for a community-wide event; an unknown podID is
// kept as given (the directory may fill in later via import).
func (s *Store) CreateEvent(title string, when time.Time, podID string) (Event, bool, error) {
	title = strings.TrimSpace(title)

	var created Event
	ok := false
	err := s.update(func(st *state) []string {
		if title == "" || when.IsZero() {
			return nil
		}
		event := Event{
			ID:    s.newID(),
			Title: title,
			At:    when,
			Host:  st.displayName(),
			Pod:   strings.TrimSpace(podID),
			RSVPs: []string{},
		}
		st.Events = append([]Event{event}, st.Events...)
		created = event
		created.RSVPs = cloneStrings(created.RSVPs)
		ok = true
		return []string{SliceEvents}
	})
	return created, ok, err
}

// RSVP adds (going=true) or removes (going=false) the current user on the
// event's rsvp set. The set never holds duplicates.
func (s *Store) RSVP(eventID string, going bool) (bool, error) {
	ok := false
	err := s.update(func(st *state) []string {
		me := st.userID()
		if me == "" {
			return nil
		}
		for i := range st.Events {
			if st.Events[i].ID != eventID {
				continue
			}
			if going {
				st.Events[i].RSVPs = dedupe(append(st.Events[i].RSVPs, me))
			} else {
				st.Events[i].RSVPs = remove(st.Events[i].RSVPs, me)
			}
			ok = true
			return []string{SliceEvents}
		}
		return nil
	})
	return ok, err
}

// FindEvent returns the event with the given id.
func (s *Store) FindEvent(eventID string) (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.st.Events {
		if e.ID == eventID {
			e.RSVPs = cloneStrings(e.RSVPs)
			return e, true
		}
	}
	return Event{}, false
}
