package store

import "strings"

// JournalDraft is the input for a new journal entry.
type JournalDraft struct {
	Date          string `json:"date"`
	Mood          string `json:"mood"`
	Note          string `json:"note"`
	Insight       string `json:"insight"`
	SharedSummary bool   `json:"sharedSummary"`
}

// AddJournalEntry prepends a new entry. An entry with neither note nor
// insight is a silent no-op. Entries are private unless SharedSummary is
// explicitly set.
func (s *Store) AddJournalEntry(draft JournalDraft) (JournalEntry, bool, error) {
	note := strings.TrimSpace(draft.Note)
	insight := strings.TrimSpace(draft.Insight)

	var created JournalEntry
	ok := false
	err := s.update(func(st *state) []string {
		if note == "" && insight == "" {
			return nil
		}
		date := strings.TrimSpace(draft.Date)
		if date == "" {
			date = dayOf(s.clock.Now())
		}
		entry := JournalEntry{
			ID:            s.newID(),
			Date:          date,
			Mood:          strings.TrimSpace(draft.Mood),
			Note:          note,
			Insight:       insight,
			SharedSummary: draft.SharedSummary,
		}
		st.Journal = append([]JournalEntry{entry}, st.Journal...)
		created = entry
		ok = true
		return []string{SliceJournal}
	})
	return created, ok, err
}

// DeleteJournalEntry removes the entry with the given id.
func (s *Store) DeleteJournalEntry(id string) (bool, error) {
	ok := false
	err := s.update(func(st *state) []string {
		kept := st.Journal[:0]
		for _, e := range st.Journal {
			if e.ID == id {
				ok = true
				continue
			}
			kept = append(kept, e)
		}
		if !ok {
			return nil
		}
		st.Journal = kept
		return []string{SliceJournal}
	})
	return ok, err
}
