package store

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

func dayOf(t time.Time) string { return t.Format(dayLayout) }

func isoWeekOf(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// isNextDay reports whether cur is exactly one calendar day after prev.
func isNextDay(prev, cur string) bool {
	p, err := time.Parse(dayLayout, prev)
	if err != nil {
		return false
	}
	return dayOf(p.AddDate(0, 0, 1)) == cur
}

// MarkActive records a qualifying activity for today and returns the
// updated analytics. Same-day repeats leave the streak unchanged;
// consecutive days increment it; a gap resets it to 1 unless an armed,
// unused-this-week freeze bridges the gap, in which case the streak
// increments and the freeze is consumed.
func (s *Store) MarkActive() (Analytics, error) {
	var out Analytics
	err := s.update(func(st *state) []string {
		now := s.clock.Now()
		today := dayOf(now)
		a := st.Analytics
		out = a
		if a.LastActiveDay == today {
			return nil
		}

		switch {
		case a.LastActiveDay == "":
			a.Streak = 1
		case isNextDay(a.LastActiveDay, today):
			a.Streak++
		case a.FreezeArmed && a.FreezeUsedWeek != isoWeekOf(now):
			a.Streak++
			a.FreezeArmed = false
			a.Frozen = false
			a.FreezeUsedWeek = isoWeekOf(now)
		default:
			a.Streak = 1
		}
		a.LastActiveDay = today
		st.Analytics = a
		out = a
		return []string{SliceAnalytics}
	})
	return out, err
}

// ToggleFreeze arms or disarms the streak freeze. Consumption only happens
// inside MarkActive; arming is refused during a week the freeze was already
// consumed in.
func (s *Store) ToggleFreeze() (Analytics, error) {
	var out Analytics
	err := s.update(func(st *state) []string {
		a := st.Analytics
		out = a
		if !a.FreezeArmed && a.FreezeUsedWeek == isoWeekOf(s.clock.Now()) {
			return nil
		}
		a.FreezeArmed = !a.FreezeArmed
		a.Frozen = a.FreezeArmed
		st.Analytics = a
		out = a
		return []string{SliceAnalytics}
	})
	return out, err
}
