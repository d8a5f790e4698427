// Package store holds the canonical application state: named slices, a
// fixed set of named actions that validate input, compute the next state,
// persist it and notify subscribers, all within one synchronous call.
//
// Every mutation funnels through an action; consumers only ever see copies
// of slice state. Actions are serialized by the store's mutex, so one action
// always completes before the next observes anything.
package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peerlearn/peerlearn-backend/internal/storage"
)

// Clock supplies the current time. Injected so tests can drive calendar
// days and code expiry deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Subscriber receives the slice key and the freshly persisted JSON value of
// that slice after every mutation. Called synchronously inside the action,
// after the write to the backend; it must not call back into store actions.
type Subscriber func(slice string, data json.RawMessage)

type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	clock   Clock
	newID   func() string
	devCode string

	st state

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int
}

type Option func(*Store)

// WithClock replaces the wall clock (tests).
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithIDGenerator replaces the id generator (tests).
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// WithDevCode makes every verification code the given fixed value instead
// of a random one. Development and tests only.
func WithDevCode(code string) Option {
	return func(s *Store) { s.devCode = code }
}

// New builds a store backed by b, seeding every slice from its persisted
// value. A missing or unparsable document falls back to that slice's
// documented default.
func New(b storage.Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		clock:   systemClock{},
		newID:   uuid.NewString,
		subs:    make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// Subscribe registers fn for slice updates and returns its unsubscribe.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

/* ------------------------------- loading ------------------------------- */

func (s *Store) load() {
	s.st = defaultState(s.clock.Now())
	loadSlice(s.backend, SliceAuth, &s.st.Auth)
	loadSlice(s.backend, SliceProfile, &s.st.Profile)
	loadSlice(s.backend, SliceOTP, &s.st.OTP)
	loadSlice(s.backend, SliceAnalytics, &s.st.Analytics)
	loadSlice(s.backend, SlicePods, &s.st.Pods)
	loadSlice(s.backend, SliceEvents, &s.st.Events)
	loadSlice(s.backend, SliceJournal, &s.st.Journal)
	loadSlice(s.backend, SliceTownhall, &s.st.Townhall)
	loadSlice(s.backend, SliceMatches, &s.st.Matches)
	s.st.normalize()
}

// loadSlice replaces *dest with the persisted document for key. A read
// error, missing key or parse failure leaves the default in place.
func loadSlice[T any](b storage.Backend, key string, dest *T) {
	raw, ok, err := b.Get(key)
	if err != nil || !ok {
		return
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return
	}
	*dest = v
}

// normalize coerces persisted data back into shape: nil collections become
// empty, out-of-range values snap to their documented bounds. Persisted
// documents are not trusted as-is.
func (st *state) normalize() {
	if st.Profile.Tags == nil {
		st.Profile.Tags = []string{}
	}
	if st.Profile.Goals == nil {
		st.Profile.Goals = []string{}
	}
	if st.Profile.Skills == nil {
		st.Profile.Skills = []string{}
	}
	if st.Profile.LinkedIn.Skills == nil {
		st.Profile.LinkedIn.Skills = []string{}
	}
	if st.Profile.LinkedIn.Visible == nil {
		st.Profile.LinkedIn.Visible = map[string]bool{}
	}
	if !validTheme(st.Profile.Theme) {
		st.Profile.Theme = "dark"
	}
	if st.OTP.AttemptsLeft < 0 {
		st.OTP.AttemptsLeft = 0
	}
	if st.Analytics.Streak < 0 {
		st.Analytics.Streak = 0
	}
	if st.Pods.All == nil {
		st.Pods.All = []Pod{}
	}
	if st.Pods.Joined == nil {
		st.Pods.Joined = []string{}
	}
	for i := range st.Pods.All {
		p := &st.Pods.All[i]
		if p.Rules == nil {
			p.Rules = []string{}
		}
		if p.Members == nil {
			p.Members = []string{}
		}
		if p.Feed == nil {
			p.Feed = []Post{}
		}
		p.Members = dedupe(p.Members)
	}
	if st.Events == nil {
		st.Events = []Event{}
	}
	for i := range st.Events {
		if st.Events[i].RSVPs == nil {
			st.Events[i].RSVPs = []string{}
		}
		st.Events[i].RSVPs = dedupe(st.Events[i].RSVPs)
	}
	if st.Journal == nil {
		st.Journal = []JournalEntry{}
	}
	if st.Townhall == nil {
		st.Townhall = []Post{}
	}
	if st.Matches.Suggested == nil {
		st.Matches.Suggested = []Suggestion{}
	}
	if st.Matches.Crews == nil {
		st.Matches.Crews = []Candidate{}
	}
}

func validTheme(theme string) bool {
	for _, t := range ValidThemes {
		if t == theme {
			return true
		}
	}
	return false
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

/* ------------------------- mutation plumbing --------------------------- */

// update runs fn under the store lock, persists the slices it reports as
// changed, then notifies subscribers with the persisted payloads. The
// persist happens before any subscriber can observe the new state, so
// persisted and observable state never diverge. fn returning no changed
// slices is the validation no-op path.
func (s *Store) update(fn func(st *state) []string) error {
	s.mu.Lock()
	changed := fn(&s.st)
	if len(changed) == 0 {
		s.mu.Unlock()
		return nil
	}
	payloads := make([]json.RawMessage, 0, len(changed))
	for _, key := range changed {
		raw, err := s.st.marshalSlice(key)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		if err := s.backend.Set(key, string(raw)); err != nil {
			s.mu.Unlock()
			return err
		}
		payloads = append(payloads, raw)
	}
	s.mu.Unlock()

	for i, key := range changed {
		s.publish(key, payloads[i])
	}
	return nil
}

func (s *Store) publish(slice string, data json.RawMessage) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(slice, data)
	}
}

func (st *state) marshalSlice(key string) (json.RawMessage, error) {
	var v interface{}
	switch key {
	case SliceAuth:
		v = st.Auth
	case SliceProfile:
		v = st.Profile
	case SliceOTP:
		v = st.OTP
	case SliceAnalytics:
		v = st.Analytics
	case SlicePods:
		v = st.Pods
	case SliceEvents:
		v = st.Events
	case SliceJournal:
		v = st.Journal
	case SliceTownhall:
		v = st.Townhall
	case SliceMatches:
		v = st.Matches
	default:
		return nil, errUnknownSlice(key)
	}
	return json.Marshal(v)
}

type errUnknownSlice string

func (e errUnknownSlice) Error() string { return "unknown slice: " + string(e) }

// userID returns the authenticated user id, or "" when signed out.
// Caller must hold s.mu.
func (st *state) userID() string {
	if !st.Auth.Authed {
		return ""
	}
	return st.Auth.UserID
}

// displayName is the poster name used on feeds.
func (st *state) displayName() string {
	if st.userID() == "" {
		return "Anon"
	}
	if st.Profile.Name != "" {
		return st.Profile.Name
	}
	return "You"
}

/* ------------------------------- reads --------------------------------- */

func (s *Store) Auth() Auth {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Auth
}

func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneProfile(s.st.Profile)
}

// VerificationStatus reports the pending code request without the hash, for
// resend-countdown UIs.
func (s *Store) VerificationStatus() OTP {
	s.mu.Lock()
	defer s.mu.Unlock()
	otp := s.st.OTP
	otp.CodeHash = ""
	return otp
}

func (s *Store) Analytics() Analytics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Analytics
}

func (s *Store) Pods() Pods {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePods(s.st.Pods)
}

func (s *Store) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneEvents(s.st.Events)
}

func (s *Store) Journal() []JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]JournalEntry(nil), s.st.Journal...)
}

func (s *Store) Townhall() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.st.Townhall...)
}

func (s *Store) Matches() Matches {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneMatches(s.st.Matches)
}
