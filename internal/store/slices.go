package store

import "time"

// Slice keys. One persisted document per key; also the top-level keys of an
// exported snapshot.
const (
	SliceAuth      = "auth"
	SliceProfile   = "profile"
	SliceOTP       = "otp"
	SliceAnalytics = "analytics"
	SlicePods      = "pods"
	SliceEvents    = "events"
	SliceJournal   = "journal"
	SliceTownhall  = "townhall"
	SliceMatches   = "matches"
)

// SliceNames lists every slice key in a fixed order.
func SliceNames() []string {
	return []string{
		SliceAuth, SliceProfile, SliceOTP, SliceAnalytics, SlicePods,
		SliceEvents, SliceJournal, SliceTownhall, SliceMatches,
	}
}

// Themes the profile accepts.
var ValidThemes = []string{"dark", "light", "gradient", "cosmos"}

// Post types for pod feeds.
const (
	PostTypePledge       = "pledge"
	PostTypeProof        = "proof"
	PostTypeAnnouncement = "announcement"
)

// Auth is the session slice. UserID is set iff Authed is true.
type Auth struct {
	Authed bool   `json:"authed"`
	UserID string `json:"userId,omitempty"`
}

// OTP holds the pending one-time code request. The code itself is stored
// only as a bcrypt hash so a leaked snapshot does not leak a live code.
type OTP struct {
	Email        string `json:"email"`
	CodeHash     string `json:"codeHash"`
	ExpiresAt    int64  `json:"expiresAt"` // epoch ms
	AttemptsLeft int    `json:"attemptsLeft"`
	ResendAt     int64  `json:"resendAt"` // epoch ms
}

// LinkedIn is the optional profile snapshot with per-surface visibility.
type LinkedIn struct {
	URL      string          `json:"url"`
	Headline string          `json:"headline"`
	Skills   []string        `json:"skills"`
	Visible  map[string]bool `json:"visible"`
}

// Privacy holds the profile's privacy flags.
type Privacy struct {
	JournalsPrivate bool `json:"journalsPrivate"`
	AllowAnon       bool `json:"allowAnon"`
}

type Profile struct {
	Name         string   `json:"name"`
	Headline     string   `json:"headline"`
	Bio          string   `json:"bio"`
	Email        string   `json:"email"`
	College      string   `json:"college"`
	GradYear     string   `json:"gradYear"`
	Tags         []string `json:"tags"`
	Goals        []string `json:"goals"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
	Theme        string   `json:"theme"`
	Onboarded    bool     `json:"onboarded"`
	LinkedIn     LinkedIn `json:"linkedin"`
	Privacy      Privacy  `json:"privacy"`
}

// Analytics is the streak slice. FreezeUsedWeek records the ISO week
// ("2026-W35") a freeze was last consumed; arming is refused in that week.
type Analytics struct {
	Streak         int    `json:"streak"`
	LastActiveDay  string `json:"lastActiveDay"` // YYYY-MM-DD, "" before first activity
	Frozen         bool   `json:"frozen"`
	FreezeArmed    bool   `json:"freezeArmed"`
	FreezeUsedWeek string `json:"freezeUsedWeek,omitempty"`
}

// Post is a feed entry, immutable once created. Type is empty for townhall
// messages and one of the PostType constants inside pod feeds.
type Post struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Type   string    `json:"type,omitempty"`
	At     time.Time `json:"at"`
}

type Pod struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	About   string   `json:"about"`
	Rules   []string `json:"rules"`
	Members []string `json:"members"`
	Feed    []Post   `json:"feed"`
}

// Pods is the pods slice: the full directory plus the ids the current user
// has joined.
type Pods struct {
	All    []Pod    `json:"all"`
	Joined []string `json:"joined"`
}

type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	At    time.Time `json:"ts"`
	Host  string    `json:"host"`
	Pod   string    `json:"pod,omitempty"`
	RSVPs []string  `json:"rsvps"`
}

type JournalEntry struct {
	ID            string `json:"id"`
	Date          string `json:"date"` // YYYY-MM-DD
	Mood          string `json:"mood"`
	Note          string `json:"note"`
	Insight       string `json:"insight"`
	SharedSummary bool   `json:"sharedSummary"`
}

// Suggestion is a pod the user has not joined, ranked by match score.
type Suggestion struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	PodID string  `json:"podId"`
	Type  string  `json:"type"`
	Score float64 `json:"score"`
}

// Candidate is a peer suggested for a small crew.
type Candidate struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Tags  []string `json:"tags"`
	Score float64  `json:"score"`
}

// Matches is derived state: recomputed on demand, persisted only as a cache.
type Matches struct {
	Suggested []Suggestion `json:"suggested"`
	Crews     []Candidate  `json:"crews"`
}

// state is the full in-memory slice set.
type state struct {
	Auth      Auth
	Profile   Profile
	OTP       OTP
	Analytics Analytics
	Pods      Pods
	Events    []Event
	Journal   []JournalEntry
	Townhall  []Post
	Matches   Matches
}

/* ------------------------------ defaults ------------------------------ */

func defaultAuth() Auth { return Auth{} }

func defaultProfile() Profile {
	return Profile{
		Tags:   []string{},
		Goals:  []string{},
		Skills: []string{},
		Theme:  "dark",
		LinkedIn: LinkedIn{
			Skills:  []string{},
			Visible: map[string]bool{"profile": true, "matching": true},
		},
		Privacy: Privacy{JournalsPrivate: true},
	}
}

func defaultOTP() OTP { return OTP{} }

func defaultAnalytics() Analytics { return Analytics{} }

// defaultPods seeds a non-empty directory so a fresh install has something
// to join and match against.
func defaultPods(now time.Time) Pods {
	return Pods{
		All: []Pod{{
			ID:      "pod-starter",
			Name:    "Starter Pod",
			About:   "A default pod for newcomers",
			Rules:   []string{"Be kind"},
			Members: []string{},
			Feed:    []Post{},
		}},
		Joined: []string{},
	}
}

func defaultEvents(now time.Time) []Event {
	return []Event{{
		ID:    "event-welcome",
		Title: "Welcome Session",
		At:    now.Add(24 * time.Hour),
		Host:  "System",
		Pod:   "pod-starter",
		RSVPs: []string{},
	}}
}

func defaultJournal() []JournalEntry { return []JournalEntry{} }

func defaultTownhall(now time.Time) []Post {
	return []Post{{
		ID:     "townhall-welcome",
		Author: "System",
		Text:   "Welcome to PeerLearn!",
		At:     now,
	}}
}

func defaultMatches() Matches {
	return Matches{Suggested: []Suggestion{}, Crews: []Candidate{}}
}

func defaultState(now time.Time) state {
	return state{
		Auth:      defaultAuth(),
		Profile:   defaultProfile(),
		OTP:       defaultOTP(),
		Analytics: defaultAnalytics(),
		Pods:      defaultPods(now),
		Events:    defaultEvents(now),
		Journal:   defaultJournal(),
		Townhall:  defaultTownhall(now),
		Matches:   defaultMatches(),
	}
}
