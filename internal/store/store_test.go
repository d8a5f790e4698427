package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/peerlearn/peerlearn-backend/internal/storage"
)

// --- test fixtures ---

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var _ Clock = (*fakeClock)(nil)

const testDevCode = "000000"

// baseTime is a Tuesday, safely inside an ISO week.
var baseTime = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%04d", n)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeClock, *storage.Memory) {
	t.Helper()
	clock := &fakeClock{now: baseTime}
	backend := storage.NewMemory()
	s := New(backend,
		WithClock(clock),
		WithIDGenerator(seqIDs()),
		WithDevCode(testDevCode),
	)
	return s, clock, backend
}

func signIn(t *testing.T, s *Store) string {
	t.Helper()
	if ok, err := s.RequestVerificationCode("me@example.edu"); err != nil || !ok {
		t.Fatalf("RequestVerificationCode: ok=%v err=%v", ok, err)
	}
	if ok, err := s.VerifyCode(testDevCode); err != nil || !ok {
		t.Fatalf("VerifyCode: ok=%v err=%v", ok, err)
	}
	return s.Auth().UserID
}

// --- pods ---

func TestJoinPod_Idempotent(t *testing.T) {
	s, _, _ := newTestStore(t)
	me := signIn(t, s)

	for i := 0; i < 2; i++ {
		if ok, err := s.JoinPod("pod-starter"); err != nil || !ok {
			t.Fatalf("JoinPod call %d: ok=%v err=%v", i+1, ok, err)
		}
	}

	pods := s.Pods()
	if got := pods.All[0].Members; len(got) != 1 || got[0] != me {
		t.Errorf("members = %v, want exactly [%s]", got, me)
	}
	if got := pods.Joined; len(got) != 1 || got[0] != "pod-starter" {
		t.Errorf("joined = %v, want exactly [pod-starter]", got)
	}
}

func TestJoinPod_NoOpCases(t *testing.T) {
	s, _, _ := newTestStore(t)

	// Not signed in
	if ok, err := s.JoinPod("pod-starter"); err != nil || ok {
		t.Errorf("JoinPod while signed out: ok=%v err=%v, want no-op", ok, err)
	}

	signIn(t, s)
	// Unknown pod
	if ok, err := s.JoinPod("no-such-pod"); err != nil || ok {
		t.Errorf("JoinPod unknown pod: ok=%v err=%v, want no-op", ok, err)
	}
	if got := len(s.Pods().Joined); got != 0 {
		t.Errorf("joined after no-ops = %d, want 0", got)
	}
}

func TestCreatePod(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, ok, _ := s.CreatePod("Night Owls", ""); ok {
		t.Fatal("CreatePod should refuse without a signed-in user")
	}

	me := signIn(t, s)
	pod, ok, err := s.CreatePod("  Night Owls  ", "late sessions")
	if err != nil || !ok {
		t.Fatalf("CreatePod: ok=%v err=%v", ok, err)
	}
	if pod.Name != "Night Owls" {
		t.Errorf("pod name = %q, want trimmed %q", pod.Name, "Night Owls")
	}
	if len(pod.Members) != 1 || pod.Members[0] != me {
		t.Errorf("creator should be first member, got %v", pod.Members)
	}

	pods := s.Pods()
	if len(pods.All) != 2 {
		t.Fatalf("directory size = %d, want 2", len(pods.All))
	}
	found := false
	for _, id := range pods.Joined {
		if id == pod.ID {
			found = true
		}
	}
	if !found {
		t.Errorf("creator's joined set %v should contain %s", pods.Joined, pod.ID)
	}
}

func TestPostToPod(t *testing.T) {
	s, _, _ := newTestStore(t)
	signIn(t, s)
	if err := s.CompleteOnboarding(OnboardingFields{Name: "Ada"}); err != nil {
		t.Fatal(err)
	}

	// Validation no-ops
	if _, ok, _ := s.PostToPod("pod-starter", PostDraft{Text: "   "}); ok {
		t.Error("whitespace-only text should be a no-op")
	}
	if _, ok, _ := s.PostToPod("no-such-pod", PostDraft{Text: "hello"}); ok {
		t.Error("unknown pod should be a no-op")
	}

	first, ok, err := s.PostToPod("pod-starter", PostDraft{Text: "shipping my pledge", Type: "weird"})
	if err != nil || !ok {
		t.Fatalf("PostToPod: ok=%v err=%v", ok, err)
	}
	if first.Type != PostTypePledge {
		t.Errorf("unknown type should default to pledge, got %q", first.Type)
	}
	if first.Author != "Ada" {
		t.Errorf("author = %q, want profile name", first.Author)
	}

	second, ok, _ := s.PostToPod("pod-starter", PostDraft{Text: "done!", Type: PostTypeProof})
	if !ok || second.Type != PostTypeProof {
		t.Fatalf("proof post: ok=%v type=%q", ok, second.Type)
	}

	feed := s.Pods().All[0].Feed
	if len(feed) != 2 || feed[0].ID != second.ID || feed[1].ID != first.ID {
		t.Errorf("feed should be newest-first, got %v", feed)
	}
}

// --- events ---

func TestCreateEventAndRSVP(t *testing.T) {
	s, clock, _ := newTestStore(t)
	me := signIn(t, s)

	if _, ok, _ := s.CreateEvent("  ", clock.Now(), ""); ok {
		t.Error("empty title should be a no-op")
	}

	event, ok, err := s.CreateEvent("Study Jam", clock.Now().Add(48*time.Hour), "pod-starter")
	if err != nil || !ok {
		t.Fatalf("CreateEvent: ok=%v err=%v", ok, err)
	}

	for i := 0; i < 2; i++ {
		if ok, err := s.RSVP(event.ID, true); err != nil || !ok {
			t.Fatalf("RSVP call %d: ok=%v err=%v", i+1, ok, err)
		}
	}
	got, _ := s.FindEvent(event.ID)
	if len(got.RSVPs) != 1 || got.RSVPs[0] != me {
		t.Errorf("rsvps = %v, want exactly [%s]", got.RSVPs, me)
	}

	if ok, _ := s.RSVP(event.ID, false); !ok {
		t.Fatal("RSVP off should succeed")
	}
	got, _ = s.FindEvent(event.ID)
	if len(got.RSVPs) != 0 {
		t.Errorf("rsvps after toggle off = %v, want empty", got.RSVPs)
	}

	if ok, _ := s.RSVP("no-such-event", true); ok {
		t.Error("unknown event should be a no-op")
	}
}

// --- journal & townhall ---

func TestJournal(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, ok, _ := s.AddJournalEntry(JournalDraft{Mood: "fine"}); ok {
		t.Error("entry without note or insight should be a no-op")
	}

	first, ok, err := s.AddJournalEntry(JournalDraft{Note: "studied joins"})
	if err != nil || !ok {
		t.Fatalf("AddJournalEntry: ok=%v err=%v", ok, err)
	}
	if first.SharedSummary {
		t.Error("sharedSummary should default to false")
	}
	if first.Date != "2026-03-03" {
		t.Errorf("date = %q, want today", first.Date)
	}

	second, _, _ := s.AddJournalEntry(JournalDraft{Insight: "indexes matter", SharedSummary: true})
	entries := s.Journal()
	if len(entries) != 2 || entries[0].ID != second.ID {
		t.Errorf("journal should be newest-first, got %v", entries)
	}
	if !entries[0].SharedSummary {
		t.Error("explicit sharedSummary should stick")
	}

	if ok, _ := s.DeleteJournalEntry("nope"); ok {
		t.Error("deleting unknown entry should report false")
	}
	if ok, _ := s.DeleteJournalEntry(first.ID); !ok {
		t.Fatal("DeleteJournalEntry should succeed")
	}
	if got := len(s.Journal()); got != 1 {
		t.Errorf("journal size after delete = %d, want 1", got)
	}
}

func TestShout(t *testing.T) {
	s, _, _ := newTestStore(t)

	if _, ok, _ := s.Shout("   "); ok {
		t.Error("empty shout should be a no-op")
	}
	post, ok, err := s.Shout("first townhall post")
	if err != nil || !ok {
		t.Fatalf("Shout: ok=%v err=%v", ok, err)
	}
	if post.Author != "Anon" {
		t.Errorf("signed-out author = %q, want Anon", post.Author)
	}
	townhall := s.Townhall()
	if townhall[0].ID != post.ID {
		t.Error("townhall should be newest-first")
	}
}

// --- snapshot ---

func populate(t *testing.T, s *Store) {
	t.Helper()
	signIn(t, s)
	if err := s.CompleteOnboarding(OnboardingFields{
		Name: "Ada", Skills: []string{"sql", "excel"}, Goals: []string{"Analytics"},
	}); err != nil {
		t.Fatal(err)
	}
	s.JoinPod("pod-starter")
	s.PostToPod("pod-starter", PostDraft{Text: "pledging daily practice"})
	s.AddJournalEntry(JournalDraft{Note: "day one"})
	s.Shout("hello everyone")
	s.MarkActive()
	s.ComputeMatches()
}

func TestSnapshotRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)
	populate(t, s)

	exported, err := s.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ImportSnapshot(exported); err != nil {
		t.Fatalf("ImportSnapshot(ExportSnapshot()): %v", err)
	}
	again, err := s.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(exported, again) {
		t.Errorf("snapshot did not round-trip:\nbefore: %s\nafter:  %s", exported, again)
	}
}

func TestSnapshotTransfersBetweenStores(t *testing.T) {
	s1, _, _ := newTestStore(t)
	populate(t, s1)
	exported, err := s1.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	s2, _, _ := newTestStore(t)
	if err := s2.ImportSnapshot(exported); err != nil {
		t.Fatal(err)
	}
	got, err := s2.ExportSnapshot()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(exported, got) {
		t.Error("importing a snapshot into a fresh store should reproduce it exactly")
	}
}

func TestImportSnapshot_MalformedPayload(t *testing.T) {
	s, _, _ := newTestStore(t)
	populate(t, s)
	before, _ := s.ExportSnapshot()

	if err := s.ImportSnapshot([]byte("{not json")); err != ErrBadSnapshot {
		t.Fatalf("err = %v, want ErrBadSnapshot", err)
	}
	after, _ := s.ExportSnapshot()
	if !bytes.Equal(before, after) {
		t.Error("malformed payload must not mutate any state")
	}
}

func TestImportSnapshot_BadSliceAbortsWholesale(t *testing.T) {
	s, _, _ := newTestStore(t)
	populate(t, s)
	before, _ := s.ExportSnapshot()

	// auth is valid, pods is not: nothing may be applied
	payload := []byte(`{"auth":{"authed":false},"pods":"not-an-object"}`)
	if err := s.ImportSnapshot(payload); err != ErrBadSnapshot {
		t.Fatalf("err = %v, want ErrBadSnapshot", err)
	}
	after, _ := s.ExportSnapshot()
	if !bytes.Equal(before, after) {
		t.Error("a bad slice must abort the whole import")
	}
	if !s.Auth().Authed {
		t.Error("auth slice must not be applied from an aborted import")
	}
}

func TestImportSnapshot_IgnoresUnknownKeys(t *testing.T) {
	s, _, _ := newTestStore(t)
	payload := []byte(`{"future_slice":{"x":1},"townhall":[]}`)
	if err := s.ImportSnapshot(payload); err != nil {
		t.Fatalf("unknown keys should be ignored, got %v", err)
	}
	if got := len(s.Townhall()); got != 0 {
		t.Errorf("townhall = %d entries, want 0 after import", got)
	}
}

func TestDeleteAllData(t *testing.T) {
	s, _, backend := newTestStore(t)
	populate(t, s)

	if err := s.DeleteAllData(); err != nil {
		t.Fatal(err)
	}

	if s.Auth().Authed {
		t.Error("auth should reset")
	}
	if got := s.Analytics().Streak; got != 0 {
		t.Errorf("streak = %d, want 0", got)
	}
	if got := len(s.Journal()); got != 0 {
		t.Errorf("journal = %d entries, want 0", got)
	}
	pods := s.Pods()
	if len(pods.All) != 1 || pods.All[0].ID != "pod-starter" {
		t.Errorf("pods should reset to the starter directory, got %v", pods.All)
	}
	for _, key := range SliceNames() {
		if _, ok, _ := backend.Get(key); ok {
			t.Errorf("backend key %q should be cleared", key)
		}
	}
}

// --- persistence & notification ---

func TestPersistHappensBeforeNotify(t *testing.T) {
	s, _, backend := newTestStore(t)

	checked := 0
	unsubscribe := s.Subscribe(func(slice string, data json.RawMessage) {
		persisted, ok, err := backend.Get(slice)
		if err != nil || !ok {
			t.Errorf("slice %q not persisted before notify", slice)
			return
		}
		if persisted != string(data) {
			t.Errorf("subscriber payload for %q differs from persisted value", slice)
		}
		checked++
	})
	defer unsubscribe()

	if _, ok, _ := s.Shout("checking ordering"); !ok {
		t.Fatal("Shout failed")
	}
	if checked == 0 {
		t.Fatal("subscriber was never called")
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s, _, _ := newTestStore(t)
	calls := 0
	unsubscribe := s.Subscribe(func(string, json.RawMessage) { calls++ })
	s.Shout("one")
	unsubscribe()
	s.Shout("two")
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (none after unsubscribe)", calls)
	}
}

func TestStateSurvivesRestart(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	backend := storage.NewMemory()
	s1 := New(backend, WithClock(clock), WithIDGenerator(seqIDs()), WithDevCode(testDevCode))
	populate(t, s1)
	want, _ := s1.ExportSnapshot()

	s2 := New(backend, WithClock(clock), WithIDGenerator(seqIDs()), WithDevCode(testDevCode))
	got, _ := s2.ExportSnapshot()
	if !bytes.Equal(want, got) {
		t.Error("a store reopened on the same backend should load identical state")
	}
}

func TestLoadFallsBackOnCorruptSlice(t *testing.T) {
	clock := &fakeClock{now: baseTime}
	backend := storage.NewMemory()
	backend.Set(SliceJournal, "{{{not json")
	backend.Set(SliceProfile, `{"name":"Ada","theme":"neon"}`)

	s := New(backend, WithClock(clock))
	if got := len(s.Journal()); got != 0 {
		t.Errorf("corrupt journal should fall back to default, got %d entries", got)
	}
	profile := s.Profile()
	if profile.Name != "Ada" {
		t.Errorf("valid fields should load, name = %q", profile.Name)
	}
	if profile.Theme != "dark" {
		t.Errorf("invalid theme should coerce to dark, got %q", profile.Theme)
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s, _, _ := newTestStore(t)
	signIn(t, s)
	s.JoinPod("pod-starter")

	pods := s.Pods()
	pods.All[0].Members[0] = "tampered"
	pods.All[0].Name = "tampered"

	fresh := s.Pods()
	if fresh.All[0].Members[0] == "tampered" || fresh.All[0].Name == "tampered" {
		t.Error("mutating a returned slice value must not affect the store")
	}
}

// --- search ---

func TestSearch(t *testing.T) {
	s, _, _ := newTestStore(t)
	signIn(t, s)
	s.CompleteOnboarding(OnboardingFields{Name: "Ada Lovelace"})
	s.PostToPod("pod-starter", PostDraft{Text: "SQL practice tonight"})
	s.Shout("anyone up for sql drills?")

	results := s.Search("sql")
	if got := len(results.Posts); got != 2 {
		t.Errorf("post hits = %d, want 2 (pod feed + townhall)", got)
	}
	if got := len(s.Search("starter").Pods); got != 1 {
		t.Errorf("pod hits = %d, want 1", got)
	}
	if got := len(s.Search("lovelace").People); got != 1 {
		t.Errorf("people hits = %d, want 1", got)
	}
	if res := s.Search("  "); len(res.Pods)+len(res.Posts)+len(res.People) != 0 {
		t.Error("blank query should match nothing")
	}
}

// --- theme ---

func TestSetTheme(t *testing.T) {
	s, _, _ := newTestStore(t)
	if ok, _ := s.SetTheme("neon"); ok {
		t.Error("unknown theme should be refused")
	}
	if ok, err := s.SetTheme("Cosmos"); err != nil || !ok {
		t.Fatalf("SetTheme: ok=%v err=%v", ok, err)
	}
	if got := s.Profile().Theme; got != "cosmos" {
		t.Errorf("theme = %q, want cosmos", got)
	}
}

// --- onboarding ---

func TestCompleteOnboarding_Overwrites(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.CompleteOnboarding(OnboardingFields{Name: "Ada", Skills: []string{"sql"}})
	s.CompleteOnboarding(OnboardingFields{Name: "Grace", Skills: []string{"cobol"}})

	profile := s.Profile()
	if profile.Name != "Grace" || !reflect.DeepEqual(profile.Skills, []string{"cobol"}) {
		t.Errorf("second onboarding should overwrite, got %+v", profile)
	}
	if !profile.Onboarded {
		t.Error("onboarded should be set")
	}
}
