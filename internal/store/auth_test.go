package store

import (
	"testing"
	"time"
)

func TestRequestVerificationCode_InvalidEmail(t *testing.T) {
	s, _, _ := newTestStore(t)
	for _, email := range []string{"", "   ", "not-an-email"} {
		ok, err := s.RequestVerificationCode(email)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("RequestVerificationCode(%q) = true, want no-op", email)
		}
	}
	if got := s.VerificationStatus().Email; got != "" {
		t.Errorf("no code record should exist, got email %q", got)
	}
}

func TestRequestAndVerify_DevCode(t *testing.T) {
	s, clock, _ := newTestStore(t)

	ok, err := s.RequestVerificationCode("a@b.edu")
	if err != nil || !ok {
		t.Fatalf("RequestVerificationCode: ok=%v err=%v", ok, err)
	}

	status := s.VerificationStatus()
	if status.Email != "a@b.edu" {
		t.Errorf("email = %q, want a@b.edu", status.Email)
	}
	if want := clock.Now().Add(5 * time.Minute).UnixMilli(); status.ExpiresAt != want {
		t.Errorf("expiresAt = %d, want now+5m = %d", status.ExpiresAt, want)
	}
	if want := clock.Now().Add(30 * time.Second).UnixMilli(); status.ResendAt != want {
		t.Errorf("resendAt = %d, want now+30s = %d", status.ResendAt, want)
	}
	if status.AttemptsLeft != 5 {
		t.Errorf("attemptsLeft = %d, want 5", status.AttemptsLeft)
	}
	if status.CodeHash != "" {
		t.Error("VerificationStatus must not expose the code hash")
	}
	if got := s.Profile().Email; got != "a@b.edu" {
		t.Errorf("profile email = %q, want association with a@b.edu", got)
	}

	ok, err = s.VerifyCode(testDevCode)
	if err != nil || !ok {
		t.Fatalf("VerifyCode: ok=%v err=%v", ok, err)
	}
	auth := s.Auth()
	if !auth.Authed || auth.UserID == "" {
		t.Errorf("auth = %+v, want authed with a user id", auth)
	}
	if got := s.VerificationStatus(); got.Email != "" || got.ExpiresAt != 0 {
		t.Errorf("code record should be cleared after use, got %+v", got)
	}
}

func TestVerifyCode_WithoutRequest(t *testing.T) {
	s, _, _ := newTestStore(t)
	if ok, err := s.VerifyCode(testDevCode); err != nil || ok {
		t.Errorf("VerifyCode with no pending code: ok=%v err=%v, want false", ok, err)
	}
}

func TestVerifyCode_WrongCodeBurnsAttempt(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.RequestVerificationCode("a@b.edu")

	if ok, _ := s.VerifyCode("123456"); ok {
		t.Fatal("wrong code must not verify")
	}
	if got := s.VerificationStatus().AttemptsLeft; got != 4 {
		t.Errorf("attemptsLeft = %d, want 4", got)
	}
	if s.Auth().Authed {
		t.Error("session must stay unauthenticated")
	}
}

func TestVerifyCode_Exhaustion(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.RequestVerificationCode("a@b.edu")

	for i := 0; i < 5; i++ {
		if ok, _ := s.VerifyCode("999999"); ok {
			t.Fatalf("wrong code verified on attempt %d", i+1)
		}
	}
	if got := s.VerificationStatus().AttemptsLeft; got != 0 {
		t.Fatalf("attemptsLeft = %d, want 0", got)
	}

	// Even the correct code fails once attempts are exhausted, and the
	// counter never goes negative.
	if ok, _ := s.VerifyCode(testDevCode); ok {
		t.Error("exhausted code must keep failing")
	}
	if got := s.VerificationStatus().AttemptsLeft; got != 0 {
		t.Errorf("attemptsLeft after extra call = %d, want 0", got)
	}

	// A fresh request resets the cycle.
	clockAdvanceForResend(s)
	if ok, _ := s.RequestVerificationCode("a@b.edu"); !ok {
		t.Fatal("fresh request should be accepted")
	}
	if got := s.VerificationStatus().AttemptsLeft; got != 5 {
		t.Errorf("attemptsLeft after fresh request = %d, want 5", got)
	}
	if ok, _ := s.VerifyCode(testDevCode); !ok {
		t.Error("correct code should verify after a fresh request")
	}
}

// clockAdvanceForResend moves past the resend cooldown.
func clockAdvanceForResend(s *Store) {
	s.clock.(*fakeClock).Advance(31 * time.Second)
}

func TestVerifyCode_Expired(t *testing.T) {
	s, clock, _ := newTestStore(t)
	s.RequestVerificationCode("a@b.edu")
	clock.Advance(5*time.Minute + time.Second)

	if ok, _ := s.VerifyCode(testDevCode); ok {
		t.Error("expired code must not verify")
	}
}

func TestRequestVerificationCode_ResendCooldown(t *testing.T) {
	s, clock, _ := newTestStore(t)
	s.RequestVerificationCode("a@b.edu")

	if ok, _ := s.RequestVerificationCode("a@b.edu"); ok {
		t.Error("resend inside the cooldown should be a no-op")
	}
	clock.Advance(31 * time.Second)
	if ok, _ := s.RequestVerificationCode("a@b.edu"); !ok {
		t.Error("resend after the cooldown should succeed")
	}
}

func TestSignOut_PreservesOtherSlices(t *testing.T) {
	s, _, _ := newTestStore(t)
	signIn(t, s)
	s.CompleteOnboarding(OnboardingFields{Name: "Ada"})
	s.AddJournalEntry(JournalDraft{Note: "before signout"})

	if err := s.SignOut(); err != nil {
		t.Fatal(err)
	}

	auth := s.Auth()
	if auth.Authed || auth.UserID != "" {
		t.Errorf("auth = %+v, want reset", auth)
	}
	if got := s.Profile().Name; got != "Ada" {
		t.Errorf("profile should survive sign-out, name = %q", got)
	}
	if got := len(s.Journal()); got != 1 {
		t.Errorf("journal should survive sign-out, got %d entries", got)
	}
}
