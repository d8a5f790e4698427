package store

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/peerlearn/peerlearn-backend/pkg/utils"
)

const (
	codeLength     = 6
	codeTTL        = 5 * time.Minute
	resendCooldown = 30 * time.Second
	maxAttempts    = 5
)

// RequestVerificationCode issues a one-time code for email and associates
// the email with the profile. Returns false without side effects when the
// email is invalid or a resend is still inside its cooldown window.
func (s *Store) RequestVerificationCode(email string) (bool, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return false, nil
	}

	code := s.devCode
	if code == "" {
		var err error
		code, err = utils.GenerateNumericCode(codeLength)
		if err != nil {
			return false, err
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	ok := false
	err = s.update(func(st *state) []string {
		now := s.clock.Now()
		if st.OTP.Email == email && now.UnixMilli() < st.OTP.ResendAt {
			return nil
		}
		st.OTP = OTP{
			Email:        email,
			CodeHash:     string(hash),
			ExpiresAt:    now.Add(codeTTL).UnixMilli(),
			AttemptsLeft: maxAttempts,
			ResendAt:     now.Add(resendCooldown).UnixMilli(),
		}
		st.Profile.Email = email
		ok = true
		return []string{SliceOTP, SliceProfile}
	})
	return ok, err
}

// VerifyCode checks input against the pending code. A mismatch consumes an
// attempt; an expired, exhausted or absent code request always fails. On
// success the session becomes authenticated (assigning a user id on first
// sign-in) and the code record is cleared, single-use.
func (s *Store) VerifyCode(input string) (bool, error) {
	input = strings.TrimSpace(input)

	ok := false
	err := s.update(func(st *state) []string {
		if st.OTP.Email == "" || st.OTP.CodeHash == "" {
			return nil
		}
		now := s.clock.Now()
		if now.UnixMilli() > st.OTP.ExpiresAt {
			return nil
		}
		if st.OTP.AttemptsLeft <= 0 {
			return nil
		}
		if bcrypt.CompareHashAndPassword([]byte(st.OTP.CodeHash), []byte(input)) != nil {
			st.OTP.AttemptsLeft--
			return []string{SliceOTP}
		}

		st.Auth.Authed = true
		if st.Auth.UserID == "" {
			st.Auth.UserID = s.newID()
		}
		st.OTP = OTP{}
		ok = true
		return []string{SliceAuth, SliceOTP}
	})
	return ok, err
}

// SignOut resets the session. All other slices are preserved.
func (s *Store) SignOut() error {
	return s.update(func(st *state) []string {
		st.Auth = Auth{}
		return []string{SliceAuth}
	})
}
