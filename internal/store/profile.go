package store

import "strings"

// OnboardingFields is the quick-setup form.
type OnboardingFields struct {
	Name         string   `json:"name"`
	College      string   `json:"college"`
	GradYear     string   `json:"gradYear"`
	Goals        []string `json:"goals"`
	Skills       []string `json:"skills"`
	Availability string   `json:"availability"`
}

// ProfilePatch carries partial profile edits; nil fields are left alone.
type ProfilePatch struct {
	Name         *string   `json:"name,omitempty"`
	Headline     *string   `json:"headline,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	College      *string   `json:"college,omitempty"`
	GradYear     *string   `json:"gradYear,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	Goals        *[]string `json:"goals,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	Availability *string   `json:"availability,omitempty"`
	LinkedIn     *LinkedIn `json:"linkedin,omitempty"`
	Privacy      *Privacy  `json:"privacy,omitempty"`
}

// CompleteOnboarding merges the setup fields into the profile and marks it
// onboarded. Idempotent: a second call overwrites rather than errors.
func (s *Store) CompleteOnboarding(fields OnboardingFields) error {
	return s.update(func(st *state) []string {
		if v := strings.TrimSpace(fields.Name); v != "" {
			st.Profile.Name = v
		}
		if v := strings.TrimSpace(fields.College); v != "" {
			st.Profile.College = v
		}
		if v := strings.TrimSpace(fields.GradYear); v != "" {
			st.Profile.GradYear = v
		}
		if fields.Goals != nil {
			st.Profile.Goals = trimAll(fields.Goals)
		}
		if fields.Skills != nil {
			st.Profile.Skills = trimAll(fields.Skills)
		}
		if v := strings.TrimSpace(fields.Availability); v != "" {
			st.Profile.Availability = v
		}
		st.Profile.Onboarded = true
		return []string{SliceProfile}
	})
}

// UpdateProfile applies a partial edit from the profile page.
func (s *Store) UpdateProfile(patch ProfilePatch) error {
	return s.update(func(st *state) []string {
		if patch.Name != nil {
			st.Profile.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Headline != nil {
			st.Profile.Headline = strings.TrimSpace(*patch.Headline)
		}
		if patch.Bio != nil {
			st.Profile.Bio = strings.TrimSpace(*patch.Bio)
		}
		if patch.College != nil {
			st.Profile.College = strings.TrimSpace(*patch.College)
		}
		if patch.GradYear != nil {
			st.Profile.GradYear = strings.TrimSpace(*patch.GradYear)
		}
		if patch.Tags != nil {
			st.Profile.Tags = trimAll(*patch.Tags)
		}
		if patch.Goals != nil {
			st.Profile.Goals = trimAll(*patch.Goals)
		}
		if patch.Skills != nil {
			st.Profile.Skills = trimAll(*patch.Skills)
		}
		if patch.Availability != nil {
			st.Profile.Availability = strings.TrimSpace(*patch.Availability)
		}
		if patch.LinkedIn != nil {
			li := *patch.LinkedIn
			li.Skills = trimAll(li.Skills)
			if li.Visible == nil {
				li.Visible = map[string]bool{}
			}
			st.Profile.LinkedIn = li
		}
		if patch.Privacy != nil {
			st.Profile.Privacy = *patch.Privacy
		}
		return []string{SliceProfile}
	})
}

// SetTheme switches the UI theme. Unknown themes are a no-op.
func (s *Store) SetTheme(theme string) (bool, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if !validTheme(theme) {
		return false, nil
	}
	return true, s.update(func(st *state) []string {
		st.Profile.Theme = theme
		return []string{SliceProfile}
	})
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
