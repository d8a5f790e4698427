package store

import (
	"math"
	"sort"
	"strings"
)

const (
	tagWeight     = 2.0
	textWeight    = 1.0
	minTokenLen   = 3
	fallbackBase  = 0.6
	fallbackStep  = 0.05
	fallbackFloor = 0.05
	crewSize      = 3
)

// tokenize lowercases s and splits it on non-alphanumeric runes, dropping
// tokens shorter than minTokenLen.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) >= minTokenLen {
			out = append(out, f)
		}
	}
	return out
}

// termVector builds a term-frequency vector: explicit tags count double,
// free text counts single.
func termVector(tags []string, freeText []string) map[string]float64 {
	v := make(map[string]float64)
	for _, tag := range tags {
		for _, tok := range tokenize(tag) {
			v[tok] += tagWeight
		}
	}
	for _, text := range freeText {
		for _, tok := range tokenize(text) {
			v[tok] += textWeight
		}
	}
	return v
}

// cosine computes cosine similarity between two term vectors. Terms are
// visited in sorted order so the floating-point sum, and therefore the
// resulting ranking, is identical across calls.
func cosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	terms := make([]string, 0, len(a))
	for t := range a {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	var dot float64
	for _, t := range terms {
		if w, ok := b[t]; ok {
			dot += a[t] * w
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (norm(a) * norm(b))
}

func norm(v map[string]float64) float64 {
	terms := make([]string, 0, len(v))
	for t := range v {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	var sum float64
	for _, t := range terms {
		sum += v[t] * v[t]
	}
	return math.Sqrt(sum)
}

// overlap counts the distinct terms two vectors share.
func overlap(a, b map[string]float64) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// profileVector is the current user's interest vector: tags, skills and
// goals as explicit tags, headline and bio as free text.
func (st *state) profileVector() map[string]float64 {
	tags := make([]string, 0, len(st.Profile.Tags)+len(st.Profile.Skills)+len(st.Profile.Goals))
	tags = append(tags, st.Profile.Tags...)
	tags = append(tags, st.Profile.Skills...)
	tags = append(tags, st.Profile.Goals...)
	return termVector(tags, []string{st.Profile.Headline, st.Profile.Bio})
}

// podVector is a pod's content vector: name, about and feed text.
func podVector(p Pod) map[string]float64 {
	text := make([]string, 0, len(p.Feed)+2)
	text = append(text, p.Name, p.About)
	for _, post := range p.Feed {
		text = append(text, post.Text)
	}
	return termVector(nil, text)
}

// ComputeMatches derives pod suggestions and a crew list from the current
// state and caches the result in the matches slice. Deterministic: the same
// input state always produces the same ordering; ties keep directory order.
func (s *Store) ComputeMatches() (Matches, error) {
	var out Matches
	err := s.update(func(st *state) []string {
		me := st.profileVector()
		joined := make(map[string]struct{}, len(st.Pods.Joined))
		for _, id := range st.Pods.Joined {
			joined[id] = struct{}{}
		}

		suggested := make([]Suggestion, 0)
		position := 0
		for _, pod := range st.Pods.All {
			if _, ok := joined[pod.ID]; ok {
				continue
			}
			score := cosine(me, podVector(pod))
			if score == 0 {
				// No overlap at all: fall back to a decreasing score by
				// directory order so the list stays ranked and stable.
				score = fallbackBase - fallbackStep*float64(position)
				if score < fallbackFloor {
					score = fallbackFloor
				}
			}
			suggested = append(suggested, Suggestion{
				ID:    "sug-" + pod.ID,
				Title: "Join \"" + pod.Name + "\"",
				PodID: pod.ID,
				Type:  "pod",
				Score: score,
			})
			position++
		}
		sort.SliceStable(suggested, func(i, j int) bool {
			return suggested[i].Score > suggested[j].Score
		})

		crews := make([]Candidate, 0, crewSize)
		for _, pod := range st.Pods.All {
			if _, ok := joined[pod.ID]; !ok {
				continue
			}
			for i, memberID := range pod.Members {
				if i >= crewSize {
					break
				}
				crews = append(crews, Candidate{
					ID:    memberID,
					Name:  "Peer " + idSuffix(memberID),
					Tags:  cloneStrings(st.Profile.Tags),
					Score: 0.5 - 0.1*float64(i),
				})
			}
			break
		}

		st.Matches = Matches{Suggested: suggested, Crews: crews}
		out = cloneMatches(st.Matches)
		return []string{SliceMatches}
	})
	return out, err
}

func idSuffix(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}
