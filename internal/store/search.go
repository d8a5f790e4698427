package store

import "strings"

// SearchPost is a feed hit with the pod it came from ("" for townhall).
type SearchPost struct {
	Pod  string `json:"pod,omitempty"`
	Post Post   `json:"post"`
}

// PersonHit is a profile matched by a search.
type PersonHit struct {
	Name     string `json:"name"`
	Headline string `json:"headline"`
}

type SearchResults struct {
	Pods   []Pod        `json:"pods"`
	Posts  []SearchPost `json:"posts"`
	People []PersonHit  `json:"people"`
}

// Search is a pure read: case-insensitive substring match over pod names,
// townhall and pod feeds, and the profile. An empty query matches nothing.
func (s *Store) Search(query string) SearchResults {
	query = strings.ToLower(strings.TrimSpace(query))
	results := SearchResults{Pods: []Pod{}, Posts: []SearchPost{}, People: []PersonHit{}}
	if query == "" {
		return results
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, pod := range s.st.Pods.All {
		if strings.Contains(strings.ToLower(pod.Name), query) {
			results.Pods = append(results.Pods, clonePod(pod))
		}
	}
	for _, post := range s.st.Townhall {
		if strings.Contains(strings.ToLower(post.Text), query) {
			results.Posts = append(results.Posts, SearchPost{Post: post})
		}
	}
	for _, pod := range s.st.Pods.All {
		for _, post := range pod.Feed {
			if strings.Contains(strings.ToLower(post.Text), query) {
				results.Posts = append(results.Posts, SearchPost{Pod: pod.Name, Post: post})
			}
		}
	}
	name := strings.ToLower(s.st.Profile.Name)
	headline := strings.ToLower(s.st.Profile.Headline)
	if name != "" && (strings.Contains(name, query) || strings.Contains(headline, query)) {
		results.People = append(results.People, PersonHit{
			Name:     s.st.Profile.Name,
			Headline: s.st.Profile.Headline,
		})
	}
	return results
}
