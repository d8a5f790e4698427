package store

import "strings"

// PostDraft is the input for a new pod feed post.
type PostDraft struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

func validPostType(t string) bool {
	switch t {
	case PostTypePledge, PostTypeProof, PostTypeAnnouncement:
		return true
	}
	return false
}

// CreatePod adds a pod to the directory with the creator as its first
// member. Requires an authenticated user and a non-empty name.
func (s *Store) CreatePod(name, about string) (Pod, bool, error) {
	name = strings.TrimSpace(name)
	about = strings.TrimSpace(about)

	var created Pod
	ok := false
	err := s.update(func(st *state) []string {
		me := st.userID()
		if name == "" || me == "" {
			return nil
		}
		pod := Pod{
			ID:      s.newID(),
			Name:    name,
			About:   about,
			Rules:   []string{},
			Members: []string{me},
			Feed:    []Post{},
		}
		st.Pods.All = append(st.Pods.All, pod)
		st.Pods.Joined = dedupe(append(st.Pods.Joined, pod.ID))
		created = clonePod(pod)
		ok = true
		return []string{SlicePods}
	})
	return created, ok, err
}

// JoinPod adds the current user to the pod's member set. Unknown pod or no
// authenticated user is a silent no-op; joining twice is idempotent.
func (s *Store) JoinPod(podID string) (bool, error) {
	ok := false
	err := s.update(func(st *state) []string {
		me := st.userID()
		if me == "" {
			return nil
		}
		pod := st.findPod(podID)
		if pod == nil {
			return nil
		}
		pod.Members = dedupe(append(pod.Members, me))
		st.Pods.Joined = dedupe(append(st.Pods.Joined, podID))
		ok = true
		return []string{SlicePods}
	})
	return ok, err
}

// LeavePod removes the current user from the pod's member set and the
// joined list.
func (s *Store) LeavePod(podID string) (bool, error) {
	ok := false
	err := s.update(func(st *state) []string {
		me := st.userID()
		if me == "" {
			return nil
		}
		pod := st.findPod(podID)
		if pod == nil {
			return nil
		}
		pod.Members = remove(pod.Members, me)
		st.Pods.Joined = remove(st.Pods.Joined, podID)
		ok = true
		return []string{SlicePods}
	})
	return ok, err
}

// PostToPod prepends a new post to the pod's feed. Empty text or an unknown
// pod is a silent no-op; a missing or unknown type defaults to a pledge.
func (s *Store) PostToPod(podID string, draft PostDraft) (Post, bool, error) {
	text := strings.TrimSpace(draft.Text)
	postType := strings.ToLower(strings.TrimSpace(draft.Type))
	if !validPostType(postType) {
		postType = PostTypePledge
	}

	var created Post
	ok := false
	err := s.update(func(st *state) []string {
		if text == "" {
			return nil
		}
		pod := st.findPod(podID)
		if pod == nil {
			return nil
		}
		post := Post{
			ID:     s.newID(),
			Author: st.displayName(),
			Text:   text,
			Type:   postType,
			At:     s.clock.Now(),
		}
		pod.Feed = append([]Post{post}, pod.Feed...)
		created = post
		ok = true
		return []string{SlicePods}
	})
	return created, ok, err
}

// findPod returns a pointer into the directory, or nil. Caller must hold
// the store lock via update.
func (st *state) findPod(podID string) *Pod {
	for i := range st.Pods.All {
		if st.Pods.All[i].ID == podID {
			return &st.Pods.All[i]
		}
	}
	return nil
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
