package store

// Deep copies for slice values handed to consumers. The store owns its
// entities exclusively; nothing leaves by reference.

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneProfile(p Profile) Profile {
	p.Tags = cloneStrings(p.Tags)
	p.Goals = cloneStrings(p.Goals)
	p.Skills = cloneStrings(p.Skills)
	p.LinkedIn.Skills = cloneStrings(p.LinkedIn.Skills)
	visible := make(map[string]bool, len(p.LinkedIn.Visible))
	for k, v := range p.LinkedIn.Visible {
		visible[k] = v
	}
	p.LinkedIn.Visible = visible
	return p
}

func clonePod(p Pod) Pod {
	p.Rules = cloneStrings(p.Rules)
	p.Members = cloneStrings(p.Members)
	p.Feed = append([]Post(nil), p.Feed...)
	return p
}

func clonePods(p Pods) Pods {
	all := make([]Pod, len(p.All))
	for i, pod := range p.All {
		all[i] = clonePod(pod)
	}
	return Pods{All: all, Joined: cloneStrings(p.Joined)}
}

func cloneEvents(events []Event) []Event {
	out := make([]Event, len(events))
	for i, e := range events {
		e.RSVPs = cloneStrings(e.RSVPs)
		out[i] = e
	}
	return out
}

func cloneMatches(m Matches) Matches {
	crews := make([]Candidate, len(m.Crews))
	for i, c := range m.Crews {
		c.Tags = cloneStrings(c.Tags)
		crews[i] = c
	}
	return Matches{
		Suggested: append([]Suggestion(nil), m.Suggested...),
		Crews:     crews,
	}
}
