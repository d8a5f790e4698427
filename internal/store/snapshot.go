package store

import (
	"encoding/json"
	"errors"
)

// ErrBadSnapshot is returned when an imported payload fails to parse; no
// state is mutated in that case.
var ErrBadSnapshot = errors.New("snapshot: malformed payload")

// ExportSnapshot serializes every slice into one JSON object keyed by slice
// name. The output round-trips losslessly through ImportSnapshot.
func (s *Store) ExportSnapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]json.RawMessage, len(SliceNames()))
	for _, key := range SliceNames() {
		raw, err := s.st.marshalSlice(key)
		if err != nil {
			return nil, err
		}
		snapshot[key] = raw
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// ImportSnapshot replaces every recognized slice present in payload, in
// memory and in the backend. Unrecognized keys are ignored. A payload that
// fails to parse, in whole or for any recognized slice, aborts the import
// without mutating anything.
func (s *Store) ImportSnapshot(payload []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(payload, &raw); err != nil {
		return ErrBadSnapshot
	}

	s.mu.Lock()

	// Decode the full payload into a scratch state first, so a bad slice
	// aborts before anything is replaced.
	next := s.st
	var changed []string
	for _, key := range SliceNames() {
		doc, ok := raw[key]
		if !ok {
			continue
		}
		if err := next.unmarshalSlice(key, doc); err != nil {
			s.mu.Unlock()
			return ErrBadSnapshot
		}
		changed = append(changed, key)
	}
	if len(changed) == 0 {
		s.mu.Unlock()
		return nil
	}
	next.normalize()
	s.st = next

	payloads := make([]json.RawMessage, 0, len(changed))
	for _, key := range changed {
		doc, err := s.st.marshalSlice(key)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		if err := s.backend.Set(key, string(doc)); err != nil {
			s.mu.Unlock()
			return err
		}
		payloads = append(payloads, doc)
	}
	s.mu.Unlock()

	for i, key := range changed {
		s.publish(key, payloads[i])
	}
	return nil
}

// unmarshalSlice decodes doc into a fresh value before assigning, so a
// scratch state never writes through backing arrays shared with the live
// state.
func (st *state) unmarshalSlice(key string, doc json.RawMessage) error {
	switch key {
	case SliceAuth:
		return decodeInto(doc, &st.Auth)
	case SliceProfile:
		return decodeInto(doc, &st.Profile)
	case SliceOTP:
		return decodeInto(doc, &st.OTP)
	case SliceAnalytics:
		return decodeInto(doc, &st.Analytics)
	case SlicePods:
		return decodeInto(doc, &st.Pods)
	case SliceEvents:
		return decodeInto(doc, &st.Events)
	case SliceJournal:
		return decodeInto(doc, &st.Journal)
	case SliceTownhall:
		return decodeInto(doc, &st.Townhall)
	case SliceMatches:
		return decodeInto(doc, &st.Matches)
	}
	return errUnknownSlice(key)
}

func decodeInto[T any](doc json.RawMessage, dest *T) error {
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return err
	}
	*dest = v
	return nil
}

// DeleteAllData clears every persisted slice and resets in-memory state to
// the documented defaults. Confirmation is the caller's responsibility.
func (s *Store) DeleteAllData() error {
	s.mu.Lock()
	for _, key := range SliceNames() {
		if err := s.backend.Delete(key); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.st = defaultState(s.clock.Now())

	payloads := make([]json.RawMessage, 0, len(SliceNames()))
	for _, key := range SliceNames() {
		doc, err := s.st.marshalSlice(key)
		if err != nil {
			s.mu.Unlock()
			return err
		}
		payloads = append(payloads, doc)
	}
	s.mu.Unlock()

	for i, key := range SliceNames() {
		s.publish(key, payloads[i])
	}
	return nil
}
