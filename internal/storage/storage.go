// Package storage provides the key→value persistence backends the state
// store writes its slices to. Each slice is one key whose value is the JSON
// serialization of that slice.
package storage

// Backend is a synchronous string key→value store. Get reports a miss via
// the bool rather than an error, so callers can fall back to defaults.
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
