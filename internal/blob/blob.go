// Package blob provides the keyed byte storage the lookup history persists
// through. Implementations treat values as opaque; keys are simple file
// names with no path structure.
package blob

// Store is a durable key-value byte store.
type Store interface {
	// Get returns the bytes stored under key. ok is false when the key has
	// never been written; err is reserved for real storage failures.
	Get(key string) (data []byte, ok bool, err error)

	// Set durably replaces the bytes stored under key.
	Set(key string, data []byte) error
}
