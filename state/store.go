// Package state provides the keyed contract state store and the staged
// write-set transaction every contract invocation runs inside.
package state

// Store is the persistent keyed value store the contract runs against.
// Apply commits a whole write-set or none of it.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Apply(writes map[string]string) error
	Close() error
}
