package storage

import "errors"

// Keys under which client state is persisted. Plain JSON, no integrity
// protection; the remote server never reads these.
const (
	KeyToken     = "token"
	KeyGuestCart = "guest_cart"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("storage: key not found")

// StateStore persists small named blobs of client state (the session token
// and the guest cart snapshot). It is the headless replacement for browser
// local storage: a file on disk for a single-process client, Redis for
// deployments that share state across processes.
type StateStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
}
