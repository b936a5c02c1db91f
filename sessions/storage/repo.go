package storage

import "github.com/jrsteele09/promptshare/internal/errors"

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.ErrNotFound

// Repo is durable key/value storage partitioned per browser, the server side
// equivalent of a browser's local storage.
type Repo interface {
	Put(namespace, key string, value []byte) error
	Get(namespace, key string) ([]byte, error)
	Delete(namespace, key string) error
}
