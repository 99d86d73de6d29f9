package cache

import "time"

// Cache is the on-device key-value store the admin tool writes to.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}
