package agreement

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/keys"
)

var ErrCacheClosed = errors.New("agreement: cache closed")

const (
	// DefaultCacheLifetime bounds how long a derived secret stays in memory.
	DefaultCacheLifetime = 24 * time.Hour
)

type cacheEntry struct {
	secret    SharedSecret
	expiresAt int64
}

// Cache holds the secrets one identity shares with its peers so that they
// are not re-derived for every message. Entries expire after the lifetime
// and are zeroed when evicted.
//
// DeriveSharedSecret is itself stateless; Cache is an optional helper for
// callers that want to keep secrets around.
type Cache struct {
	mu       sync.RWMutex
	own      keys.PrivateKey
	entries  map[keys.PublicKey]*cacheEntry
	lifetime time.Duration
	closed   bool
}

// NewCache creates a cache for the identity owning own. A lifetime <= 0
// selects DefaultCacheLifetime. The cache keeps its own copy of own.
func NewCache(own keys.PrivateKey, lifetime time.Duration) *Cache {
	if lifetime <= 0 {
		lifetime = DefaultCacheLifetime
	}
	return &Cache{
		own:      own,
		entries:  make(map[keys.PublicKey]*cacheEntry),
		lifetime: lifetime,
	}
}

// Get returns the secret shared with peer, deriving it on a miss.
func (c *Cache) Get(peer keys.PublicKey) (SharedSecret, error) {
	now := time.Now().Unix()

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return SharedSecret{}, ErrCacheClosed
	}
	if e, ok := c.entries[peer]; ok && now <= e.expiresAt {
		s := e.secret
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return SharedSecret{}, ErrCacheClosed
	}
	if e, ok := c.entries[peer]; ok {
		if now <= e.expiresAt {
			return e.secret, nil
		}
		e.secret.Destroy()
		delete(c.entries, peer)
	}

	s, err := DeriveSharedSecret(c.own, peer)
	if err != nil {
		return SharedSecret{}, err
	}
	c.entries[peer] = &cacheEntry{
		secret:    s,
		expiresAt: time.Now().Add(c.lifetime).Unix(),
	}
	return s, nil
}

// Forget drops and zeroes the secret for peer, e.g. after the peer rotated
// its key pair.
func (c *Cache) Forget(peer keys.PublicKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[peer]; ok {
		e.secret.Destroy()
		delete(c.entries, peer)
	}
}

// Cleanup removes expired entries.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().Unix()
	removed := 0
	for peer, e := range c.entries {
		if now > e.expiresAt {
			e.secret.Destroy()
			delete(c.entries, peer)
			removed++
		}
	}
	return removed
}

// Count returns the number of cached secrets.
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close zeroes every cached secret and the private key.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	for peer, e := range c.entries {
		e.secret.Destroy()
		delete(c.entries, peer)
	}
	c.own.Destroy()
	c.closed = true
}
