// Package flowcache memoizes parsed Flowscript programs. Parsing and
// transforming a large program is pure but not free; Cache stores the
// compiled ast.Defs keyed by a digest of the source text, so repeated runs
// of the same program skip straight to engine construction.
package flowcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/coreyclarkphd/flowscript/internal/ast"
)

// Cache stores msgpack-encoded ast.Defs keyed by the SHA-256 digest of the
// source they were parsed from. Defs is a plain data structure (no
// reflection surprises the way a generic value.V union would need), so it
// round-trips through msgpack directly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// Key returns the cache key for source text.
func Key(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached Defs for source, if present.
func (c *Cache) Get(source string) (*ast.Defs, bool) {
	c.mu.RLock()
	raw, ok := c.entries[Key(source)]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	var defs ast.Defs
	if err := msgpack.Unmarshal(raw, &defs); err != nil {
		return nil, false
	}
	return &defs, true
}

// Put stores defs under source's key.
func (c *Cache) Put(source string, defs *ast.Defs) error {
	raw, err := msgpack.Marshal(defs)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[Key(source)] = raw
	c.mu.Unlock()
	return nil
}

// Len reports how many programs are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
