// Package cache provides a content-addressed, phase-keyed result cache:
// gob-encoded phase results stored under a key derived from the ROM's
// content hash, so a re-analysis of the same image can skip any phase
// whose inputs have not changed.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"fmt"
	"os"
	"sync"
)

// Key identifies one cached phase result: the ROM it was computed from,
// the phase name that produced it, and a string encoding of whatever
// parameters could change that phase's output (so a cache entry computed
// under one set of analysis options is never handed back for another).
type Key struct {
	ROMHash [32]byte
	Phase   string
	Params  string
}

// HashROM returns the content-address for a ROM image.
func HashROM(rom []byte) [32]byte {
	return sha256.Sum256(rom)
}

// entry is the gob-serializable unit stored per key: the raw gob bytes
// of whatever value was cached, so Cache itself never needs to know the
// concrete phase-result types at decode time.
type entry struct {
	Key   Key
	Value []byte
}

// Cache is a mutex-guarded, content-addressed store of gob-encoded
// phase results. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[Key][]byte
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[Key][]byte)}
}

// Put gob-encodes value and stores it under key, overwriting any
// existing entry. value must be a concrete type (or pointer to one), not
// an interface value, since Get decodes directly into the caller's
// concrete-typed pointer without any interface boxing.
func (c *Cache) Put(key Key, value any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return fmt.Errorf("cache: encode %+v: %w", key, err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = buf.Bytes()
	return nil
}

// Get decodes the entry stored under key into out, a pointer to the
// same concrete type that was passed to Put. It reports whether an
// entry was found.
func (c *Cache) Get(key Key, out any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(out); err != nil {
		return false, fmt.Errorf("cache: decode %+v: %w", key, err)
	}
	return true, nil
}

// SaveToFile persists every entry to path as a single gob stream.
func (c *Cache) SaveToFile(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	list := make([]entry, 0, len(c.entries))
	for k, v := range c.entries {
		list = append(list, entry{Key: k, Value: v})
	}
	return gob.NewEncoder(f).Encode(list)
}

// LoadFromFile loads a cache previously written by SaveToFile.
func LoadFromFile(path string) (*Cache, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []entry
	if err := gob.NewDecoder(f).Decode(&list); err != nil {
		return nil, err
	}
	c := New()
	for _, e := range list {
		c.entries[e.Key] = e.Value
	}
	return c, nil
}
