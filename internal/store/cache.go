package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/logbook/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketLookups = []byte("lookups")

type lookupRecord struct {
	SavedAt int64                 `json:"saved_at"`
	Results []domain.LookupResult `json:"results"`
}

// LookupCache keeps external search results in BoltDB with a memory front.
// It is safe for concurrent use; lookups run off the UI loop.
type LookupCache struct {
	db  *bolt.DB
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	cache map[string][]byte
}

// OpenLookupCache opens the cache under baseDir, namespaced by server URL.
// An empty baseDir gives a memory-only cache. A zero ttl never expires.
func OpenLookupCache(baseDir, serverURL string, ttl time.Duration) (*LookupCache, error) {
	c := &LookupCache{ttl: ttl, now: time.Now, cache: make(map[string][]byte)}
	if baseDir == "" {
		return c, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "lookup.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketLookups)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	c.db = db
	return c, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func lookupKey(category domain.Category, query string) string {
	return strings.ToLower(string(category)) + ":" + strings.ToLower(strings.TrimSpace(query))
}

func (c *LookupCache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// GetLookup returns fresh cached results for the query.
func (c *LookupCache) GetLookup(category domain.Category, query string) ([]domain.LookupResult, bool) {
	key := lookupKey(category, query)
	data, ok := c.read(key)
	if !ok {
		return nil, false
	}
	var rec lookupRecord
	if json.Unmarshal(data, &rec) != nil {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(time.Unix(rec.SavedAt, 0)) > c.ttl {
		c.delete(key)
		return nil, false
	}
	return rec.Results, true
}

// SaveLookup stores results for the query.
func (c *LookupCache) SaveLookup(category domain.Category, query string, results []domain.LookupResult) error {
	data, err := json.Marshal(lookupRecord{SavedAt: c.now().Unix(), Results: results})
	if err != nil {
		return err
	}
	key := lookupKey(category, query)

	c.mu.Lock()
	c.cache[key] = data
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLookups).Put([]byte(key), data)
	})
}

// Purge drops every cached lookup.
func (c *LookupCache) Purge() error {
	c.mu.Lock()
	c.cache = make(map[string][]byte)
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketLookups); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketLookups)
		return err
	})
}

func (c *LookupCache) read(key string) ([]byte, bool) {
	c.mu.RLock()
	if data, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return data, true
	}
	c.mu.RUnlock()

	if c.db == nil {
		return nil, false
	}

	var data []byte
	c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketLookups).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return nil, false
	}

	// Promote to memory
	c.mu.Lock()
	c.cache[key] = data
	c.mu.Unlock()
	return data, true
}

func (c *LookupCache) delete(key string) {
	c.mu.Lock()
	delete(c.cache, key)
	c.mu.Unlock()

	if c.db == nil {
		return
	}
	c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLookups).Delete([]byte(key))
	})
}
