package teacherdoc

import (
	"container/list"
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheConfig contains configuration options for the template cache
type CacheConfig struct {
	// MaxSize is the maximum number of templates to cache. 0 disables caching.
	MaxSize int
	// TTL is the time-to-live for cached templates. 0 means no expiration.
	TTL time.Duration
}

// TemplateCache keeps the raw bytes of recently used templates. An entry is
// only served while the file's size and modification time are unchanged,
// so a template edited between runs is read again.
type TemplateCache struct {
	mu     sync.Mutex
	cache  map[string]*cacheEntry
	lru    *list.List
	config CacheConfig
}

type cacheEntry struct {
	key     string
	data    []byte
	size    int64
	modTime time.Time
	expiry  time.Time
	element *list.Element
}

// NewTemplateCache creates a new template cache with the given configuration
func NewTemplateCache(config CacheConfig) *TemplateCache {
	return &TemplateCache{
		cache:  make(map[string]*cacheEntry),
		lru:    list.New(),
		config: config,
	}
}

// Load returns the content of the template at path, from the cache when
// the cached copy is still current.
func (tc *TemplateCache) Load(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	if tc.config.MaxSize == 0 {
		return os.ReadFile(path)
	}

	tc.mu.Lock()
	entry, exists := tc.cache[path]
	if exists {
		fresh := entry.size == info.Size() && entry.modTime.Equal(info.ModTime())
		expired := tc.config.TTL > 0 && time.Now().After(entry.expiry)
		if fresh && !expired {
			tc.lru.MoveToFront(entry.element)
			tc.mu.Unlock()
			return entry.data, nil
		}
		tc.removeLocked(entry)
	}
	tc.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()

	if existing, ok := tc.cache[path]; ok {
		tc.removeLocked(existing)
	}

	// Evict least recently used
	for tc.lru.Len() >= tc.config.MaxSize {
		oldest := tc.lru.Back()
		if oldest == nil {
			break
		}
		tc.removeLocked(oldest.Value.(*cacheEntry))
	}

	entry = &cacheEntry{
		key:     path,
		data:    data,
		size:    info.Size(),
		modTime: info.ModTime(),
	}
	if tc.config.TTL > 0 {
		entry.expiry = time.Now().Add(tc.config.TTL)
	}
	entry.element = tc.lru.PushFront(entry)
	tc.cache[path] = entry

	return data, nil
}

// Remove drops the cached copy of path.
func (tc *TemplateCache) Remove(path string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if entry, exists := tc.cache[path]; exists {
		tc.removeLocked(entry)
	}
}

func (tc *TemplateCache) removeLocked(entry *cacheEntry) {
	delete(tc.cache, entry.key)
	tc.lru.Remove(entry.element)
}

// Clear removes all templates from the cache
func (tc *TemplateCache) Clear() {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	tc.cache = make(map[string]*cacheEntry)
	tc.lru = list.New()
}

// Size returns the current number of cached templates
func (tc *TemplateCache) Size() int {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	return len(tc.cache)
}
