package memory

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// AnswerCache short-circuits repeated questions within a freshness window.
// Entries are keyed by (identity, scope, normalized question), expire after
// the TTL and are evicted least-recently-used beyond maxEntries. A miss is
// never an error; the cache is best-effort only.
type AnswerCache struct {
	cache      *cache.Cache
	maxEntries int

	mu      sync.Mutex
	recency *list.List // front = most recently used, values are keys
	index   map[string]*list.Element
}

func NewAnswerCache(ttl time.Duration, maxEntries int) *AnswerCache {
	return &AnswerCache{
		cache:      cache.New(ttl, 10*time.Minute),
		maxEntries: maxEntries,
		recency:    list.New(),
		index:      make(map[string]*list.Element),
	}
}

func (c *AnswerCache) Get(identity, scope, question string) (string, bool) {
	key := cacheKey(identity, scope, question)

	x, found := c.cache.Get(key)
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, tracked := c.index[key]
	if !found {
		// TTL-expired entry: drop the stale recency slot too.
		if tracked {
			c.recency.Remove(elem)
			delete(c.index, key)
		}
		return "", false
	}
	if tracked {
		c.recency.MoveToFront(elem)
	}
	return x.(string), true
}

func (c *AnswerCache) Put(identity, scope, question, answer string) {
	key := cacheKey(identity, scope, question)
	c.cache.Set(key, answer, cache.DefaultExpiration)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[key]; ok {
		c.recency.MoveToFront(elem)
		return
	}
	c.index[key] = c.recency.PushFront(key)

	for c.recency.Len() > c.maxEntries {
		oldest := c.recency.Back()
		if oldest == nil {
			break
		}
		oldKey := oldest.Value.(string)
		c.recency.Remove(oldest)
		delete(c.index, oldKey)
		c.cache.Delete(oldKey)
	}
}

// InvalidateScope removes every cached answer an identity has for a scope.
// Used when the sticky scope changes so answers never leak across scopes.
func (c *AnswerCache) InvalidateScope(identity, scope string) {
	prefix := identity + "|" + scope + "|"

	c.mu.Lock()
	defer c.mu.Unlock()

	for elem := c.recency.Front(); elem != nil; {
		next := elem.Next()
		key := elem.Value.(string)
		if strings.HasPrefix(key, prefix) {
			c.recency.Remove(elem)
			delete(c.index, key)
			c.cache.Delete(key)
		}
		elem = next
	}
}

func (c *AnswerCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

func cacheKey(identity, scope, question string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(question)), " ")
	return identity + "|" + scope + "|" + normalized
}
