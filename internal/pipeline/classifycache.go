package pipeline

import (
	"sync"

	"github.com/couchcryptid/storm-impact-summary/internal/domain"
)

// classifyCache is a thread-safe LRU memo for classification results. The
// historical file repeats a few hundred distinct EVTYPE spellings across
// millions of rows, so memoizing Classify skips almost every rule scan.
type classifyCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*cacheEntry
	head       *cacheEntry // most recently used
	tail       *cacheEntry // least recently used
}

type cacheEntry struct {
	label    string
	category domain.Category
	prev     *cacheEntry
	next     *cacheEntry
}

func newClassifyCache(maxEntries int) *classifyCache {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	return &classifyCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*cacheEntry),
	}
}

func (c *classifyCache) get(label string) (domain.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[label]
	if !ok {
		return "", false
	}
	c.moveToFront(e)
	return e.category, true
}

func (c *classifyCache) put(label string, category domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[label]; ok {
		e.category = category
		c.moveToFront(e)
		return
	}

	e := &cacheEntry{label: label, category: category}
	c.entries[label] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *classifyCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *classifyCache) moveToFront(e *cacheEntry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *classifyCache) addToFront(e *cacheEntry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *classifyCache) remove(e *cacheEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *classifyCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.label)
	c.remove(c.tail)
}
