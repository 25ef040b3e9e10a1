package display

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
	"sync"

	"vibe/internal/types"
)

type renderKey struct {
	messageHash uint64
	width       int
	dark        bool
	timestamps  bool
}

// renderCache is a bounded FIFO of rendered message lines.
type renderCache struct {
	mu      sync.Mutex
	entries map[renderKey][]string
	order   []renderKey
	maxSize int
	hits    int
	misses  int
}

func newRenderCache(maxSize int) *renderCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &renderCache{
		entries: map[renderKey][]string{},
		order:   make([]renderKey, 0, maxSize),
		maxSize: maxSize,
	}
}

func (c *renderCache) Get(key renderKey) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	lines, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return lines, true
}

func (c *renderCache) Set(key renderKey, lines []string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = lines
	for len(c.order) > c.maxSize {
		evict := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, evict)
	}
}

func (c *renderCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func hashMessage(msg types.Message) uint64 {
	hasher := fnv.New64a()
	writeHashString(hasher, msg.ID)
	writeHashString(hasher, string(msg.Role))
	writeHashString(hasher, msg.Text)
	writeHashInt(hasher, msg.CreatedAt.Unix())
	return hasher.Sum64()
}

func writeHashString(hasher hash.Hash64, value string) {
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(value)))
	_, _ = hasher.Write(size[:])
	_, _ = hasher.Write([]byte(value))
}

func writeHashInt(hasher hash.Hash64, value int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(value))
	_, _ = hasher.Write(buf[:])
}
