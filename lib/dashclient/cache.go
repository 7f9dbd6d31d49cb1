package dashclient

import (
	"strings"
	"sync"
)

// Cache keeps decoded query results by key.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewCache() *Cache {
	return &Cache{entries: map[string]any{}}
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate drops every entry whose key starts with one of prefixes.
func (c *Cache) Invalidate(prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		for _, prefix := range prefixes {
			if strings.HasPrefix(key, prefix) {
				delete(c.entries, key)
				break
			}
		}
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

const (
	taskKeyPrefix          = "task"
	reimbursementKeyPrefix = "reimbursement"
	notificationKeyPrefix  = "notification"
	analyticsKeyPrefix     = "analytics"
)

func taskKey(id string) string {
	return taskKeyPrefix + ":" + id
}

func boardKey(projectID string) string {
	return taskKeyPrefix + "/board:" + projectID
}

func reimbursementKey(id string) string {
	return reimbursementKeyPrefix + ":" + id
}
