package repository

import (
	"sync"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// documentCache memoizes decoded records for the process lifetime. Records
// are immutable after an import run, so entries are never invalidated.
type documentCache struct {
	mu   sync.RWMutex
	docs map[string]*content.Document
}

func newDocumentCache() *documentCache {
	return &documentCache{docs: make(map[string]*content.Document)}
}

func (c *documentCache) get(key string) (*content.Document, bool) {
	c.mu.RLock()
	doc, ok := c.docs[key]
	c.mu.RUnlock()
	return doc, ok
}

func (c *documentCache) put(key string, doc *content.Document) {
	c.mu.Lock()
	c.docs[key] = doc
	c.mu.Unlock()
}
