package ctxt

import (
	"sync"

	"github.com/viant/llmcc/ids"
)

// InternPool maps strings to ids.InternedStr and back. Insertion is
// idempotent and safe for concurrent callers (spec.md §4.1): the collector
// and binder intern names from many compile units in parallel.
type InternPool struct {
	mu      sync.RWMutex
	byStr   map[string]ids.InternedStr
	byID    []string // index 0 unused, ids start at 1
	counter ids.Counter
}

// NewInternPool creates an empty pool.
func NewInternPool() *InternPool {
	return &InternPool{
		byStr: make(map[string]ids.InternedStr, 1024),
		byID:  []string{""},
	}
}

// Intern returns the id for s, allocating one on first sight.
func (p *InternPool) Intern(s string) ids.InternedStr {
	p.mu.RLock()
	if id, ok := p.byStr[s]; ok {
		p.mu.RUnlock()
		return id
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()
	// re-check under the write lock: another writer may have interned s
	// between our RUnlock and this Lock.
	if id, ok := p.byStr[s]; ok {
		return id
	}
	id := ids.InternedStr(p.counter.Next32())
	p.byStr[s] = id
	p.byID = append(p.byID, s)
	return id
}

// Resolve returns the original string for id, or "" if id is unknown.
func (p *InternPool) Resolve(id ids.InternedStr) string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if int(id) >= len(p.byID) {
		return ""
	}
	return p.byID[id]
}

// Len reports how many distinct strings have been interned.
func (p *InternPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byID) - 1
}
