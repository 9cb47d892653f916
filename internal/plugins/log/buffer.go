package log

import (
	"sync"
	"time"
)

// Entry is one captured webview log line
type Entry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Window    string                 `json:"window,omitempty"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Ring is a thread-safe circular buffer for log entries
type Ring struct {
	entries []*Entry
	head    int
	size    int
	maxSize int
	mu      sync.RWMutex
}

// NewRing creates a circular buffer holding up to maxSize entries
func NewRing(maxSize int) *Ring {
	return &Ring{
		entries: make([]*Entry, maxSize),
		maxSize: maxSize,
	}
}

// Add inserts an entry, evicting the oldest when full
func (r *Ring) Add(entry *Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = entry
	r.head = (r.head + 1) % r.maxSize
	if r.size < r.maxSize {
		r.size++
	}
}

// Recent returns the newest entries first, optionally filtered by level
func (r *Ring) Recent(limit int, levelFilter string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit > r.size {
		limit = r.size
	}

	result := make([]Entry, 0, limit)
	for i := 0; i < r.size && len(result) < limit; i++ {
		idx := (r.head - 1 - i + r.maxSize) % r.maxSize
		entry := r.entries[idx]
		if entry == nil {
			continue
		}
		if levelFilter == "" || entry.Level == levelFilter {
			result = append(result, *entry)
		}
	}

	return result
}

// Len returns the number of stored entries
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}
