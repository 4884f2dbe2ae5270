// Package recordcache shares sampling records across the catalogs of a
// hazard group, so perils that strike together draw the same event years.
package recordcache

import (
	"sync"

	"github.com/couchcryptid/impact-yearset-service/internal/yearset"
)

// Store is a thread-safe LRU of sampling records keyed by hazard group.
// Records are handed out as-is and must be treated as read-only by callers.
type Store struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key    string
	record yearset.Record
	prev   *entry
	next   *entry
}

// New creates a Store holding at most maxEntries hazard groups.
func New(maxEntries int) *Store {
	return &Store{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// Get returns the record cached for a hazard group, promoting it to most
// recently used.
func (s *Store) Get(group string) (yearset.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[group]
	if !ok {
		return nil, false
	}
	s.moveToFront(e)
	return e.record, true
}

// Put stores a record for a hazard group, evicting the least recently used
// group when the store is full.
func (s *Store) Put(group string, rec yearset.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[group]; ok {
		e.record = rec
		s.moveToFront(e)
		return
	}

	e := &entry{key: group, record: rec}
	s.entries[group] = e
	s.addToFront(e)

	if len(s.entries) > s.maxEntries {
		s.evictTail()
	}
}

func (s *Store) moveToFront(e *entry) {
	if e == s.head {
		return
	}
	s.remove(e)
	s.addToFront(e)
}

func (s *Store) addToFront(e *entry) {
	e.next = s.head
	e.prev = nil
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *Store) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
}

func (s *Store) evictTail() {
	if s.tail == nil {
		return
	}
	delete(s.entries, s.tail.key)
	s.remove(s.tail)
}
