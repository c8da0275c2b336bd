// Package cache holds one syntax tree per live statement.
//
// The store is split into shards chosen from the statement ID, each guarded by its
// own RWMutex, so lookups and updates of unrelated statements rarely contend.
// Every entry carries a mutex of its own which callers hold for the whole
// edit-and-reparse of that statement; this keeps at most one edit per statement in
// flight without blocking the rest of its shard.
package cache

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/stmtree/internal/logger"
	"github.com/bethropolis/stmtree/internal/statement"
)

// DefaultShards is the shard count used when none is given.
const DefaultShards = 32

// Entry is the cached state of one statement: its tree and the text it was
// parsed from.
type Entry struct {
	mu      sync.Mutex
	tree    *sitter.Tree
	text    string
	removed bool
}

// Lock acquires exclusive access to the entry.
func (e *Entry) Lock() { e.mu.Lock() }

// Unlock releases the entry.
func (e *Entry) Unlock() { e.mu.Unlock() }

// Tree returns the entry's tree. The entry must be locked; the tree stays owned
// by the entry.
func (e *Entry) Tree() *sitter.Tree { return e.tree }

// Text returns the text the tree was parsed from. The entry must be locked.
func (e *Entry) Text() string { return e.text }

// Live reports whether the entry still belongs to the store and holds a tree.
// The entry must be locked.
func (e *Entry) Live() bool { return !e.removed && e.tree != nil }

// Replace installs tree and text and closes the previous tree.
// The entry must be locked.
func (e *Entry) Replace(tree *sitter.Tree, text string) {
	if e.tree != nil && e.tree != tree {
		e.tree.Close()
	}
	e.tree = tree
	e.text = text
}

// release closes the tree and marks the entry detached. The entry must be locked.
func (e *Entry) release() {
	if e.tree != nil {
		e.tree.Close()
		e.tree = nil
	}
	e.text = ""
	e.removed = true
}

type shard struct {
	sync.RWMutex
	entries map[statement.ID]*Entry
}

// Store maps statement IDs to entries.
type Store struct {
	shards []*shard
}

// New creates a store with n shards; n <= 0 selects DefaultShards.
func New(n int) *Store {
	if n <= 0 {
		n = DefaultShards
	}
	s := &Store{shards: make([]*shard, n)}
	for i := range s.shards {
		s.shards[i] = &shard{entries: make(map[statement.ID]*Entry)}
	}
	return s
}

func (s *Store) shardFor(id statement.ID) *shard {
	// Random UUIDs are uniformly distributed, so the leading bytes are enough.
	h := uint32(id[0])<<24 | uint32(id[1])<<16 | uint32(id[2])<<8 | uint32(id[3])
	return s.shards[h%uint32(len(s.shards))]
}

// Get returns the entry for id.
func (s *Store) Get(id statement.ID) (*Entry, bool) {
	sh := s.shardFor(id)
	sh.RLock()
	defer sh.RUnlock()
	e, ok := sh.entries[id]
	return e, ok
}

// Put stores tree and text for id, replacing and closing any previous tree.
// The store takes ownership of tree.
func (s *Store) Put(id statement.ID, tree *sitter.Tree, text string) {
	for {
		e := s.getOrCreate(id)
		e.Lock()
		if e.removed {
			// Deleted between lookup and lock; retry against a fresh entry.
			e.Unlock()
			continue
		}
		e.Replace(tree, text)
		e.Unlock()
		return
	}
}

func (s *Store) getOrCreate(id statement.ID) *Entry {
	sh := s.shardFor(id)
	sh.Lock()
	defer sh.Unlock()
	e, ok := sh.entries[id]
	if !ok {
		e = &Entry{}
		sh.entries[id] = e
		logger.DebugTagf("cache", "Created entry for statement %s", id)
	}
	return e
}

// Delete removes the entry for id and frees its tree. It reports whether an
// entry existed.
func (s *Store) Delete(id statement.ID) bool {
	sh := s.shardFor(id)
	sh.Lock()
	e, ok := sh.entries[id]
	delete(sh.entries, id)
	sh.Unlock()

	if !ok {
		return false
	}
	// Waits for an edit in flight on this statement to finish.
	e.Lock()
	e.release()
	e.Unlock()
	logger.DebugTagf("cache", "Removed entry for statement %s", id)
	return true
}

// Len returns the number of entries.
func (s *Store) Len() int {
	n := 0
	for _, sh := range s.shards {
		sh.RLock()
		n += len(sh.entries)
		sh.RUnlock()
	}
	return n
}

// IDs returns the IDs of every entry in no particular order.
func (s *Store) IDs() []statement.ID {
	var ids []statement.ID
	for _, sh := range s.shards {
		sh.RLock()
		for id := range sh.entries {
			ids = append(ids, id)
		}
		sh.RUnlock()
	}
	return ids
}

// Clear removes every entry and frees its tree.
func (s *Store) Clear() {
	for _, id := range s.IDs() {
		s.Delete(id)
	}
}
