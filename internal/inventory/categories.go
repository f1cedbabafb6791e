package inventory

import (
	"sync"

	"github.com/google/btree"
)

// CategorySet is the ordered set of known category names. It only grows.
type CategorySet struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[string]
}

func NewCategorySet(names ...string) *CategorySet {
	s := &CategorySet{tree: btree.NewOrderedG[string](8)}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name and reports whether it was new. Empty names are ignored.
func (s *CategorySet) Add(name string) bool {
	if name == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, replaced := s.tree.ReplaceOrInsert(name)
	return !replaced
}

// List returns the names in ascending order
func (s *CategorySet) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, s.tree.Len())
	s.tree.Ascend(func(n string) bool {
		names = append(names, n)
		return true
	})
	return names
}
