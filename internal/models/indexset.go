package models

import (
	"encoding/json"
	"sort"
)

// IndexSet is a deduplicated set of sentence indices that serializes as a
// sorted JSON array, so output ordering is reproducible across runs
// regardless of insertion order.
type IndexSet struct {
	values []int
}

// NewIndexSet creates an IndexSet containing the given indices.
func NewIndexSet(indices ...int) IndexSet {
	var s IndexSet
	for _, i := range indices {
		s.Add(i)
	}
	return s
}

// Add inserts an index, keeping the set sorted. Idempotent on repeats.
func (s *IndexSet) Add(index int) {
	pos := sort.SearchInts(s.values, index)
	if pos < len(s.values) && s.values[pos] == index {
		return
	}
	s.values = append(s.values, 0)
	copy(s.values[pos+1:], s.values[pos:])
	s.values[pos] = index
}

// Contains reports whether index is in the set.
func (s *IndexSet) Contains(index int) bool {
	pos := sort.SearchInts(s.values, index)
	return pos < len(s.values) && s.values[pos] == index
}

// Len returns the number of distinct indices.
func (s *IndexSet) Len() int {
	return len(s.values)
}

// Values returns the indices in ascending order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *IndexSet) Values() []int {
	out := make([]int, len(s.values))
	copy(out, s.values)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s IndexSet) MarshalJSON() ([]byte, error) {
	if s.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.values)
}

// UnmarshalJSON decodes an array of indices, deduplicating and sorting.
func (s *IndexSet) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.values = nil
	for _, i := range raw {
		s.Add(i)
	}
	return nil
}
