package acronyms

import "sort"

// Table maps each distinct candidate to the number of times it was seen.
type Table map[Candidate]int64

// Entry is one ranked row of a Table.
type Entry struct {
	Candidate
	Count int64
}

// NewTable creates an empty frequency table.
func NewTable() Table {
	return make(Table)
}

// Add increments the count for c by n.
func (t Table) Add(c Candidate, n int64) {
	t[c] += n
}

// AddAll counts every candidate once.
func (t Table) AddAll(cands []Candidate) {
	for _, c := range cands {
		t[c]++
	}
}

// Merge folds other into t.
func (t Table) Merge(other Table) {
	for c, n := range other {
		t[c] += n
	}
}

// Count returns the count for c, zero if absent.
func (t Table) Count(c Candidate) int64 {
	return t[c]
}

// Len returns the number of distinct candidates.
func (t Table) Len() int {
	return len(t)
}

// Total returns the sum of all counts.
func (t Table) Total() int64 {
	var total int64
	for _, n := range t {
		total += n
	}
	return total
}

// Entries returns every row ranked by count, then acronym, then expansion.
func (t Table) Entries() []Entry {
	entries := make([]Entry, 0, len(t))
	for c, n := range t {
		entries = append(entries, Entry{Candidate: c, Count: n})
	}
	SortEntries(entries)
	return entries
}

// Top returns the k most frequent rows. k <= 0 returns all of them.
func (t Table) Top(k int) []Entry {
	entries := t.Entries()
	if k > 0 && len(entries) > k {
		entries = entries[:k]
	}
	return entries
}

// ByAcronym groups ranked rows under their acronym, so the most common
// expansion for an acronym comes first.
func (t Table) ByAcronym() map[string][]Entry {
	groups := make(map[string][]Entry)
	for _, e := range t.Entries() {
		groups[e.Acronym] = append(groups[e.Acronym], e)
	}
	return groups
}

// SortEntries orders rows by count desc, then acronym, then expansion.
func SortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Acronym != b.Acronym {
			return a.Acronym < b.Acronym
		}
		return a.Expansion < b.Expansion
	})
}
