package index

import (
	"fmt"
	"sort"
	"sync"
)

// Results is the shared result index. Every build writes into one
// generation; Reset starts a new generation and drops everything, so
// inserts still in flight from a superseded build are discarded.
type Results struct {
	mu      sync.Mutex
	gen     uint64
	entries map[uint32]Result
}

// NewResults creates an empty index at generation 0.
func NewResults() *Results {
	return &Results{entries: make(map[uint32]Result)}
}

// Reset clears the index and returns the new generation.
func (r *Results) Reset() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	r.entries = make(map[uint32]Result)
	return r.gen
}

// Generation returns the current generation.
func (r *Results) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Insert stores res under id if gen is still current and reports whether
// it did. Two inserts for the same id within one generation mean the index
// is corrupt, and Insert panics.
func (r *Results) Insert(gen uint64, id uint32, res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	if _, dup := r.entries[id]; dup {
		panic(fmt.Sprintf("index: result id %d inserted twice in generation %d", id, gen))
	}
	r.entries[id] = res
	return true
}

// PutNotice writes the notice row (id 0) synchronously, replacing any
// previous notice of generation gen. It reports false if gen is stale.
func (r *Results) PutNotice(gen uint64, res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return false
	}
	res.Payload.ID = NoticeID
	r.entries[NoticeID] = res
	return true
}

// Get returns the result stored under id.
func (r *Results) Get(id uint32) (Result, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.entries[id]
	return res, ok
}

// Len returns the number of stored results, the notice included.
func (r *Results) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// IDs returns the stored ids in ascending order.
func (r *Results) IDs() []uint32 {
	r.mu.Lock()
	ids := make([]uint32, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	r.mu.Unlock()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
