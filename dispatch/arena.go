package dispatch

import (
	"sync"
	"sync/atomic"
)

const chunkSize = 64

type (
	// Arena holds the specialization state of all call sites that are created by one
	// evaluation context. A call site owns one slot, addressed by index. The state in a
	// slot is never modified. A transition stores a new state in the slot and readers
	// will see either the old or the new state. Concurrent transitions of the same slot
	// are resolved by the last store.
	Arena struct {
		lock   sync.Mutex
		size   int
		chunks atomic.Pointer[[]*chunk]
	}

	chunk [chunkSize]atomic.Pointer[slot]

	slot struct {
		state state
	}
)

func NewArena() *Arena {
	a := &Arena{}
	a.chunks.Store(&[]*chunk{})
	return a
}

// Alloc allocates a new slot and returns its index. The slot starts out uninitialized.
func (a *Arena) Alloc() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	i := a.size
	if i%chunkSize == 0 {
		old := *a.chunks.Load()
		grown := make([]*chunk, len(old), len(old)+1)
		copy(grown, old)
		grown = append(grown, &chunk{})
		a.chunks.Store(&grown)
	}
	a.size++
	return i
}

// Len returns the number of allocated slots
func (a *Arena) Len() int {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.size
}

func (a *Arena) load(i int) state {
	if s := (*a.chunks.Load())[i/chunkSize][i%chunkSize].Load(); s != nil {
		return s.state
	}
	return uninitialized
}

func (a *Arena) store(i int, s state) {
	(*a.chunks.Load())[i/chunkSize][i%chunkSize].Store(&slot{s})
}

// Reset returns all slots to the uninitialized state
func (a *Arena) Reset() {
	a.lock.Lock()
	defer a.lock.Unlock()
	for _, c := range *a.chunks.Load() {
		for i := range c {
			c[i].Store(nil)
		}
	}
}
