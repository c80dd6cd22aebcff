package dispatch

import (
	"sync"
	"testing"
)

func TestArenaAlloc(t *testing.T) {
	a := NewArena()
	for k := 0; k < 3*chunkSize+5; k++ {
		if s := a.Alloc(); s != k {
			t.Fatalf(`expected slot %d, got %d`, k, s)
		}
	}
	if a.Len() != 3*chunkSize+5 {
		t.Errorf(`unexpected length %d`, a.Len())
	}
	if a.load(3*chunkSize+4) != uninitialized {
		t.Error(`expected a new slot to be uninitialized`)
	}
}

func TestArenaStoreAndReset(t *testing.T) {
	a := NewArena()
	s0 := a.Alloc()
	s1 := a.Alloc()
	st := &stableBuiltinState{}
	a.store(s1, st)
	if a.load(s1) != st {
		t.Error(`expected the stored state`)
	}
	if a.load(s0).strategy() != Uninitialized {
		t.Error(`expected other slots to be unaffected`)
	}
	a.Reset()
	if a.load(s1) != uninitialized {
		t.Error(`expected reset to clear all slots`)
	}
}

func TestArenaConcurrentAlloc(t *testing.T) {
	a := NewArena()
	const n = 500
	seen := make([]bool, n)
	var lock sync.Mutex
	var wg sync.WaitGroup
	for k := 0; k < n; k++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := a.Alloc()
			a.store(s, &genericState{})
			lock.Lock()
			seen[s] = true
			lock.Unlock()
		}()
	}
	wg.Wait()
	for k, ok := range seen {
		if !ok {
			t.Fatalf(`slot %d was never allocated`, k)
		}
		if a.load(k).strategy() != Generic {
			t.Fatalf(`slot %d lost its state`, k)
		}
	}
}

func TestStrategyString(t *testing.T) {
	expected := map[Strategy]string{
		Uninitialized: `uninitialized`,
		SimpleBuiltin: `simple builtin`,
		StableBuiltin: `stable builtin`,
		Generic:       `generic`,
		GenericDots:   `generic dots`,
	}
	for s, str := range expected {
		if s.String() != str {
			t.Errorf(`expected %s, got %s`, str, s)
		}
	}
}
