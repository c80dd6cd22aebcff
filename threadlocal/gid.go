// Package threadlocal provides storage that is local to a goroutine. The evaluator uses it
// to make the current evaluation context available to code that is not passed a context.
package threadlocal

import (
	"bytes"
	"fmt"
	"runtime"
	"strconv"
	"sync"
)

var goroutinePrefix = []byte(`goroutine `)

// storage maps goroutine ids to the local variables of the goroutine
var storage sync.Map

type locals struct {
	lock sync.RWMutex
	vars map[string]interface{}
}

// gid returns the id of the current goroutine by parsing the first line of its stack trace
func gid() uint64 {
	var buf [64]byte
	b := buf[:runtime.Stack(buf[:], false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	if i := bytes.IndexByte(b, ' '); i > 0 {
		if id, err := strconv.ParseUint(string(b[:i]), 10, 64); err == nil {
			return id
		}
	}
	panic(fmt.Errorf(`unable to retrieve id of current go routine`))
}

// GoroutineID returns the id of the current goroutine. The id is never zero.
func GoroutineID() uint64 {
	return gid()
}

// Initialized returns true if the local storage of the current goroutine exists
func Initialized() bool {
	_, ok := current()
	return ok
}

func current() (*locals, bool) {
	if ls, ok := storage.Load(gid()); ok {
		return ls.(*locals), true
	}
	return nil, false
}

// Init initializes the local storage of the current goroutine. Existing variables are discarded.
func Init() {
	storage.Store(gid(), &locals{vars: make(map[string]interface{}, 4)})
}

// Cleanup deletes the local storage of the current goroutine
func Cleanup() {
	storage.Delete(gid())
}

// Get returns a variable from the local storage of the current goroutine
func Get(key string) (interface{}, bool) {
	if ls, ok := current(); ok {
		ls.lock.RLock()
		defer ls.lock.RUnlock()
		v, found := ls.vars[key]
		return v, found
	}
	return nil, false
}

// Set adds or replaces a variable in the local storage of the current goroutine. It panics
// if the storage has not been initialized.
func Set(key string, value interface{}) {
	ls, ok := current()
	if !ok {
		panic(`thread local not initialized for current go routine`)
	}
	ls.lock.Lock()
	ls.vars[key] = value
	ls.lock.Unlock()
}

// Delete deletes a variable from the local storage of the current goroutine
func Delete(key string) {
	if ls, ok := current(); ok {
		ls.lock.Lock()
		delete(ls.vars, key)
		ls.lock.Unlock()
	}
}

// Go executes the given function in a new goroutine with initialized local storage. The
// storage is deleted when the function returns or panics.
func Go(f func()) {
	go func() {
		defer Cleanup()
		Init()
		f()
	}()
}
