// Package builtins contains the builtin registry and the standard builtins
package builtins

import (
	"sort"
	"sync"

	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/rcall/eval"
	"github.com/lyraproj/rcall/types"
	"github.com/lyraproj/semver/semver"
)

type (
	// Registry maps names to builtins. Each builtin is registered with the range of
	// language versions in which it is available and a lookup only finds builtins that
	// are available in the language version of the registry.
	Registry struct {
		lock     sync.RWMutex
		version  semver.Version
		builtins map[string]*registration
	}

	registration struct {
		builtin   *types.Builtin
		available semver.VersionRange
	}
)

// NewRegistry creates an empty registry for the given language version
func NewRegistry(version semver.Version) *Registry {
	return &Registry{version: version, builtins: make(map[string]*registration, 16)}
}

// Version returns the language version of the registry
func (r *Registry) Version() semver.Version {
	return r.version
}

// Register adds a builtin that is available in the language versions matched by the given
// range, e.g. ">=2.15.0". A builtin registered under an existing name replaces it.
func (r *Registry) Register(b *types.Builtin, available string) error {
	vr, err := semver.ParseVersionRange(available)
	if err != nil {
		return eval.Error(nil, eval.ConfigError, issue.H{`detail`: err.Error()})
	}
	r.lock.Lock()
	r.builtins[b.Name()] = &registration{b, vr}
	r.lock.Unlock()
	return nil
}

// Lookup returns the builtin with the given name if it is available
func (r *Registry) Lookup(name string) (*types.Builtin, bool) {
	r.lock.RLock()
	reg, ok := r.builtins[name]
	r.lock.RUnlock()
	if ok && reg.available.Includes(r.version) {
		return reg.builtin, true
	}
	return nil, false
}

// Names returns the sorted names of all available builtins
func (r *Registry) Names() []string {
	r.lock.RLock()
	names := make([]string, 0, len(r.builtins))
	for n, reg := range r.builtins {
		if reg.available.Includes(r.version) {
			names = append(names, n)
		}
	}
	r.lock.RUnlock()
	sort.Strings(names)
	return names
}
