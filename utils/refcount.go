// ABOUTME: This file implements a reference-counted on/off switch
// ABOUTME: Engage fires on the 0 to 1 transition, disengage on 1 to 0

package utils

import "sync"

// RefCount coordinates a shared resource that multiple independent holders
// can request. The engage callback runs when the first holder acquires and
// disengage when the last one releases, so nested or overlapping holders
// never toggle the resource twice.
type RefCount struct {
	mu        sync.Mutex
	count     int
	engage    func()
	disengage func()
}

// NewRefCount creates a counter with the given transition callbacks.
// Either callback may be nil.
func NewRefCount(engage, disengage func()) *RefCount {
	return &RefCount{engage: engage, disengage: disengage}
}

// Acquire takes one reference and returns its release function. The release
// function is idempotent; calling it more than once only drops the one
// reference it belongs to.
func (r *RefCount) Acquire() (release func()) {
	r.mu.Lock()
	r.count++
	if r.count == 1 && r.engage != nil {
		r.engage()
	}
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.count--
			if r.count == 0 && r.disengage != nil {
				r.disengage()
			}
		})
	}
}

// Active reports whether at least one holder currently has a reference.
func (r *RefCount) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count > 0
}
