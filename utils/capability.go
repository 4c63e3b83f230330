// ABOUTME: This file implements lazy capability probing with a fallback
// ABOUTME: The probe runs once; failures degrade to a caller-supplied default

package utils

import "sync"

// Capability lazily probes for an optional facility (a camera, a writable
// state directory) and falls back to a default when the probe fails. The
// probe runs at most once, on first use.
type Capability[T any] struct {
	once     sync.Once
	probe    func() (T, error)
	fallback T

	value     T
	available bool
}

// NewCapability creates a capability with the given probe and fallback.
func NewCapability[T any](probe func() (T, error), fallback T) *Capability[T] {
	return &Capability[T]{probe: probe, fallback: fallback}
}

// Get returns the probed value, or the fallback when probing failed.
func (c *Capability[T]) Get() T {
	c.resolve()
	if c.available {
		return c.value
	}
	return c.fallback
}

// Available reports whether the probe succeeded.
func (c *Capability[T]) Available() bool {
	c.resolve()
	return c.available
}

func (c *Capability[T]) resolve() {
	c.once.Do(func() {
		value, err := c.probe()
		if err == nil {
			c.value = value
			c.available = true
		}
	})
}
