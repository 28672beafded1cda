// Package di is a small service container. Values are registered eagerly or
// as factories; a factory runs on first Get and its result is kept.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry resolves services by name.
type ServiceRegistry interface {
	Get(name string) any
	Lookup(name string) (any, bool)
}

// Container is a ServiceRegistry that also accepts registrations.
type Container interface {
	ServiceRegistry
	Register(name string, service any)
	RegisterFactory(name string, factory func(ServiceRegistry) any)
	Names() []string
}

type container struct {
	mu        sync.Mutex
	services  map[string]any
	factories map[string]func(ServiceRegistry) any
	order     []string
	resolving map[string]bool
}

// NewContainer returns an empty container.
func NewContainer() Container {
	return &container{
		services:  make(map[string]any),
		factories: make(map[string]func(ServiceRegistry) any),
		resolving: make(map[string]bool),
	}
}

// Register stores a ready-made service, replacing any earlier registration.
func (c *container) Register(name string, service any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.track(name)
	delete(c.factories, name)
	c.services[name] = service
}

// RegisterFactory stores a constructor that runs once, on first Get.
func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.track(name)
	delete(c.services, name)
	c.factories[name] = factory
}

// Get resolves name and panics when it is not registered. Factories may call
// Get for their own dependencies; a dependency cycle panics.
func (c *container) Get(name string) any {
	s, ok := c.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("di: service %q is not registered", name))
	}
	return s
}

func (c *container) Lookup(name string) (any, bool) {
	c.mu.Lock()
	if s, ok := c.services[name]; ok {
		c.mu.Unlock()
		return s, true
	}
	factory, ok := c.factories[name]
	if !ok {
		c.mu.Unlock()
		return nil, false
	}
	if c.resolving[name] {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: dependency cycle while resolving %q", name))
	}
	c.resolving[name] = true
	c.mu.Unlock()

	// the lock is released so the factory can resolve its own dependencies
	s := factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.resolving, name)
	if existing, ok := c.services[name]; ok {
		return existing, true
	}
	delete(c.factories, name)
	c.services[name] = s
	return s, true
}

// Names lists registrations in the order they were first made.
func (c *container) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}

func (c *container) track(name string) {
	if _, ok := c.services[name]; ok {
		return
	}
	if _, ok := c.factories[name]; ok {
		return
	}
	c.order = append(c.order, name)
}
