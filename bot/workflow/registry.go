package workflow

import (
	"fmt"
	"strings"
	"sync"
)

// Tag names a workflow kind that can be active on a conversation, e.g.
// "CreateTask". Tags are registered once at startup and never mutated.
type Tag struct {
	name string
}

func (t Tag) String() string { return t.name }

// Registry holds the process's workflow tags. It is an explicit instance
// passed to whoever needs lookup rather than a package-global table, so
// registration order and failure stay testable.
type Registry struct {
	mu   sync.RWMutex
	tags map[string]Tag
}

func NewRegistry() *Registry {
	return &Registry{tags: make(map[string]Tag)}
}

// Register adds a tag under the given name. Names are unique
// case-insensitively; registering a duplicate fails.
func (r *Registry) Register(name string) (Tag, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Tag{}, fmt.Errorf("empty workflow tag name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.tags[key]; ok {
		return Tag{}, fmt.Errorf("workflow tag already registered: %s", existing.name)
	}

	tag := Tag{name: strings.TrimSpace(name)}
	r.tags[key] = tag
	return tag, nil
}

// Lookup resolves a registered tag by name, case-insensitively.
func (r *Registry) Lookup(name string) (Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tag, ok := r.tags[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Tag{}, fmt.Errorf("workflow tag not registered: %s", name)
	}
	return tag, nil
}
