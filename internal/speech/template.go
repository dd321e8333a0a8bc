package speech

import (
	"fmt"
	"sync"
)

// Template is a named, weighted group of alternative patterns gated by
// named conditions. An empty Conditions list is always applicable.
type Template struct {
	ID         string   `json:"id"`
	Intent     string   `json:"intent,omitempty"`
	Patterns   []string `json:"patterns"`
	Conditions []string `json:"conditions,omitempty"`
	Weight     float64  `json:"weight"`
}

// Registry maps template id to definition. Populated at startup, safe to
// mutate at runtime via Add. Iteration order is insertion order so seeded
// selection stays deterministic.
type Registry struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*Template
}

// NewRegistry returns an empty template registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Template)}
}

// Add validates and stores a template. Re-adding an id replaces the
// definition but keeps its position.
func (r *Registry) Add(t Template) error {
	if t.ID == "" {
		return fmt.Errorf("template id is empty")
	}
	if len(t.Patterns) == 0 {
		return fmt.Errorf("template %s has no patterns", t.ID)
	}
	if t.Weight <= 0 {
		return fmt.Errorf("template %s weight must be positive, got %v", t.ID, t.Weight)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[t.ID]; !exists {
		r.order = append(r.order, t.ID)
	}
	cp := t
	r.byID[t.ID] = &cp
	return nil
}

// Get returns a copy of the template with the given id.
func (r *Registry) Get(id string) (Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return Template{}, false
	}
	return *t, true
}

// ByIntent returns templates matching intent, in insertion order. An empty
// intent matches everything; a template with an empty intent matches any
// requested intent.
func (r *Registry) ByIntent(intent string) []Template {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Template, 0, len(r.order))
	for _, id := range r.order {
		t := r.byID[id]
		if intent == "" || t.Intent == "" || t.Intent == intent {
			out = append(out, *t)
		}
	}
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Predicate is a named pure condition over the variable context.
type Predicate func(Vars) bool

// Conditions maps predicate name to function. Populated at startup,
// mutable via Register.
type Conditions struct {
	mu  sync.RWMutex
	fns map[string]Predicate
}

// NewConditions returns an empty condition registry.
func NewConditions() *Conditions {
	return &Conditions{fns: make(map[string]Predicate)}
}

// Register stores a predicate under name, replacing any previous one.
func (c *Conditions) Register(name string, fn Predicate) {
	if name == "" || fn == nil {
		return
	}
	c.mu.Lock()
	c.fns[name] = fn
	c.mu.Unlock()
}

// Eval runs the named predicate. Unknown names report known=false.
func (c *Conditions) Eval(name string, v Vars) (value, known bool) {
	c.mu.RLock()
	fn := c.fns[name]
	c.mu.RUnlock()
	if fn == nil {
		return false, false
	}
	return fn(v), true
}
