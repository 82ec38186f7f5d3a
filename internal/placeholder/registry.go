package placeholder

import "sort"

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{hooks: make(map[string]Hook)}
}

// Register stores hook under key, replacing any previous hook.
func (r *Registry) Register(key string, hook Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks[key] = hook
}

// Unregister removes the hook stored under key.
func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.hooks, key)
}

// Get returns the hook stored under key.
func (r *Registry) Get(key string) (Hook, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hook, ok := r.hooks[key]
	return hook, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.hooks))
	for k := range r.hooks {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
