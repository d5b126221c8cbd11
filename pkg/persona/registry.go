package persona

import "strings"

// Profile is a named system-prompt persona. Profiles are immutable and
// defined at process start; the prompt text is opaque to the rest of the
// core and only ever handed to the generation provider.
type Profile struct {
	ID           string
	Name         string
	Description  string
	SystemPrompt string
}

// DefaultID is the profile used whenever resolution finds nothing better.
const DefaultID = "default"

// Registry is the static persona catalog. Lookup never fails: unknown keys
// resolve to the default profile.
type Registry struct {
	profiles map[string]Profile
	order    []string
}

func NewRegistry() *Registry {
	r := &Registry{profiles: map[string]Profile{}}
	for _, p := range catalog {
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Get returns the profile for key, or the default profile for unknown keys.
func (r *Registry) Get(key string) Profile {
	if p, ok := r.profiles[normalizeKey(key)]; ok {
		return p
	}
	return r.profiles[DefaultID]
}

// Known reports whether key names a catalog profile.
func (r *Registry) Known(key string) bool {
	_, ok := r.profiles[normalizeKey(key)]
	return ok
}

// Resolve picks a profile: an explicit recognized request wins, then a
// recognized stored preference, then the default. Unrecognized keys at any
// stage are skipped, not errors.
func (r *Registry) Resolve(requested, userPreference string) Profile {
	if p, ok := r.profiles[normalizeKey(requested)]; ok {
		return p
	}
	if p, ok := r.profiles[normalizeKey(userPreference)]; ok {
		return p
	}
	return r.profiles[DefaultID]
}

// List returns every profile in catalog order.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
