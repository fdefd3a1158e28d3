package registry

import (
	"github.com/vk/rigcompose/internal/model"
)

// Registry holds the loaded fragment definitions for a single application
// instance, keyed by hardware role.
type Registry struct {
	fragments map[model.Role]*model.Fragment
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		fragments: make(map[model.Role]*model.Fragment),
	}
}

// Fragment returns the definition for a role, if one was loaded.
func (r *Registry) Fragment(role model.Role) (*model.Fragment, bool) {
	f, ok := r.fragments[role]
	return f, ok
}

// Roles returns the loaded roles in canonical composition order. Roles with
// no loaded definition are omitted.
func (r *Registry) Roles() []model.Role {
	var roles []model.Role
	for _, role := range model.CompositionOrder() {
		if _, ok := r.fragments[role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}

// Len returns the number of loaded fragment definitions.
func (r *Registry) Len() int {
	return len(r.fragments)
}
