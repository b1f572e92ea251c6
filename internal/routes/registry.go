package routes

// Registry collects the resources an entrypoint serves. Registration
// is explicit and order-preserving; conflict detection happens when the
// dispatcher builds its routing table, so the registry itself is pure
// bookkeeping.
type Registry struct {
	resources []Resource
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Add registers a resource. Call order is preserved.
func (r *Registry) Add(resource Resource) {
	r.resources = append(r.resources, resource)
}

// Resources returns the registered resources in registration order
func (r *Registry) Resources() []Resource {
	return r.resources
}
