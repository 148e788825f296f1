package profession

// Registry provides lookup of professions by code.
type Registry struct {
	professions map[Code]*Profession
}

// NewRegistry returns a Registry holding the given professions.
//
// Postcondition: Returns a non-nil *Registry; later entries with a repeated code win.
func NewRegistry(professions ...*Profession) *Registry {
	r := &Registry{professions: make(map[Code]*Profession, len(professions))}
	for _, p := range professions {
		r.Register(p)
	}
	return r
}

// DefaultRegistry returns a Registry populated with Defaults.
func DefaultRegistry() *Registry {
	return NewRegistry(Defaults()...)
}

// Register adds a Profession to the registry.
//
// Precondition: p must be non-nil.
// Postcondition: p is retrievable via Profession using p.Code();
// if called multiple times with the same code, the last call wins.
func (r *Registry) Register(p *Profession) {
	if p == nil {
		panic("Registry.Register: precondition violated: profession must be non-nil")
	}
	r.professions[p.code] = p
}

// Profession returns the Profession for code, if registered.
func (r *Registry) Profession(code Code) (*Profession, bool) {
	p, ok := r.professions[code]
	return p, ok
}

// All returns the registered professions in canonical code order.
func (r *Registry) All() []*Profession {
	out := make([]*Profession, 0, len(r.professions))
	for _, c := range Codes() {
		if p, ok := r.professions[c]; ok {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of registered professions.
func (r *Registry) Len() int {
	return len(r.professions)
}
