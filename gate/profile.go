package gate

import "context"

// Profile is a named set of granted permissions.
type Profile interface {
	Name() string
	Has(Permission) bool
}

// StaticProfile is a simple in-memory Profile.
type StaticProfile struct {
	name    string
	granted []Permission
}

func NewStaticProfile(name string, granted ...Permission) *StaticProfile {
	return &StaticProfile{name: name, granted: granted}
}

func (p *StaticProfile) Name() string { return p.name }

func (p *StaticProfile) Has(requested Permission) bool {
	for _, g := range p.granted {
		if g.Matches(requested) {
			return true
		}
	}
	return false
}

// StaticResolver maps subjects to fixed profiles; useful in tests.
type StaticResolver[U comparable] struct {
	profiles map[U]Profile
}

func NewStaticResolver[U comparable]() *StaticResolver[U] {
	return &StaticResolver[U]{profiles: make(map[U]Profile)}
}

func (r *StaticResolver[U]) Set(subject U, profile Profile) { r.profiles[subject] = profile }

func (r *StaticResolver[U]) Resolve(_ context.Context, subject U) (Profile, error) {
	return r.profiles[subject], nil
}
