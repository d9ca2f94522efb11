package gate

import "strings"

// Permission is a "resource:action" pair. Either side may be the wildcard
// "*"; "*:*" grants everything.
type Permission string

func (p Permission) parts() (string, string) {
	s := string(p)
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

// Matches reports whether p (a granted permission, possibly with wildcards)
// covers the requested permission.
func (p Permission) Matches(requested Permission) bool {
	gr, ga := p.parts()
	rr, ra := requested.parts()
	if gr != "*" && gr != rr {
		return false
	}
	return ga == "*" || ga == ra
}
