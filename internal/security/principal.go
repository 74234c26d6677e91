package security

// Principal is the authenticated identity attached to a request after token
// verification. It lives only for the duration of one request.
type Principal struct {
	Username string
	Roles    []string
}

// HasRole reports whether the principal carries the given role name.
func (p *Principal) HasRole(role string) bool {
	if p == nil {
		return false
	}
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}
