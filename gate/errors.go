package gate

import "errors"

// ErrUnauthorized is returned when a session lacks a required permission.
var ErrUnauthorized = errors.New("unauthorized")

// Require returns ErrUnauthorized unless the set grants the permission.
func Require(s Set, p Permission) error {
	if !s.Has(p) {
		return ErrUnauthorized
	}
	return nil
}
