package services

import "looped/internal/models"

// Session is the caller identity resolved from a request credential. It is a
// closed value type: the zero value is the anonymous session, anything else
// carries the user ID and role baked into the token.
type Session struct {
	UserID string
	Role   models.Role
}

// Anonymous is the session of an unauthenticated caller.
var Anonymous = Session{}

// Authenticated reports whether the session belongs to a signed-in user.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// IsSuperadmin reports whether the session belongs to the store operator.
func (s Session) IsSuperadmin() bool {
	return s.Authenticated() && s.Role == models.RoleSuperadmin
}
