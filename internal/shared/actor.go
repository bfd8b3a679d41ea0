package shared

import "github.com/google/uuid"

// Role identifies what kind of account a request acts as.
type Role string

const (
	RoleStudent    Role = "student"
	RoleRestaurant Role = "restaurant"
	RoleAdmin      Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleRestaurant, RoleAdmin:
		return true
	}
	return false
}

// Actor is the explicit acting subject of a request. Admin "view as"
// sets OnBehalfOf for the scope of a single request; services read
// EffectiveID instead of any ambient/global impersonation state.
type Actor struct {
	SubjectID  uuid.UUID
	Role       Role
	OnBehalfOf *uuid.UUID
}

// EffectiveID returns the subject an operation should be performed for:
// the impersonated subject when an admin is acting on behalf of one,
// otherwise the actor itself.
func (a Actor) EffectiveID() uuid.UUID {
	if a.Role == RoleAdmin && a.OnBehalfOf != nil {
		return *a.OnBehalfOf
	}
	return a.SubjectID
}

// IsAdmin reports whether the actor authenticated as an admin,
// regardless of impersonation.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
