package models

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStore Role = "store"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStore || r == RoleUser
}

// Actor is the authenticated caller of an operation. A nil *Actor is a guest.
type Actor struct {
	UserID          string `json:"user_id"`
	Role            Role   `json:"role"`
	PasswordChanged bool   `json:"password_changed"`
}

func (a *Actor) Is(role Role) bool {
	return a != nil && a.Role == role
}
