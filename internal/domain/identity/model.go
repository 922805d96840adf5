package identity

import "time"

// Role represents a platform role attached to a user.
type Role string

const (
	RoleArtist   Role = "artist"
	RoleStudio   Role = "studio"
	RoleProducer Role = "producer"
	RoleAdmin    Role = "admin"
)

// IsValid reports whether the role is one of the known platform roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleArtist, RoleStudio, RoleProducer, RoleAdmin:
		return true
	default:
		return false
	}
}

// User represents a platform account with its roles.
type User struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Handle      string    `json:"handle"`
	DisplayName string    `json:"display_name,omitempty"`
	Roles       []Role    `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
