// Package users implements the user domain for Calyx. It provides account
// management with bcrypt password hashing and acts as the credential store
// for HTTP Basic authentication.
package users

import (
	"time"

	"github.com/google/uuid"
)

// Roles assignable to a user.
const (
	RoleBotanist   = "botanist"
	RoleResearcher = "researcher"
)

// User represents a service account. The password hash never leaves the
// repository layer.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	RealName  string    `json:"real_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new user.
type CreateCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	RealName string `json:"real_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SetPasswordCommand carries a replacement password for an existing user.
type SetPasswordCommand struct {
	Password string `json:"password"`
}

// ValidRole reports whether role names a known role.
func ValidRole(role string) bool {
	return role == RoleBotanist || role == RoleResearcher
}
