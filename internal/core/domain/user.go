package domain

import "time"

const (
	RoleCustomer = "customer"
	RoleFarmer   = "farmer"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	return role == RoleCustomer || role == RoleFarmer || role == RoleAdmin
}

// User models a registered account: a customer reserving produce, a farmer
// selling it, or an admin.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity carries the verified claims extracted from an access token. It is
// immutable, lives for the duration of one request, and is never persisted.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshIdentity is the reduced claim set embedded in refresh tokens; it is
// only ever used to mint a new access/refresh pair.
type RefreshIdentity struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
