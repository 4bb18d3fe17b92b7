package models

import "time"

// UserRole is the platform role. A buyer is promoted to seller when an
// application is approved and a shop is created.
type UserRole string

const (
	UserRoleBuyer  UserRole = "BUYER"
	UserRoleSeller UserRole = "SELLER"
	UserRoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
