package models

import "time"

// Role is the authorization role attached to a user.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Profile holds the user's personal details.
type Profile struct {
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Phone       string     `json:"phone,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// User defines the user model based on the 'users' table. The hashed
// password is excluded from every JSON representation.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      Role      `json:"role" db:"role"`
	Profile   Profile   `json:"profile" db:"profile"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// OwnerRef is the display-relevant subset of a user embedded in resource
// responses. Never includes credentials.
type OwnerRef struct {
	ID      int64   `json:"id"`
	Email   string  `json:"email"`
	Profile Profile `json:"profile"`
}

// Ref returns the embeddable reference for this user.
func (u *User) Ref() OwnerRef {
	return OwnerRef{ID: u.ID, Email: u.Email, Profile: u.Profile}
}
