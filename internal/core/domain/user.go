package domain

import "time"

// AuthProvider identifies how a user signs in.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents a user of the application in the domain.
type User struct {
	UserID         string       `json:"userID" db:"user_id"`
	Name           string       `json:"name" db:"name"`
	Email          string       `json:"email" db:"email"`
	PasswordHash   *string      `json:"-" db:"password_hash"`
	AuthProvider   AuthProvider `json:"authProvider" db:"auth_provider"`
	ProviderUserID *string      `json:"-" db:"provider_user_id"`
	EmailVerified  bool         `json:"emailVerified" db:"email_verified"`
	IsAdmin        bool         `json:"isAdmin" db:"is_admin"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty" db:"deleted_at"` // Used for soft delete
}

// Caller is the authenticated identity an operation runs on behalf of.
type Caller struct {
	UserID        string
	IsAdmin       bool
	EmailVerified bool
}

// CallerFromUser builds the caller identity for a loaded user.
func CallerFromUser(u *User) Caller {
	return Caller{UserID: u.UserID, IsAdmin: u.IsAdmin, EmailVerified: u.EmailVerified}
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}
