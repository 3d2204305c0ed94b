package services

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a live user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ListUsers retrieves a paginated list of users.
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a password user. The email starts unverified.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user. Only the user themselves may do so.
	UpdateUser(ctx context.Context, caller domain.Caller, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// SetEmailVerified marks a user's email verified or not. Admin only.
	SetEmailVerified(ctx context.Context, caller domain.Caller, userID string, verified bool) (*domain.User, error)

	// SetAdmin grants or revokes global admin. Admin only.
	SetAdmin(ctx context.Context, caller domain.Caller, userID string, isAdmin bool) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, caller domain.Caller, userID string) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindOrCreateGoogleUser links a Google identity to a user, creating one on first login.
	FindOrCreateGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
