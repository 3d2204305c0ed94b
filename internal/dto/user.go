package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// CreateUserRequest defines the data needed to register a user with a password.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,notblank,max=255"`
	Email    string `json:"email" binding:"required,email,max=320"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest carries password credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,notblank,max=255"` // Only name is updatable for now
}

// SetUserFlagRequest toggles an administrative flag on a user.
type SetUserFlagRequest struct {
	Value *bool `json:"value" binding:"required"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

type UserResponse struct {
	UserID        string              `json:"userID"`
	Name          string              `json:"name"`
	Email         string              `json:"email"`
	AuthProvider  domain.AuthProvider `json:"authProvider"`
	EmailVerified bool                `json:"emailVerified"`
	IsAdmin       bool                `json:"isAdmin"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// MeResponse is the caller's profile plus area memberships.
type MeResponse struct {
	UserResponse
	Areas []UserAreaResponse `json:"areas"`
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:        user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		AuthProvider:  user.AuthProvider,
		EmailVerified: user.EmailVerified,
		IsAdmin:       user.IsAdmin,
		CreatedAt:     user.CreatedAt,
	}
}

// ToListUserResponse converts a slice of domain.User to ListUsersResponse DTO
func ToListUserResponse(users []domain.User) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
