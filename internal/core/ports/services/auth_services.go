package services

import (
	"context"
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"golang.org/x/oauth2"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken signs an access token for user and returns its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}

// GoogleOAuthHandlerSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
	GenerateStateString(ctx context.Context) (string, error)
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(ctx context.Context, state string) string
	// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	// ValidateGoogleIDToken validates an ID token string from Google and returns the identity it carries.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*domain.GoogleIdentity, error)
}

// AuthorizationSvc resolves what a caller may do inside an area. Every
// guard runs before any write.
type AuthorizationSvc interface {
	// ResolveCapabilities returns the caller's capabilities in areaID.
	ResolveCapabilities(ctx context.Context, caller domain.Caller, areaID string) (domain.Capabilities, error)
	// RequireAreaAccess fails with NotFound when the caller cannot see the area.
	RequireAreaAccess(ctx context.Context, caller domain.Caller, areaID string) (domain.Capabilities, error)
	// RequireAreaManager fails with NotFound when the caller cannot see the
	// area and Forbidden when they can but are not a manager.
	RequireAreaManager(ctx context.Context, caller domain.Caller, areaID string) error
	// AccessibleScope returns the areas the caller may read.
	AccessibleScope(ctx context.Context, caller domain.Caller) (domain.AreaScope, error)
}
