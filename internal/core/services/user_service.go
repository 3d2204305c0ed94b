package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/google/uuid"
)

// selfRegistered is the audit actor for users who create their own account.
const selfRegistered = "SELF"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.NewConflictError("a user with this email already exists")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing user")
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		UserID:        uuid.NewString(),
		Name:          strings.TrimSpace(req.Name),
		Email:         email,
		PasswordHash:  &hash,
		AuthProvider:  domain.ProviderLocal,
		EmailVerified: false,
		AuditFields:   domain.NewAuditFields(selfRegistered, now()),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user", slog.String("email", email))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// UpdateUser lets users rename themselves. An unchanged name is a no-op.
func (s *userService) UpdateUser(ctx context.Context, caller domain.Caller, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	if caller.UserID != userID {
		return nil, apperrors.NewForbiddenError("users can only update their own profile")
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == user.Name {
		return user, nil
	}
	user.Name = strings.TrimSpace(*req.Name)
	user.Touch(caller.UserID, now())

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) SetEmailVerified(ctx context.Context, caller domain.Caller, userID string, verified bool) (*domain.User, error) {
	return s.setFlag(ctx, caller, userID, func(u *domain.User) bool {
		changed := u.EmailVerified != verified
		u.EmailVerified = verified
		return changed
	})
}

func (s *userService) SetAdmin(ctx context.Context, caller domain.Caller, userID string, isAdmin bool) (*domain.User, error) {
	if caller.UserID == userID && !isAdmin {
		return nil, apperrors.NewBadRequestError("administrators cannot revoke their own admin role")
	}
	return s.setFlag(ctx, caller, userID, func(u *domain.User) bool {
		changed := u.IsAdmin != isAdmin
		u.IsAdmin = isAdmin
		return changed
	})
}

func (s *userService) setFlag(ctx context.Context, caller domain.Caller, userID string, apply func(*domain.User) bool) (*domain.User, error) {
	if err := s.RequireAdmin(caller); err != nil {
		return nil, err
	}
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, err
	}
	if !apply(user) {
		return user, nil
	}
	user.Touch(caller.UserID, now())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user flags", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "User flags changed",
		slog.String("user_id", userID),
		slog.Bool("email_verified", user.EmailVerified),
		slog.Bool("is_admin", user.IsAdmin))
	return user, nil
}

// DeleteUser soft deletes a user. Users may delete themselves; admins anyone.
func (s *userService) DeleteUser(ctx context.Context, caller domain.Caller, userID string) error {
	if caller.UserID != userID && !caller.IsAdmin {
		return apperrors.NewForbiddenError("users can only delete their own account")
	}
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("user not found")
		}
		return err
	}
	if err := s.userRepo.MarkUserDeleted(ctx, userID, now(), caller.UserID); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

// AuthenticateUser checks password credentials. Unknown emails and wrong
// passwords produce the same error.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	invalid := apperrors.NewUnauthorizedError("invalid email or password")

	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalid
		}
		s.LogError(ctx, err, "Failed to find user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogDebug(ctx, "Password mismatch", slog.String("user_id", user.UserID))
		return nil, invalid
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves a Google identity by subject, then by
// email, creating a user on first login. EmailVerified always follows the
// token's claim.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, domain.ProviderGoogle, identity.Subject)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find user by Google subject")
		return nil, err
	}

	if user == nil {
		user, err = s.userRepo.FindUserByEmail(ctx, normalizeEmail(identity.Email))
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user by email")
			return nil, err
		}
	}

	at := now()
	if user == nil {
		subject := identity.Subject
		created := domain.User{
			UserID:         uuid.NewString(),
			Name:           identity.Name,
			Email:          normalizeEmail(identity.Email),
			AuthProvider:   domain.ProviderGoogle,
			ProviderUserID: &subject,
			EmailVerified:  identity.EmailVerified,
			AuditFields:    domain.NewAuditFields(selfRegistered, at),
		}
		if created.Name == "" {
			created.Name = created.Email
		}
		if err := s.userRepo.SaveUser(ctx, created); err != nil {
			s.LogError(ctx, err, "Failed to create Google user")
			return nil, err
		}
		s.LogInfo(ctx, "User registered with Google", slog.String("user_id", created.UserID))
		return &created, nil
	}

	changed := false
	if user.ProviderUserID == nil {
		subject := identity.Subject
		user.ProviderUserID = &subject
		user.AuthProvider = domain.ProviderGoogle
		changed = true
	}
	if user.EmailVerified != identity.EmailVerified {
		user.EmailVerified = identity.EmailVerified
		changed = true
	}
	if changed {
		user.Touch(user.UserID, at)
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			s.LogError(ctx, err, "Failed to link Google identity", slog.String("user_id", user.UserID))
			return nil, err
		}
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
