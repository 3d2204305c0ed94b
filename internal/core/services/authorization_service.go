package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
)

// authorizationService resolves area capabilities from memberships.
type authorizationService struct {
	BaseService
	areaRepo portsrepo.AreaRepositoryFacade
}

// NewAuthorizationService creates the area capability resolver.
func NewAuthorizationService(areaRepo portsrepo.AreaRepositoryFacade) portssvc.AuthorizationSvc {
	return &authorizationService{areaRepo: areaRepo}
}

var _ portssvc.AuthorizationSvc = (*authorizationService)(nil)

func (s *authorizationService) ResolveCapabilities(ctx context.Context, caller domain.Caller, areaID string) (domain.Capabilities, error) {
	if caller.IsAdmin {
		return domain.ResolveCapabilities(caller, nil), nil
	}
	membership, err := s.areaRepo.FindUserAreaRole(ctx, caller.UserID, areaID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.ResolveCapabilities(caller, nil), nil
		}
		s.LogError(ctx, err, "Failed to find user area role",
			slog.String("user_id", caller.UserID),
			slog.String("area_id", areaID))
		return domain.Capabilities{}, err
	}
	return domain.ResolveCapabilities(caller, membership), nil
}

func (s *authorizationService) RequireAreaAccess(ctx context.Context, caller domain.Caller, areaID string) (domain.Capabilities, error) {
	caps, err := s.ResolveCapabilities(ctx, caller, areaID)
	if err != nil {
		return caps, err
	}
	if caps.None() {
		s.LogDebug(ctx, "Caller has no access to area", slog.String("area_id", areaID))
		return caps, apperrors.NewNotFoundError("area not found")
	}
	if caps.IsAdmin {
		// Admins bypass membership, so the area itself must still exist.
		if _, err := s.areaRepo.FindAreaByID(ctx, areaID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return caps, apperrors.NewNotFoundError("area not found")
			}
			return caps, err
		}
	}
	return caps, nil
}

func (s *authorizationService) RequireAreaManager(ctx context.Context, caller domain.Caller, areaID string) error {
	caps, err := s.RequireAreaAccess(ctx, caller, areaID)
	if err != nil {
		return err
	}
	if !caps.IsManager {
		s.LogDebug(ctx, "Caller is not an area manager", slog.String("area_id", areaID))
		return apperrors.NewForbiddenError("area manager role required")
	}
	return nil
}

func (s *authorizationService) AccessibleScope(ctx context.Context, caller domain.Caller) (domain.AreaScope, error) {
	if caller.IsAdmin {
		return domain.AreaScope{All: true}, nil
	}
	memberships, err := s.areaRepo.ListUserAreas(ctx, caller.UserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list user areas", slog.String("user_id", caller.UserID))
		return domain.AreaScope{}, err
	}
	scope := domain.AreaScope{AreaIDs: make([]string, 0, len(memberships))}
	for _, m := range memberships {
		if m.Role.IsValid() {
			scope.AreaIDs = append(scope.AreaIDs, m.AreaID)
		}
	}
	return scope, nil
}
