package repositories

import (
	"context"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// AreaReader defines read operations for areas and departments
type AreaReader interface {
	FindAreaByID(ctx context.Context, areaID string) (*domain.Area, error)
	// ListAreas returns the areas inside scope ordered by name.
	ListAreas(ctx context.Context, scope domain.AreaScope) ([]domain.Area, error)
	FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error)
	ListDepartmentsByArea(ctx context.Context, areaID string) ([]domain.Department, error)
}

// AreaWriter defines write operations for areas and departments
type AreaWriter interface {
	SaveArea(ctx context.Context, area domain.Area) error
	// SaveDepartment fails with a conflict when the code is taken in the area.
	SaveDepartment(ctx context.Context, department domain.Department) error
}

// AreaMembershipManager defines operations for managing area memberships
type AreaMembershipManager interface {
	// SetUserAreaRole adds the user to the area or updates their role.
	SetUserAreaRole(ctx context.Context, membership domain.UserArea) error

	// FindUserAreaRole retrieves the membership of a user in an area, or apperrors.ErrNotFound.
	FindUserAreaRole(ctx context.Context, userID, areaID string) (*domain.UserArea, error)

	// ListUserAreas returns all memberships of a user.
	ListUserAreas(ctx context.Context, userID string) ([]domain.UserArea, error)

	RemoveUserFromArea(ctx context.Context, userID, areaID string) error
}

// AreaRepositoryFacade combines all area-related repository interfaces
type AreaRepositoryFacade interface {
	AreaReader
	AreaWriter
	AreaMembershipManager
}
