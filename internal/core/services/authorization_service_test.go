package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	"github.com/SscSPs/movement_tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorization_RequireAreaAccess(t *testing.T) {
	ctx := context.Background()
	areaRepo := new(MockAreaRepository)
	authz := services.NewAuthorizationService(areaRepo)

	member := domain.Caller{UserID: "member", EmailVerified: true}
	stranger := domain.Caller{UserID: "stranger", EmailVerified: true}
	admin := domain.Caller{UserID: "admin", EmailVerified: true, IsAdmin: true}

	areaRepo.On("FindUserAreaRole", mock.Anything, "member", "a1").
		Return(&domain.UserArea{UserID: "member", AreaID: "a1", Role: domain.AreaRoleMember}, nil)
	areaRepo.On("FindUserAreaRole", mock.Anything, "stranger", "a1").Return(nil, apperrors.ErrNotFound)
	areaRepo.On("FindAreaByID", mock.Anything, "a1").Return(&domain.Area{AreaID: "a1"}, nil)
	areaRepo.On("FindAreaByID", mock.Anything, "gone").Return(nil, apperrors.ErrNotFound)

	caps, err := authz.RequireAreaAccess(ctx, member, "a1")
	require.NoError(t, err)
	assert.True(t, caps.IsMember)
	assert.False(t, caps.IsManager)

	_, err = authz.RequireAreaAccess(ctx, stranger, "a1")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	caps, err = authz.RequireAreaAccess(ctx, admin, "a1")
	require.NoError(t, err)
	assert.True(t, caps.IsAdmin)

	_, err = authz.RequireAreaAccess(ctx, admin, "gone")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	err = authz.RequireAreaManager(ctx, member, "a1")
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))
}

func TestAuthorization_ResolveCapabilitiesRepoError(t *testing.T) {
	areaRepo := new(MockAreaRepository)
	authz := services.NewAuthorizationService(areaRepo)
	areaRepo.On("FindUserAreaRole", mock.Anything, "u1", "a1").Return(nil, assert.AnError)

	_, err := authz.ResolveCapabilities(context.Background(), domain.Caller{UserID: "u1"}, "a1")

	assert.ErrorIs(t, err, assert.AnError)
}

func TestAuthorization_AccessibleScope(t *testing.T) {
	areaRepo := new(MockAreaRepository)
	authz := services.NewAuthorizationService(areaRepo)
	areaRepo.On("ListUserAreas", mock.Anything, "u1").Return([]domain.UserArea{
		{AreaID: "a1", Role: domain.AreaRoleManager},
		{AreaID: "a2", Role: "REMOVED"},
		{AreaID: "a3", Role: domain.AreaRoleMember},
	}, nil)

	scope, err := authz.AccessibleScope(context.Background(), domain.Caller{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, scope.AreaIDs)
	assert.False(t, scope.All)

	scope, err = authz.AccessibleScope(context.Background(), domain.Caller{UserID: "root", IsAdmin: true})
	require.NoError(t, err)
	assert.True(t, scope.All)
	areaRepo.AssertNotCalled(t, "ListUserAreas", mock.Anything, "root")
}
