package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/core/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository (based on UserService usage) ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deleterUserID string) error {
	args := m.Called(ctx, userID, deletedAt, deleterUserID)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderDetails(ctx context.Context, authProvider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, authProvider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	password := "password123"
	req := dto.CreateUserRequest{
		Name:     "Test User",
		Email:    " Treasurer@Example.org ",
		Password: password,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "treasurer@example.org").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "treasurer@example.org" && user.PasswordHash != nil && *user.PasswordHash != password
	})).Return(nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(createdUser)
	suite.Equal("Test User", createdUser.Name)
	suite.NotEmpty(createdUser.UserID)
	suite.Equal(domain.ProviderLocal, createdUser.AuthProvider)
	suite.False(createdUser.EmailVerified)
	suite.False(createdUser.IsAdmin)
	suite.Equal("SELF", createdUser.CreatedBy)

	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "taken@example.org"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.org").Return(existing, nil).Once()

	createdUser, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Name: "X", Email: "taken@example.org", Password: "password123"})

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.Equal(apperrors.KindConflict, apperrors.KindOf(err))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_SaveError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUserByEmail", ctx, "save@example.org").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(expectedErr).Once()

	createdUser, err := suite.service.CreateUser(ctx, dto.CreateUserRequest{Name: "Save Error", Email: "save@example.org", Password: "password123"})

	suite.Require().Error(err)
	suite.Nil(createdUser)
	suite.ErrorIs(err, expectedErr)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	expectedUser := &domain.User{UserID: userID, Name: "Found User"}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(expectedUser, nil).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().NoError(err)
	suite.Equal(expectedUser, user)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_Empty() {
	ctx := context.Background()
	limit, offset := 5, 10
	var expectedUsers []domain.User

	suite.mockUserRepo.On("FindUsers", ctx, limit, offset).Return(expectedUsers, nil).Once()

	users, err := suite.service.ListUsers(ctx, limit, offset)

	suite.Require().NoError(err)
	suite.Require().NotNil(users)
	suite.Empty(users)
}

func (suite *UserServiceTestSuite) TestListUsers_RepoError() {
	ctx := context.Background()
	expectedErr := assert.AnError

	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(nil, expectedErr).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.Contains(err.Error(), "failed to list users")
	suite.ErrorIs(err, expectedErr)
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	caller := domain.Caller{UserID: userID, EmailVerified: true}
	newName := "Updated Name"
	originalUser := &domain.User{
		UserID: userID,
		Name:   "Original Name",
		AuditFields: domain.AuditFields{
			LastUpdatedAt: time.Now().Add(-time.Hour),
			LastUpdatedBy: "somebodyElse",
		},
	}
	originalTimestamp := originalUser.LastUpdatedAt

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once().Run(func(args mock.Arguments) {
		userArg := args.Get(1).(domain.User)
		suite.Equal(newName, userArg.Name)
		suite.Equal(userID, userArg.LastUpdatedBy)
		suite.True(userArg.LastUpdatedAt.After(originalTimestamp))
	})

	user, err := suite.service.UpdateUser(ctx, caller, userID, dto.UpdateUserRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, user.Name)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NoChange() {
	ctx := context.Background()
	userID := uuid.NewString()
	originalName := "Original Name"
	originalUser := &domain.User{UserID: userID, Name: originalName}

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(originalUser, nil).Once()

	user, err := suite.service.UpdateUser(ctx, domain.Caller{UserID: userID}, userID, dto.UpdateUserRequest{Name: &originalName})

	suite.Require().NoError(err)
	suite.Equal(originalUser, user)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_OtherUser() {
	newName := "Hijack"

	user, err := suite.service.UpdateUser(context.Background(), domain.Caller{UserID: uuid.NewString()}, uuid.NewString(), dto.UpdateUserRequest{Name: &newName})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
}

// --- Admin flag Tests ---
func (suite *UserServiceTestSuite) TestSetEmailVerified_AdminOnly() {
	caller := domain.Caller{UserID: uuid.NewString(), EmailVerified: true}

	_, err := suite.service.SetEmailVerified(context.Background(), caller, uuid.NewString(), true)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUserByID", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestSetEmailVerified_Success() {
	ctx := context.Background()
	admin := domain.Caller{UserID: uuid.NewString(), EmailVerified: true, IsAdmin: true}
	target := &domain.User{UserID: uuid.NewString()}

	suite.mockUserRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.EmailVerified && u.LastUpdatedBy == admin.UserID
	})).Return(nil).Once()

	user, err := suite.service.SetEmailVerified(ctx, admin, target.UserID, true)

	suite.Require().NoError(err)
	suite.True(user.EmailVerified)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestSetAdmin_CannotRevokeSelf() {
	admin := domain.Caller{UserID: uuid.NewString(), EmailVerified: true, IsAdmin: true}

	_, err := suite.service.SetAdmin(context.Background(), admin, admin.UserID, false)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_Self() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(&domain.User{UserID: userID}, nil).Once()
	suite.mockUserRepo.On("MarkUserDeleted", ctx, userID, mock.AnythingOfType("time.Time"), userID).Return(nil).Once()

	err := suite.service.DeleteUser(ctx, domain.Caller{UserID: userID}, userID)

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeleteUser_OtherUserForbidden() {
	err := suite.service.DeleteUser(context.Background(), domain.Caller{UserID: uuid.NewString()}, uuid.NewString())

	suite.Require().Error(err)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	user := &domain.User{UserID: uuid.NewString(), Email: "a@example.org", PasswordHash: &hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@example.org").Return(user, nil).Twice()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.org").Return(nil, apperrors.ErrNotFound).Once()

	found, err := suite.service.AuthenticateUser(ctx, "A@example.org", "correct horse")
	suite.Require().NoError(err)
	suite.Equal(user.UserID, found.UserID)

	_, wrongPassword := suite.service.AuthenticateUser(ctx, "a@example.org", "wrong")
	_, unknownEmail := suite.service.AuthenticateUser(ctx, "nobody@example.org", "correct horse")
	suite.Equal(apperrors.KindUnauthorized, apperrors.KindOf(wrongPassword))
	suite.Equal(wrongPassword.Error(), unknownEmail.Error())
}

// --- Google login Tests ---
func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesUser() {
	ctx := context.Background()
	identity := domain.GoogleIdentity{Subject: "sub-1", Email: "new@example.org", Name: "New", EmailVerified: true}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-1").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@example.org").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == domain.ProviderGoogle && u.ProviderUserID != nil && *u.ProviderUserID == "sub-1" && u.EmailVerified
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, identity)

	suite.Require().NoError(err)
	suite.True(user.EmailVerified)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksExistingEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "old@example.org", AuthProvider: domain.ProviderLocal, EmailVerified: true}
	identity := domain.GoogleIdentity{Subject: "sub-2", Email: "old@example.org", EmailVerified: false}

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, domain.ProviderGoogle, "sub-2").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "old@example.org").Return(existing, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.ProviderUserID != nil && *u.ProviderUserID == "sub-2" && !u.EmailVerified
	})).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, identity)

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.False(user.EmailVerified)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
