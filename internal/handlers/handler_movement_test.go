package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/dto"
	"github.com/SscSPs/movement_tracker/internal/handlers"
	"github.com/SscSPs/movement_tracker/internal/middleware"
	"github.com/SscSPs/movement_tracker/internal/platform/config"
	"github.com/SscSPs/movement_tracker/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock MovementService ---
type MockMovementService struct {
	mock.Mock
}

func (m *MockMovementService) GetMovement(ctx context.Context, caller domain.Caller, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, caller, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) ListMovements(ctx context.Context, caller domain.Caller, params dto.ListMovementsParams) ([]domain.Movement, *string, error) {
	args := m.Called(ctx, caller, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	next, _ := args.Get(1).(*string)
	return args.Get(0).([]domain.Movement), next, args.Error(2)
}
func (m *MockMovementService) GetApprovalHistory(ctx context.Context, caller domain.Caller, movementID string) ([]domain.MovementApproval, error) {
	args := m.Called(ctx, caller, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MovementApproval), args.Error(1)
}
func (m *MockMovementService) CreateMovement(ctx context.Context, caller domain.Caller, req dto.CreateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, caller, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) UpdateMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.UpdateMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, caller, movementID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) DeleteMovement(ctx context.Context, caller domain.Caller, movementID string) error {
	args := m.Called(ctx, caller, movementID)
	return args.Error(0)
}
func (m *MockMovementService) ApproveMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.ApproveMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, caller, movementID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) RejectMovement(ctx context.Context, caller domain.Caller, movementID string, req dto.RejectMovementRequest) (*domain.Movement, error) {
	args := m.Called(ctx, caller, movementID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}
func (m *MockMovementService) BulkApprove(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error) {
	args := m.Called(ctx, caller, req)
	return args.Int(0), args.Error(1)
}
func (m *MockMovementService) BulkReject(ctx context.Context, caller domain.Caller, req dto.BulkReviewRequest) (int, error) {
	args := m.Called(ctx, caller, req)
	return args.Int(0), args.Error(1)
}
func (m *MockMovementService) AddComment(ctx context.Context, caller domain.Caller, movementID string, req dto.AddCommentRequest) (*domain.MovementApproval, error) {
	args := m.Called(ctx, caller, movementID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementApproval), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.MovementSvcFacade = (*MockMovementService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, caller domain.Caller, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, caller, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) SetEmailVerified(ctx context.Context, caller domain.Caller, userID string, verified bool) (*domain.User, error) {
	args := m.Called(ctx, caller, userID, verified)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) SetAdmin(ctx context.Context, caller domain.Caller, userID string, isAdmin bool) (*domain.User, error) {
	args := m.Called(ctx, caller, userID, isAdmin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, caller domain.Caller, userID string) error {
	args := m.Called(ctx, caller, userID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Test Suite ---
type MovementHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockMovementService *MockMovementService
	mockUserService     *MockUserService
	jwtSecret           string
}

func (suite *MovementHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockMovementService = new(MockMovementService)
	suite.mockUserService = new(MockUserService)

	cfg := &config.Config{
		JWTSecret:       suite.jwtSecret,
		IsProduction:    true,
		LoginRateLimit:  "100-M",
		APIRateLimit:    "1000-M",
		DefaultCurrency: "USD",
	}
	container := &portssvc.ServiceContainer{
		User:     suite.mockUserService,
		Movement: suite.mockMovementService,
	}
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container, nil))
}

func (suite *MovementHandlerTestSuite) TearDownTest() {
	suite.mockMovementService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
}

// loginAs makes the caller middleware resolve user and returns a bearer token for it.
func (suite *MovementHandlerTestSuite) loginAs(user *domain.User) string {
	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil)
	token, err := utils.GenerateJWT(user.UserID, suite.jwtSecret, time.Hour, "movement-tracker-test", time.Now())
	suite.Require().NoError(err)
	return token
}

func (suite *MovementHandlerTestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *MovementHandlerTestSuite) decodeError(w *httptest.ResponseRecorder) middleware.ErrorResponse {
	var resp middleware.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func verifiedUser(id string) *domain.User {
	return &domain.User{UserID: id, Name: "User " + id, Email: id + "@example.com", EmailVerified: true}
}

func callerFor(user *domain.User) domain.Caller {
	return domain.CallerFromUser(user)
}

func sampleMovement(id string, status domain.MovementStatus) *domain.Movement {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Movement{
		MovementID:      id,
		AreaID:          "area-1",
		Type:            domain.MovementExpense,
		Status:          status,
		Amount:          1500,
		CurrencyCode:    "USD",
		Description:     "Printer paper",
		TransactionDate: now,
		AuditFields:     domain.NewAuditFields("user-1", now),
	}
}

// --- Test Cases ---

func (suite *MovementHandlerTestSuite) TestCreateMovement_Success() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	created := sampleMovement("mov-1", domain.StatusPending)

	suite.mockMovementService.On("CreateMovement", mock.Anything, callerFor(user), mock.MatchedBy(func(req dto.CreateMovementRequest) bool {
		return req.AreaID == "area-1" && req.Amount == 1500 && req.Type == domain.MovementExpense
	})).Return(created, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements", token, map[string]any{
		"areaID":          "area-1",
		"type":            "EXPENSE",
		"amount":          1500,
		"currencyCode":    "USD",
		"description":     "Printer paper",
		"transactionDate": "2024-03-01T10:00:00Z",
	})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("mov-1", resp.MovementID)
	suite.Equal(domain.StatusPending, resp.Status)
	suite.True(resp.NeedsCategorization)
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_ValidationFailure() {
	token := suite.loginAs(verifiedUser("user-1"))

	w := suite.do(http.MethodPost, "/api/v1/movements", token, map[string]any{
		"areaID":          "area-1",
		"type":            "EXPENSE",
		"amount":          0,
		"currencyCode":    "USD",
		"transactionDate": "2024-03-01T10:00:00Z",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apperrors.KindBadRequest, suite.decodeError(w).Kind)
	suite.mockMovementService.AssertNotCalled(suite.T(), "CreateMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestCreateMovement_UnknownType() {
	token := suite.loginAs(verifiedUser("user-1"))

	w := suite.do(http.MethodPost, "/api/v1/movements", token, map[string]any{
		"areaID":          "area-1",
		"type":            "REFUND",
		"amount":          10,
		"currencyCode":    "USD",
		"transactionDate": "2024-03-01T10:00:00Z",
	})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestMissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/movements/mov-1", "", nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(apperrors.KindUnauthorized, suite.decodeError(w).Kind)
}

func (suite *MovementHandlerTestSuite) TestTokenForDeletedUser() {
	suite.mockUserService.On("GetUserByID", mock.Anything, "gone").Return(nil, apperrors.ErrNotFound).Once()
	token, err := utils.GenerateJWT("gone", suite.jwtSecret, time.Hour, "movement-tracker-test", time.Now())
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/v1/movements/mov-1", token, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockMovementService.AssertNotCalled(suite.T(), "GetMovement", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestTokenSignedWithOtherSecret() {
	token, err := utils.GenerateJWT("user-1", "some-other-secret", time.Hour, "movement-tracker-test", time.Now())
	suite.Require().NoError(err)

	w := suite.do(http.MethodGet, "/api/v1/movements/mov-1", token, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID", mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestGetMovement_NotFound() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	suite.mockMovementService.On("GetMovement", mock.Anything, callerFor(user), "missing").
		Return(nil, apperrors.NewNotFoundError("movement not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/movements/missing", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(apperrors.KindNotFound, resp.Kind)
	suite.Equal("movement not found", resp.Error)
}

func (suite *MovementHandlerTestSuite) TestGetMovement_InternalErrorIsNotLeaked() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	suite.mockMovementService.On("GetMovement", mock.Anything, callerFor(user), "mov-1").
		Return(nil, errors.New("connection refused by 10.0.0.5")).Once()

	w := suite.do(http.MethodGet, "/api/v1/movements/mov-1", token, nil)

	suite.Equal(http.StatusInternalServerError, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(apperrors.KindInternal, resp.Kind)
	suite.NotContains(resp.Error, "10.0.0.5")
}

func (suite *MovementHandlerTestSuite) TestListMovements_PassesFilters() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	next := "next-page"
	suite.mockMovementService.On("ListMovements", mock.Anything, callerFor(user), mock.MatchedBy(func(p dto.ListMovementsParams) bool {
		return p.Status != nil && *p.Status == domain.StatusDraft && p.Mine && p.Limit == 5 &&
			p.DateFrom != nil && p.DateFrom.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	})).Return([]domain.Movement{*sampleMovement("mov-1", domain.StatusDraft)}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/movements?status=DRAFT&mine=true&limit=5&dateFrom=2024-01-01", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListMovementsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Movements, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next-page", *resp.NextToken)
}

func (suite *MovementHandlerTestSuite) TestListMovements_RejectsUnknownStatus() {
	token := suite.loginAs(verifiedUser("user-1"))

	w := suite.do(http.MethodGet, "/api/v1/movements?status=ARCHIVED", token, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestApproveMovement_WithoutBody() {
	user := verifiedUser("manager-1")
	token := suite.loginAs(user)
	approved := sampleMovement("mov-1", domain.StatusApproved)
	suite.mockMovementService.On("ApproveMovement", mock.Anything, callerFor(user), "mov-1", dto.ApproveMovementRequest{}).
		Return(approved, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements/mov-1/approve", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.MovementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusApproved, resp.Status)
}

func (suite *MovementHandlerTestSuite) TestApproveMovement_NotPending() {
	user := verifiedUser("manager-1")
	token := suite.loginAs(user)
	suite.mockMovementService.On("ApproveMovement", mock.Anything, callerFor(user), "mov-1", mock.Anything).
		Return(nil, apperrors.NewConflictError("movement is not pending")).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements/mov-1/approve", token, map[string]any{"comment": "ok"})

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(apperrors.KindConflict, suite.decodeError(w).Kind)
}

func (suite *MovementHandlerTestSuite) TestRejectMovement_PassesReason() {
	user := verifiedUser("manager-1")
	token := suite.loginAs(user)
	rejected := sampleMovement("mov-1", domain.StatusRejected)
	suite.mockMovementService.On("RejectMovement", mock.Anything, callerFor(user), "mov-1", mock.MatchedBy(func(req dto.RejectMovementRequest) bool {
		return req.Reason != nil && *req.Reason == "missing receipt"
	})).Return(rejected, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements/mov-1/reject", token, map[string]any{"reason": "missing receipt"})

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *MovementHandlerTestSuite) TestBulkApprove_ReturnsCount() {
	user := verifiedUser("manager-1")
	token := suite.loginAs(user)
	suite.mockMovementService.On("BulkApprove", mock.Anything, callerFor(user), dto.BulkReviewRequest{MovementIDs: []string{"a", "b"}}).
		Return(2, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements/bulk/approve", token, map[string]any{"movementIDs": []string{"a", "b"}})

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"count":2}`, w.Body.String())
}

func (suite *MovementHandlerTestSuite) TestBulkReject_TooManyIDs() {
	token := suite.loginAs(verifiedUser("manager-1"))
	ids := make([]string, 51)
	for i := range ids {
		ids[i] = fmt.Sprintf("mov-%d", i)
	}

	w := suite.do(http.MethodPost, "/api/v1/movements/bulk/reject", token, map[string]any{"movementIDs": ids})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockMovementService.AssertNotCalled(suite.T(), "BulkReject", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestBulkApprove_EmptyList() {
	token := suite.loginAs(verifiedUser("manager-1"))

	w := suite.do(http.MethodPost, "/api/v1/movements/bulk/approve", token, map[string]any{"movementIDs": []string{}})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestAddComment_BlankRejected() {
	token := suite.loginAs(verifiedUser("user-1"))

	w := suite.do(http.MethodPost, "/api/v1/movements/mov-1/comments", token, map[string]any{"comment": "   "})

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *MovementHandlerTestSuite) TestAddComment_Success() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	comment := "see attached receipt"
	entry := &domain.MovementApproval{
		ApprovalID: "ap-1",
		MovementID: "mov-1",
		Action:     domain.ApprovalComment,
		Comment:    &comment,
		UserID:     "user-1",
		CreatedAt:  time.Now(),
	}
	suite.mockMovementService.On("AddComment", mock.Anything, callerFor(user), "mov-1", dto.AddCommentRequest{Comment: comment}).
		Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/movements/mov-1/comments", token, map[string]any{"comment": comment})

	suite.Equal(http.StatusCreated, w.Code)
	suite.True(strings.Contains(w.Body.String(), `"action":"COMMENT"`))
}

func (suite *MovementHandlerTestSuite) TestDeleteMovement_Forbidden() {
	user := verifiedUser("user-2")
	token := suite.loginAs(user)
	suite.mockMovementService.On("DeleteMovement", mock.Anything, callerFor(user), "mov-1").
		Return(apperrors.NewForbiddenError("only the creator may delete a movement")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/movements/mov-1", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *MovementHandlerTestSuite) TestDeleteMovement_NoContent() {
	user := verifiedUser("user-1")
	token := suite.loginAs(user)
	suite.mockMovementService.On("DeleteMovement", mock.Anything, callerFor(user), "mov-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/movements/mov-1", token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *MovementHandlerTestSuite) TestAdminRoutes_RequireAdmin() {
	token := suite.loginAs(verifiedUser("user-1"))

	w := suite.do(http.MethodGet, "/api/v1/admin/users", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "ListUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MovementHandlerTestSuite) TestAdminRoutes_RequireVerifiedEmail() {
	admin := &domain.User{UserID: "admin-1", IsAdmin: true}
	token := suite.loginAs(admin)

	w := suite.do(http.MethodGet, "/api/v1/admin/users", token, nil)

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *MovementHandlerTestSuite) TestAdminRoutes_ListUsers() {
	admin := &domain.User{UserID: "admin-1", IsAdmin: true, EmailVerified: true}
	token := suite.loginAs(admin)
	suite.mockUserService.On("ListUsers", mock.Anything, 20, 0).Return([]domain.User{*admin}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/admin/users", token, nil)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *MovementHandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

// --- Run Test Suite ---
func TestMovementHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(MovementHandlerTestSuite))
}
