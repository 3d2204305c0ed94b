package services_test

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/core/services"
	"github.com/SscSPs/movement_tracker/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	args := m.Called(ctx, attachment)
	return args.Error(0)
}

func (m *MockAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	args := m.Called(ctx, attachmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListAttachmentsByMovementID(ctx context.Context, movementID string) ([]domain.Attachment, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	args := m.Called(ctx, attachmentID)
	return args.Error(0)
}

type AttachmentServiceTestSuite struct {
	suite.Suite
	attachmentRepo *MockAttachmentRepository
	movementRepo   *MockMovementRepository
	areaRepo       *MockAreaRepository
	store          *storage.LocalFileStore
	service        portssvc.AttachmentSvc

	ctx      context.Context
	movement *domain.Movement
	creator  domain.Caller
	member   domain.Caller
	outsider domain.Caller
}

func (suite *AttachmentServiceTestSuite) SetupTest() {
	suite.attachmentRepo = new(MockAttachmentRepository)
	suite.movementRepo = new(MockMovementRepository)
	suite.areaRepo = new(MockAreaRepository)

	store, err := storage.NewLocalFileStore(suite.T().TempDir(), 1024, nil)
	suite.Require().NoError(err)
	suite.store = store
	suite.service = services.NewAttachmentService(suite.attachmentRepo, suite.movementRepo, store, services.NewAuthorizationService(suite.areaRepo))

	suite.ctx = context.Background()
	suite.creator = domain.Caller{UserID: uuid.NewString(), EmailVerified: true}
	suite.member = domain.Caller{UserID: uuid.NewString(), EmailVerified: true}
	suite.outsider = domain.Caller{UserID: uuid.NewString(), EmailVerified: true}
	suite.movement = &domain.Movement{
		MovementID:  uuid.NewString(),
		AreaID:      uuid.NewString(),
		Status:      domain.StatusPending,
		AuditFields: domain.NewAuditFields(suite.creator.UserID, time.Now()),
	}

	suite.movementRepo.On("FindMovementByID", mock.Anything, suite.movement.MovementID).Return(suite.movement, nil).Maybe()
	for _, c := range []domain.Caller{suite.creator, suite.member} {
		suite.areaRepo.On("FindUserAreaRole", mock.Anything, c.UserID, suite.movement.AreaID).
			Return(&domain.UserArea{UserID: c.UserID, AreaID: suite.movement.AreaID, Role: domain.AreaRoleMember}, nil).Maybe()
	}
	suite.areaRepo.On("FindUserAreaRole", mock.Anything, suite.outsider.UserID, mock.Anything).Return(nil, apperrors.ErrNotFound).Maybe()
}

func (suite *AttachmentServiceTestSuite) TestUploadAndOpen() {
	content := "date,amount\n2024-01-01,10.00\n"
	var saved domain.Attachment
	suite.attachmentRepo.On("SaveAttachment", mock.Anything, mock.AnythingOfType("domain.Attachment")).Return(nil).Once().
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Attachment) })

	attachment, err := suite.service.UploadAttachment(suite.ctx, suite.creator, suite.movement.MovementID, "receipts/../bank.CSV", strings.NewReader(content))

	suite.Require().NoError(err)
	suite.Equal("bank.CSV", attachment.FileName)
	suite.Equal("text/csv", attachment.ContentType)
	suite.Equal(int64(len(content)), attachment.SizeBytes)
	suite.True(strings.HasSuffix(saved.StorageKey, ".csv"))

	suite.attachmentRepo.On("FindAttachmentByID", mock.Anything, attachment.AttachmentID).Return(&saved, nil).Once()
	_, rc, err := suite.service.OpenAttachment(suite.ctx, suite.member, attachment.AttachmentID)
	suite.Require().NoError(err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	suite.Require().NoError(err)
	suite.Equal(content, string(body))
}

func (suite *AttachmentServiceTestSuite) TestUpload_MemberNotCreatorForbidden() {
	_, err := suite.service.UploadAttachment(suite.ctx, suite.member, suite.movement.MovementID, "a.csv", strings.NewReader("a,b\n"))

	suite.Require().Error(err)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))
}

func (suite *AttachmentServiceTestSuite) TestUpload_Rejections() {
	_, err := suite.service.UploadAttachment(suite.ctx, suite.creator, suite.movement.MovementID, "run.exe", strings.NewReader("MZ"))
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))

	_, err = suite.service.UploadAttachment(suite.ctx, suite.creator, suite.movement.MovementID, "big.csv", strings.NewReader(strings.Repeat("a", 2048)))
	suite.Equal(apperrors.KindBadRequest, apperrors.KindOf(err))
	suite.ErrorContains(err, "exceeds 1024 bytes")

	suite.attachmentRepo.AssertNotCalled(suite.T(), "SaveAttachment", mock.Anything, mock.Anything)
}

func (suite *AttachmentServiceTestSuite) TestOpen_InvisibleMovementIsNotFound() {
	attachment := &domain.Attachment{AttachmentID: uuid.NewString(), MovementID: suite.movement.MovementID, CreatedBy: suite.creator.UserID}
	suite.attachmentRepo.On("FindAttachmentByID", mock.Anything, attachment.AttachmentID).Return(attachment, nil).Once()

	_, _, err := suite.service.OpenAttachment(suite.ctx, suite.outsider, attachment.AttachmentID)

	suite.Require().Error(err)
	suite.Equal(apperrors.KindNotFound, apperrors.KindOf(err))
	suite.ErrorContains(err, "attachment not found")
}

func (suite *AttachmentServiceTestSuite) TestDelete_UploaderOnly() {
	attachment := &domain.Attachment{AttachmentID: uuid.NewString(), MovementID: suite.movement.MovementID, CreatedBy: suite.creator.UserID, StorageKey: "x/y.csv"}
	suite.attachmentRepo.On("FindAttachmentByID", mock.Anything, attachment.AttachmentID).Return(attachment, nil)

	err := suite.service.DeleteAttachment(suite.ctx, suite.member, attachment.AttachmentID)
	suite.Equal(apperrors.KindForbidden, apperrors.KindOf(err))

	suite.attachmentRepo.On("DeleteAttachment", mock.Anything, attachment.AttachmentID).Return(nil).Once()
	suite.Require().NoError(suite.service.DeleteAttachment(suite.ctx, suite.creator, attachment.AttachmentID))
	suite.attachmentRepo.AssertExpectations(suite.T())
}

func TestAttachmentService(t *testing.T) {
	suite.Run(t, new(AttachmentServiceTestSuite))
}
