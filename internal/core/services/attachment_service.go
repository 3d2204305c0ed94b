package services

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/movement_tracker/internal/core/ports/services"
	"github.com/SscSPs/movement_tracker/internal/storage"
	"github.com/google/uuid"
)

type attachmentService struct {
	BaseService
	attachmentRepo portsrepo.AttachmentRepositoryFacade
	movementRepo   portsrepo.MovementReader
	store          portsrepo.FileStore
}

// NewAttachmentService creates the attachment service.
func NewAttachmentService(
	attachmentRepo portsrepo.AttachmentRepositoryFacade,
	movementRepo portsrepo.MovementReader,
	store portsrepo.FileStore,
	authorizer portssvc.AuthorizationSvc,
) portssvc.AttachmentSvc {
	return &attachmentService{
		BaseService:    BaseService{Authorizer: authorizer},
		attachmentRepo: attachmentRepo,
		movementRepo:   movementRepo,
		store:          store,
	}
}

var _ portssvc.AttachmentSvc = (*attachmentService)(nil)

func (s *attachmentService) UploadAttachment(ctx context.Context, caller domain.Caller, movementID, fileName string, content io.Reader) (*domain.Attachment, error) {
	if err := s.RequireVerified(caller); err != nil {
		return nil, err
	}
	movement, caps, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID)
	if err != nil {
		return nil, err
	}
	if movement.CreatedBy != caller.UserID && !caps.IsManager {
		return nil, apperrors.NewForbiddenError("only the creator or an area manager can attach files")
	}

	fileName = filepath.Base(strings.TrimSpace(fileName))
	buffered := bufio.NewReaderSize(content, storage.SniffLen)
	head, err := buffered.Peek(storage.SniffLen)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(head) == 0 {
		return nil, apperrors.NewBadRequestError("file is empty")
	}
	contentType, err := storage.DetectContentType(fileName, head)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	attachmentID := uuid.NewString()
	key := movementID + "/" + attachmentID + storage.SafeExtension(fileName)
	size, err := s.store.Save(ctx, key, buffered)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("file exceeds %d bytes", s.store.MaxBytes()))
		}
		s.LogError(ctx, err, "Failed to store attachment", slog.String("movement_id", movementID))
		return nil, err
	}

	attachment := domain.Attachment{
		AttachmentID: attachmentID,
		MovementID:   movementID,
		FileName:     fileName,
		ContentType:  contentType,
		SizeBytes:    size,
		StorageKey:   key,
		CreatedAt:    now(),
		CreatedBy:    caller.UserID,
	}
	if err := s.attachmentRepo.SaveAttachment(ctx, attachment); err != nil {
		s.LogError(ctx, err, "Failed to save attachment metadata", slog.String("movement_id", movementID))
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove orphaned attachment", slog.String("key", key))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Attachment uploaded",
		slog.String("attachment_id", attachmentID),
		slog.String("movement_id", movementID),
		slog.Int64("size", size))
	return &attachment, nil
}

func (s *attachmentService) ListAttachments(ctx context.Context, caller domain.Caller, movementID string) ([]domain.Attachment, error) {
	if _, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, movementID); err != nil {
		return nil, err
	}
	attachments, err := s.attachmentRepo.ListAttachmentsByMovementID(ctx, movementID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list attachments", slog.String("movement_id", movementID))
		return nil, err
	}
	if attachments == nil {
		attachments = []domain.Attachment{}
	}
	return attachments, nil
}

func (s *attachmentService) OpenAttachment(ctx context.Context, caller domain.Caller, attachmentID string) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.loadAttachment(ctx, caller, attachmentID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, attachment.StorageKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.LogError(ctx, err, "Attachment file missing", slog.String("attachment_id", attachmentID))
			return nil, nil, apperrors.NewNotFoundError("attachment file not found")
		}
		return nil, nil, err
	}
	return attachment, rc, nil
}

// DeleteAttachment removes the metadata first so a failed file removal only leaves an orphan.
func (s *attachmentService) DeleteAttachment(ctx context.Context, caller domain.Caller, attachmentID string) error {
	if err := s.RequireVerified(caller); err != nil {
		return err
	}
	attachment, err := s.loadAttachment(ctx, caller, attachmentID)
	if err != nil {
		return err
	}
	if attachment.CreatedBy != caller.UserID {
		return apperrors.NewForbiddenError("only the uploader can delete this attachment")
	}

	if err := s.attachmentRepo.DeleteAttachment(ctx, attachmentID); err != nil {
		s.LogError(ctx, err, "Failed to delete attachment", slog.String("attachment_id", attachmentID))
		return err
	}
	if err := s.store.Delete(ctx, attachment.StorageKey); err != nil {
		s.LogError(ctx, err, "Failed to delete attachment file", slog.String("key", attachment.StorageKey))
	}
	s.LogInfo(ctx, "Attachment deleted", slog.String("attachment_id", attachmentID))
	return nil
}

// loadAttachment returns an attachment whose movement the caller can see.
func (s *attachmentService) loadAttachment(ctx context.Context, caller domain.Caller, attachmentID string) (*domain.Attachment, error) {
	attachment, err := s.attachmentRepo.FindAttachmentByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("attachment not found")
		}
		s.LogError(ctx, err, "Failed to find attachment", slog.String("attachment_id", attachmentID))
		return nil, err
	}
	if _, _, err := loadVisibleMovement(ctx, &s.BaseService, s.movementRepo, caller, attachment.MovementID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, apperrors.NewNotFoundError("attachment not found")
		}
		return nil, err
	}
	return attachment, nil
}
