package services

import (
	"context"
	"io"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// AttachmentSvc manages supporting documents of movements.
type AttachmentSvc interface {
	// UploadAttachment stores a file for a movement. Creator or area manager.
	UploadAttachment(ctx context.Context, caller domain.Caller, movementID, fileName string, content io.Reader) (*domain.Attachment, error)
	ListAttachments(ctx context.Context, caller domain.Caller, movementID string) ([]domain.Attachment, error)
	// OpenAttachment returns the metadata and a reader the caller must close.
	OpenAttachment(ctx context.Context, caller domain.Caller, attachmentID string) (*domain.Attachment, io.ReadCloser, error)
	// DeleteAttachment removes an attachment. Uploader only.
	DeleteAttachment(ctx context.Context, caller domain.Caller, attachmentID string) error
}
