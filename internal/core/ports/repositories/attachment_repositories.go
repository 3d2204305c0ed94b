package repositories

import (
	"context"
	"io"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// AttachmentRepositoryFacade stores attachment metadata. File bytes live in a FileStore.
type AttachmentRepositoryFacade interface {
	SaveAttachment(ctx context.Context, attachment domain.Attachment) error
	FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error)
	ListAttachmentsByMovementID(ctx context.Context, movementID string) ([]domain.Attachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

// FileStore keeps attachment bytes under opaque keys.
type FileStore interface {
	// Save writes r under key and returns the size, failing once MaxBytes is exceeded.
	Save(ctx context.Context, key string, r io.Reader) (int64, error)
	// Open returns a reader the caller must close.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	MaxBytes() int64
}
