package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/movement_tracker/internal/apperrors"
	"github.com/SscSPs/movement_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/movement_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAttachmentRepository struct {
	db *pgxpool.Pool
}

func newPgxAttachmentRepository(db *pgxpool.Pool) portsrepo.AttachmentRepositoryFacade {
	return &PgxAttachmentRepository{db: db}
}

var _ portsrepo.AttachmentRepositoryFacade = (*PgxAttachmentRepository)(nil)

const attachmentColumns = `attachment_id, movement_id, file_name, content_type, size_bytes, storage_key, created_at, created_by`

func scanAttachment(row rowScanner) (domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(
		&a.AttachmentID,
		&a.MovementID,
		&a.FileName,
		&a.ContentType,
		&a.SizeBytes,
		&a.StorageKey,
		&a.CreatedAt,
		&a.CreatedBy,
	)
	return a, err
}

func (r *PgxAttachmentRepository) SaveAttachment(ctx context.Context, attachment domain.Attachment) error {
	query := `INSERT INTO movement_attachments (` + attachmentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.db.Exec(ctx, query,
		attachment.AttachmentID,
		attachment.MovementID,
		attachment.FileName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.StorageKey,
		attachment.CreatedAt,
		attachment.CreatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to save attachment")
	}
	return nil
}

func (r *PgxAttachmentRepository) FindAttachmentByID(ctx context.Context, attachmentID string) (*domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM movement_attachments WHERE attachment_id = $1;`
	attachment, err := scanAttachment(r.db.QueryRow(ctx, query, attachmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find attachment %s: %w", attachmentID, err)
	}
	return &attachment, nil
}

func (r *PgxAttachmentRepository) ListAttachmentsByMovementID(ctx context.Context, movementID string) ([]domain.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM movement_attachments WHERE movement_id = $1 ORDER BY created_at;`
	rows, err := r.db.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("failed to query attachments for movement %s: %w", movementID, err)
	}
	defer rows.Close()

	attachments := []domain.Attachment{}
	for rows.Next() {
		attachment, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attachment row: %w", err)
		}
		attachments = append(attachments, attachment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachment rows: %w", err)
	}
	return attachments, nil
}

func (r *PgxAttachmentRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM movement_attachments WHERE attachment_id = $1;`, attachmentID)
	if err != nil {
		return fmt.Errorf("failed to delete attachment %s: %w", attachmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
