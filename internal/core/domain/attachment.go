package domain

import "time"

// Attachment is a file associated with a movement. Bytes live in the file
// store under StorageKey.
type Attachment struct {
	AttachmentID string    `json:"attachmentID" db:"attachment_id"`
	MovementID   string    `json:"movementID" db:"movement_id"`
	FileName     string    `json:"fileName" db:"file_name"`
	ContentType  string    `json:"contentType" db:"content_type"`
	SizeBytes    int64     `json:"sizeBytes" db:"size_bytes"`
	StorageKey   string    `json:"-" db:"storage_key"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	CreatedBy    string    `json:"createdBy" db:"created_by"`
}
