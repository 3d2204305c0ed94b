package dto

import (
	"time"

	"github.com/SscSPs/movement_tracker/internal/core/domain"
)

// AttachmentResponse defines the data returned for an attachment.
type AttachmentResponse struct {
	AttachmentID string    `json:"attachmentID"`
	MovementID   string    `json:"movementID"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    string    `json:"createdBy"`
}

func ToAttachmentResponse(a *domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		AttachmentID: a.AttachmentID,
		MovementID:   a.MovementID,
		FileName:     a.FileName,
		ContentType:  a.ContentType,
		SizeBytes:    a.SizeBytes,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
}

func ToAttachmentResponses(attachments []domain.Attachment) []AttachmentResponse {
	out := make([]AttachmentResponse, len(attachments))
	for i := range attachments {
		out[i] = ToAttachmentResponse(&attachments[i])
	}
	return out
}
