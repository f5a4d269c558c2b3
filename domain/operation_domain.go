package domain

import (
	"time"
)

var (
	MessageSuccessGetHistory  = "operation history retrieved successfully"
	MessageSuccessAttachPhoto = "photo attached successfully"

	MessageFailedGetHistory  = "failed to retrieve operation history"
	MessageFailedAttachPhoto = "failed to attach photo"
)

type (
	// PhotoInput references evidence already placed in the object store by
	// the bot or API collaborator.
	PhotoInput struct {
		FileKey   string `json:"file_key" validate:"required,max=255"`
		PhotoType string `json:"photo_type" validate:"required,max=50"`
		Caption   string `json:"caption" validate:"max=1000"`
	}

	AttachPhotoRequest struct {
		OperationID uint   `json:"operation_id" validate:"required"`
		FileKey     string `json:"file_key" validate:"required,max=255"`
		PhotoType   string `json:"photo_type" validate:"required,max=50"`
		Caption     string `json:"caption" validate:"max=1000"`
	}

	// HistoryFilter narrows the operation history query. Zero values mean
	// "no constraint".
	HistoryFilter struct {
		UserID        uint
		OperationType string
		EntityType    string
		EntityID      uint
		From          *time.Time
		To            *time.Time
		Limit         int
	}

	PhotoResponse struct {
		ID        uint   `json:"id"`
		FileKey   string `json:"file_key"`
		PhotoType string `json:"photo_type"`
		Caption   string `json:"caption,omitempty"`
	}

	OperationResponse struct {
		ID            uint            `json:"id"`
		UserID        uint            `json:"user_id"`
		OperationType string          `json:"operation_type"`
		EntityType    string          `json:"entity_type,omitempty"`
		EntityID      *uint           `json:"entity_id,omitempty"`
		Description   string          `json:"description"`
		Success       bool            `json:"success"`
		ErrorMessage  string          `json:"error_message,omitempty"`
		Metadata      string          `json:"metadata,omitempty"`
		Photos        []PhotoResponse `json:"photos,omitempty"`
		CreatedAt     time.Time       `json:"created_at"`
	}
)
