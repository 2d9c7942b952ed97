package entity

import (
	"time"
)

// PendingUpload is a submitted listing awaiting administrator approval.
// Keyed by (UserID, SlideID).
type PendingUpload struct {
	SlideID       string    `json:"slide_id" validate:"required"`
	UserID        int64     `json:"user_id" validate:"required"`
	UserName      string    `json:"user_name"`
	Name          string    `json:"name" validate:"required"`
	Category      string    `json:"category" validate:"required"`
	Price         float64   `json:"price" validate:"gt=0"`
	Language      string    `json:"language" validate:"required"`
	Pages         int       `json:"pages" validate:"gt=0"`
	CardNumber    string    `json:"card_number" validate:"required"`
	FileRef       string    `json:"file_ref" validate:"required"`
	FileExtension string    `json:"file_extension" validate:"required"`
	ImageRefs     []string  `json:"image_refs" validate:"min=1"`
	OwnerID       int64     `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	CreatedAt     time.Time `json:"created_at"`
}
