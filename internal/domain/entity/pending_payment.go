package entity

import (
	"time"
)

// PendingPayment is a purchase receipt awaiting administrator approval.
// Keyed by UserID: a user has at most one payment in flight.
type PendingPayment struct {
	UserID          int64     `json:"user_id"`
	UserName        string    `json:"user_name"`
	ListingFileRef  string    `json:"listing_file_ref"`
	ListingName     string    `json:"listing_name"`
	ReceiptImageRef string    `json:"receipt_image_ref"`
	CreatedAt       time.Time `json:"created_at"`
}
