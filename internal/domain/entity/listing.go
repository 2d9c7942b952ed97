package entity

import (
	"time"
)

// Listing is an approved, searchable slide-deck sale record.
type Listing struct {
	ID            string    `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	OwnerName     string    `json:"owner_name"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Language      string    `json:"language"`
	Pages         int       `json:"pages"`
	Price         float64   `json:"price"`
	CardNumber    string    `json:"card_number"`
	FileRef       string    `json:"file_ref"`
	FileExtension string    `json:"file_extension"`
	FileType      string    `json:"file_type"`
	ImageRefs     []string  `json:"image_refs"`
	SalesCount    int       `json:"sales_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// FileName is the name the slide file is delivered under.
func (l *Listing) FileName() string {
	return l.Name + l.FileExtension
}
