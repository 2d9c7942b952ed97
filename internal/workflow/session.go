package workflow

import (
	"slidemarket/internal/domain/entity"
)

// UploadDraft accumulates the fields entered across the upload flow.
type UploadDraft struct {
	FileRef       string
	FileExtension string
	Name          string
	Category      string
	Price         float64
	Language      string
	Pages         int
	CardNumber    string
	ImageRefs     []string
}

// Session is the transient per-user conversation state. It is created when a
// flow starts and cleared on completion, cancellation, or error; it is never
// persisted.
type Session struct {
	UserID   int64
	ChatID   int64
	UserName string
	State    State

	Draft UploadDraft

	// searchMode routes free text in the search menu: empty means name
	// search, "category" means a custom category was requested.
	searchMode string

	Results    []*entity.Listing
	MyListings []*entity.Listing
	Selected   *entity.Listing
	EditField  string
}

// clear resets everything accumulated by a flow, keeping the identity fields.
func (s *Session) clear() {
	s.State = StateIdle
	s.Draft = UploadDraft{}
	s.searchMode = ""
	s.Results = nil
	s.MyListings = nil
	s.Selected = nil
	s.EditField = ""
}
