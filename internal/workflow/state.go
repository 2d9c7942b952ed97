package workflow

// State identifies where a user session is in a conversation flow. Every
// transition goes through the engine's state→handler table.
type State int

const (
	StateIdle State = iota

	// Upload flow
	StateUploadFile
	StateUploadName
	StateUploadCategory
	StateUploadPrice
	StateUploadLanguage
	StateUploadPages
	StateUploadCard
	StateUploadImages

	// Search and purchase flow
	StateSearchMenu
	StateSelectResult
	StateConfirmPurchase

	// Manage-listings flow
	StateMyListings
	StateListingAction
	StateEditField
	StateEditValue
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StateUploadFile:      "upload_file",
	StateUploadName:      "upload_name",
	StateUploadCategory:  "upload_category",
	StateUploadPrice:     "upload_price",
	StateUploadLanguage:  "upload_language",
	StateUploadPages:     "upload_pages",
	StateUploadCard:      "upload_card",
	StateUploadImages:    "upload_images",
	StateSearchMenu:      "search_menu",
	StateSelectResult:    "select_result",
	StateConfirmPurchase: "confirm_purchase",
	StateMyListings:      "my_listings",
	StateListingAction:   "listing_action",
	StateEditField:       "edit_field",
	StateEditValue:       "edit_value",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}
