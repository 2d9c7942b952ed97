package workflow

import (
	stderrors "errors"
	"strconv"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/service"
	apperrors "slidemarket/pkg/errors"
)

// Slide categories offered on the keyboard; the last one accepts a free-text
// category.
var Categories = []string{
	"IT", "Riyaziyyat", "Elektronika", "English", "Biznes və İdarəetmə",
	"İqtisadiyyat", "Dizayn", "Memarlıq", "Neft-Qaz", "Dilçilik",
	"Tibb", "Tarix", "Hüquq", "SƏTƏMM", "Digər",
}

const CategoryOther = "Digər"

var Languages = []string{"Azərbaycan", "İngilis", "Rus"}

const (
	msgGenericFailure = "Something went wrong. Please try again or use /start to return to the main menu."
	msgCancelled      = "Operation cancelled. Use /start to begin again."

	msgSendSlideFile = "Please send the slide file (max 30MB):\n" +
		"Supported formats: PDF, PPT, PPTX\n" +
		"You can cancel at any time with /cancel."
	msgEnterName       = "Enter the slide name:"
	msgNameEmpty       = "The name cannot be empty. Please enter the slide name:"
	msgChooseCategory  = "Choose the slide category:"
	msgEnterCategory   = "Please enter the category name:"
	msgCategoryEmpty   = "The category cannot be empty. Please enter the category name:"
	msgEnterPrice      = "Enter the slide price in AZN:\nNote: when a sale completes, %.0f%% of the amount is paid to you."
	msgInvalidPrice    = "Please enter a valid price (e.g. 5 or 5.5):"
	msgChooseLanguage  = "Choose the slide language:"
	msgEnterPages      = "Enter the number of pages (e.g. 15):"
	msgInvalidPages    = "Please enter a valid page count (e.g. 15):"
	msgEnterCard       = "Enter your card number:\nNote: your earnings will be sent to this card after each sale."
	msgCardEmpty       = "The card number cannot be empty. Please enter your card number:"
	msgSendImages      = "Send 1-2 images from the slide:\nThey are shown as previews in search results."
	msgSendOneImage    = "Please send an image."
	msgSendMoreImages  = "Please send another image:"
	msgNeedOneImage    = "You must upload at least one image. Please send an image:"
	msgUploadRegistered = "✅ Your slide was registered!\n\n" +
		"It will appear in the shared catalog once the administrator approves it.\nThank you!"

	msgChooseSearch     = "Choose how to search:\nYou can cancel at any time with /cancel."
	msgEnterSearchName  = "Enter the name of the slide you are looking for:"
	msgSearchNameEmpty  = "The slide name cannot be empty. Please enter the slide name:"
	msgChooseSearchCat  = "Choose a category:"
	msgChooseSearchLang = "Which language are you looking for?"
	msgSelectionInvalid = "Selected slide not found."
	msgMainMenu         = "Main menu:"

	msgSendReceipt        = "Please send a photo of your payment receipt:"
	msgPaymentRegistered  = "✅ Your payment was registered!\n\n" +
		"The slide file will be sent to you once the administrator confirms the payment.\nThank you!"

	msgNoListingsYet   = "You haven't shared any slides yet."
	msgNoListingsLeft  = "You no longer have any slides."
	msgWhatToDo        = "What would you like to do?"
	msgChooseEditField = "Which field would you like to edit?"
	msgEnterNewName    = "Enter the new name:"
	msgEnterNewPrice   = "Enter the new price in AZN (e.g. 5.5):"
	msgEnterNewPages   = "Enter the new page count (e.g. 15):"
	msgEnterNewCard    = "Enter the new card number:"
	msgChooseNewCat    = "Choose the new category:"
	msgChooseNewLang   = "Choose the new language:"

	msgHelp = "🌟 Slide bot help\n\n" +
		"Commands:\n" +
		"• /start - restart the bot\n" +
		"• /myslides - manage your slides\n" +
		"• /help - show this message\n" +
		"• /cancel - cancel the current operation\n\n" +
		"To upload a slide:\n" +
		"1. Choose 'Upload slide'\n" +
		"2. Send a slide file under 30MB\n" +
		"3. Enter its name, category, price, language and page count\n" +
		"4. Enter the card number for your earnings\n" +
		"5. Send 1-2 preview images\n\n" +
		"To buy a slide:\n" +
		"1. Choose 'Search slides'\n" +
		"2. Search by name, category or language\n" +
		"3. Pick a slide and press 'Buy'\n" +
		"4. Pay to the shown card and send a photo of the receipt\n" +
		"5. The file is sent to you once the administrator confirms the payment"
)

// userMessage extracts the user-facing text of a recoverable AppError.
func userMessage(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message + "."
	}
	return msgGenericFailure
}

func mainMenuKeyboard() [][]service.Button {
	return [][]service.Button{
		{{Label: "📤 Upload slide", Data: "upload"}},
		{{Label: "🔍 Search slides", Data: "search"}},
	}
}

// categoryKeyboard lays the categories out three per row.
func categoryKeyboard(prefix string) [][]service.Button {
	var rows [][]service.Button
	for i := 0; i < len(Categories); i += 3 {
		var row []service.Button
		for j := i; j < i+3 && j < len(Categories); j++ {
			row = append(row, service.Button{Label: Categories[j], Data: prefix + Categories[j]})
		}
		rows = append(rows, row)
	}
	return rows
}

func languageKeyboard(prefix string) [][]service.Button {
	var rows [][]service.Button
	for _, lang := range Languages {
		rows = append(rows, []service.Button{{Label: lang, Data: prefix + lang}})
	}
	return rows
}

func mainMenuRow() []service.Button {
	return []service.Button{{Label: "🔙 Main menu", Data: "main_menu"}}
}

// listingKeyboard builds one button per listing, indexed into the session's
// result slice, with a main-menu row at the bottom.
func listingKeyboard(listings []*entity.Listing, prefix string, label func(*entity.Listing) string) [][]service.Button {
	var rows [][]service.Button
	for i, l := range listings {
		rows = append(rows, []service.Button{{Label: label(l), Data: prefix + strconv.Itoa(i)}})
	}
	rows = append(rows, mainMenuRow())
	return rows
}
