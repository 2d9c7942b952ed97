package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/service"
	"slidemarket/internal/usecase"
	apperrors "slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

// showMyListings loads the caller's listings and offers them as buttons.
func (e *Engine) showMyListings(ctx context.Context, s *Session) State {
	listings, err := e.catalog.MyListings(ctx, s.UserID)
	if err != nil {
		logger.Error("Failed to load listings of user %d: %v", s.UserID, err)
		e.bot.SendText(ctx, s.ChatID, msgGenericFailure)
		return StateIdle
	}
	if len(listings) == 0 {
		e.bot.SendText(ctx, s.ChatID, msgNoListingsYet)
		e.sendMainMenu(ctx, s, msgMainMenu)
		return StateIdle
	}

	s.MyListings = listings
	e.bot.SendText(ctx, s.ChatID,
		fmt.Sprintf("You have %d slide(s). Pick one:", len(listings)),
		listingKeyboard(listings, "myslide_", func(l *entity.Listing) string {
			return fmt.Sprintf("%s - %.2f AZN (%d sold)", l.Name, l.Price, l.SalesCount)
		})...,
	)
	return StateMyListings
}

func (e *Engine) handleMyListings(ctx context.Context, s *Session, ev Event) (State, error) {
	if ev.Type == EventCallback && ev.Data == "main_menu" {
		e.sendMainMenu(ctx, s, msgMainMenu)
		return StateIdle, nil
	}
	if ev.Type != EventCallback || !strings.HasPrefix(ev.Data, "myslide_") {
		e.bot.SendText(ctx, s.ChatID, msgSelectionInvalid)
		return StateMyListings, nil
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(ev.Data, "myslide_"))
	if err != nil || idx < 0 || idx >= len(s.MyListings) {
		e.bot.SendText(ctx, s.ChatID, msgSelectionInvalid)
		return StateMyListings, nil
	}
	s.Selected = s.MyListings[idx]

	e.sendListingActions(ctx, s)
	return StateListingAction, nil
}

func (e *Engine) sendListingActions(ctx context.Context, s *Session) {
	info := fmt.Sprintf(
		"📊 %s\n"+
			"Category: %s\n"+
			"Language: %s\n"+
			"Pages: %d\n"+
			"Price: %.2f AZN\n"+
			"Card: %s\n"+
			"Sales: %d\n\n"+
			msgWhatToDo,
		s.Selected.Name, s.Selected.Category, s.Selected.Language,
		s.Selected.Pages, s.Selected.Price, s.Selected.CardNumber, s.Selected.SalesCount,
	)
	e.bot.SendText(ctx, s.ChatID, info,
		[]service.Button{{Label: "✏️ Edit", Data: "edit_listing"}},
		[]service.Button{{Label: "🗑 Delete", Data: "delete_listing"}},
		[]service.Button{{Label: "🔙 Back", Data: "back_to_listings"}},
	)
}

func (e *Engine) handleListingAction(ctx context.Context, s *Session, ev Event) (State, error) {
	switch {
	case ev.Type == EventCallback && ev.Data == "edit_listing":
		e.bot.SendText(ctx, s.ChatID, msgChooseEditField,
			[]service.Button{
				{Label: "Name", Data: "edit_field_" + usecase.FieldName},
				{Label: "Price", Data: "edit_field_" + usecase.FieldPrice},
			},
			[]service.Button{
				{Label: "Pages", Data: "edit_field_" + usecase.FieldPages},
				{Label: "Card", Data: "edit_field_" + usecase.FieldCard},
			},
			[]service.Button{
				{Label: "Category", Data: "edit_field_" + usecase.FieldCategory},
				{Label: "Language", Data: "edit_field_" + usecase.FieldLanguage},
			},
			[]service.Button{{Label: "🔙 Back", Data: "back_to_action"}},
		)
		return StateEditField, nil

	case ev.Type == EventCallback && ev.Data == "delete_listing":
		name := s.Selected.Name
		if err := e.catalog.Delete(ctx, s.Selected.ID, s.UserID); err != nil {
			return StateListingAction, err
		}
		logger.Info("User %d deleted listing %s", s.UserID, s.Selected.ID)
		e.bot.SendText(ctx, s.ChatID, fmt.Sprintf("🗑 '%s' was deleted.", name))
		s.Selected = nil

		next := e.showMyListings(ctx, s)
		if next == StateIdle {
			e.bot.SendText(ctx, s.ChatID, msgNoListingsLeft)
		}
		return next, nil

	case ev.Type == EventCallback && ev.Data == "back_to_listings":
		return e.showMyListings(ctx, s), nil

	default:
		e.sendListingActions(ctx, s)
		return StateListingAction, nil
	}
}

func (e *Engine) handleEditField(ctx context.Context, s *Session, ev Event) (State, error) {
	if ev.Type == EventCallback && ev.Data == "back_to_action" {
		e.sendListingActions(ctx, s)
		return StateListingAction, nil
	}
	if ev.Type != EventCallback || !strings.HasPrefix(ev.Data, "edit_field_") {
		e.bot.SendText(ctx, s.ChatID, msgChooseEditField)
		return StateEditField, nil
	}

	s.EditField = strings.TrimPrefix(ev.Data, "edit_field_")
	switch s.EditField {
	case usecase.FieldName:
		e.bot.SendText(ctx, s.ChatID, msgEnterNewName)
	case usecase.FieldPrice:
		e.bot.SendText(ctx, s.ChatID, msgEnterNewPrice)
	case usecase.FieldPages:
		e.bot.SendText(ctx, s.ChatID, msgEnterNewPages)
	case usecase.FieldCard:
		e.bot.SendText(ctx, s.ChatID, msgEnterNewCard)
	case usecase.FieldCategory:
		e.bot.SendText(ctx, s.ChatID, msgChooseNewCat, categoryKeyboard("edit_category_")...)
	case usecase.FieldLanguage:
		e.bot.SendText(ctx, s.ChatID, msgChooseNewLang, languageKeyboard("edit_language_")...)
	default:
		s.EditField = ""
		e.bot.SendText(ctx, s.ChatID, msgChooseEditField)
		return StateEditField, nil
	}
	return StateEditValue, nil
}

func (e *Engine) handleEditValue(ctx context.Context, s *Session, ev Event) (State, error) {
	var value string
	switch {
	case ev.Type == EventCallback && strings.HasPrefix(ev.Data, "edit_category_"):
		value = strings.TrimPrefix(ev.Data, "edit_category_")
		if value == CategoryOther {
			e.bot.SendText(ctx, s.ChatID, msgEnterCategory)
			return StateEditValue, nil
		}
	case ev.Type == EventCallback && strings.HasPrefix(ev.Data, "edit_language_"):
		value = strings.TrimPrefix(ev.Data, "edit_language_")
	case ev.Type == EventText:
		value = ev.Text
	default:
		e.bot.SendText(ctx, s.ChatID, "Please enter the new value.")
		return StateEditValue, nil
	}

	updated, err := e.catalog.UpdateField(ctx, s.Selected.ID, s.UserID, s.EditField, value)
	if err != nil {
		if apperrors.Is(err, "VALIDATION_ERROR") {
			e.bot.SendText(ctx, s.ChatID, userMessage(err))
			return StateEditValue, nil
		}
		return StateEditValue, err
	}

	logger.Info("User %d edited %s of listing %s", s.UserID, s.EditField, updated.ID)
	s.Selected = updated
	s.EditField = ""
	e.bot.SendText(ctx, s.ChatID, "✅ Updated.")
	e.sendListingActions(ctx, s)
	return StateListingAction, nil
}
