package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"slidemarket/internal/domain/entity"
	"slidemarket/internal/domain/service"
	apperrors "slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

func (e *Engine) sendSearchMenu(ctx context.Context, s *Session) {
	e.bot.SendText(ctx, s.ChatID, msgChooseSearch,
		[]service.Button{{Label: "📝 By name", Data: "search_by_name"}},
		[]service.Button{{Label: "📂 By category", Data: "search_by_category"}},
		[]service.Button{{Label: "🌐 By language", Data: "search_by_language"}},
		mainMenuRow(),
	)
}

func (e *Engine) handleSearchMenu(ctx context.Context, s *Session, ev Event) (State, error) {
	switch {
	case ev.Type == EventCallback && ev.Data == "main_menu":
		e.sendMainMenu(ctx, s, msgMainMenu)
		return StateIdle, nil

	case ev.Type == EventCallback && ev.Data == "search_by_name":
		s.searchMode = ""
		e.bot.SendText(ctx, s.ChatID, msgEnterSearchName)
		return StateSearchMenu, nil

	case ev.Type == EventCallback && ev.Data == "search_by_category":
		e.bot.SendText(ctx, s.ChatID, msgChooseSearchCat, categoryKeyboard("search_category_")...)
		return StateSearchMenu, nil

	case ev.Type == EventCallback && ev.Data == "search_by_language":
		e.bot.SendText(ctx, s.ChatID, msgChooseSearchLang, languageKeyboard("search_lang_")...)
		return StateSearchMenu, nil

	case ev.Type == EventCallback && strings.HasPrefix(ev.Data, "search_category_"):
		category := strings.TrimPrefix(ev.Data, "search_category_")
		if category == CategoryOther {
			s.searchMode = "category"
			e.bot.SendText(ctx, s.ChatID, msgEnterCategory)
			return StateSearchMenu, nil
		}
		results, err := e.catalog.SearchByCategory(ctx, category)
		if err != nil {
			return StateSearchMenu, err
		}
		return e.showResults(ctx, s, results, fmt.Sprintf("No slides found in category '%s'.", category))

	case ev.Type == EventCallback && strings.HasPrefix(ev.Data, "search_lang_"):
		language := strings.TrimPrefix(ev.Data, "search_lang_")
		results, err := e.catalog.SearchByLanguage(ctx, language)
		if err != nil {
			return StateSearchMenu, err
		}
		return e.showResults(ctx, s, results, fmt.Sprintf("No slides found in %s.", language))

	case ev.Type == EventText && s.searchMode == "category":
		category := strings.TrimSpace(ev.Text)
		if category == "" {
			e.bot.SendText(ctx, s.ChatID, msgCategoryEmpty)
			return StateSearchMenu, nil
		}
		s.searchMode = ""
		results, err := e.catalog.SearchByCategory(ctx, category)
		if err != nil {
			return StateSearchMenu, err
		}
		return e.showResults(ctx, s, results, fmt.Sprintf("No slides found in category '%s'.", category))

	case ev.Type == EventText:
		query := strings.TrimSpace(ev.Text)
		if query == "" {
			e.bot.SendText(ctx, s.ChatID, msgSearchNameEmpty)
			return StateSearchMenu, nil
		}
		logger.Info("User %d searches for %q", s.UserID, query)
		results, err := e.catalog.SearchByName(ctx, query)
		if err != nil {
			return StateSearchMenu, err
		}
		return e.showResults(ctx, s, results, fmt.Sprintf("No slides found for '%s'.", query))

	default:
		e.sendSearchMenu(ctx, s)
		return StateSearchMenu, nil
	}
}

// showResults stores the hits on the session and offers them as buttons, or
// re-opens the search menu when there are none.
func (e *Engine) showResults(ctx context.Context, s *Session, results []*entity.Listing, emptyText string) (State, error) {
	if len(results) == 0 {
		e.bot.SendText(ctx, s.ChatID, emptyText)
		e.sendSearchMenu(ctx, s)
		return StateSearchMenu, nil
	}

	s.Results = results
	e.bot.SendText(ctx, s.ChatID,
		fmt.Sprintf("%d slide(s) found. Pick one:", len(results)),
		listingKeyboard(results, "slide_", func(l *entity.Listing) string {
			return fmt.Sprintf("%s - %.2f AZN", l.Name, l.Price)
		})...,
	)
	return StateSelectResult, nil
}

func (e *Engine) handleSelectResult(ctx context.Context, s *Session, ev Event) (State, error) {
	if ev.Type == EventCallback && ev.Data == "main_menu" {
		e.sendMainMenu(ctx, s, msgMainMenu)
		return StateIdle, nil
	}
	if ev.Type != EventCallback || !strings.HasPrefix(ev.Data, "slide_") {
		e.bot.SendText(ctx, s.ChatID, msgSelectionInvalid)
		return StateSelectResult, nil
	}

	idx, err := strconv.Atoi(strings.TrimPrefix(ev.Data, "slide_"))
	if err != nil || idx < 0 || idx >= len(s.Results) {
		e.bot.SendText(ctx, s.ChatID, msgSelectionInvalid)
		return StateSelectResult, nil
	}
	s.Selected = s.Results[idx]

	for _, ref := range s.Selected.ImageRefs {
		data, err := e.files.Read(ref)
		if err == nil {
			err = e.bot.SendPhoto(ctx, s.ChatID, data, s.Selected.Name)
		}
		if err != nil {
			logger.Warn("Failed to send preview image %s: %v", ref, err)
		}
	}

	details := fmt.Sprintf(
		"📊 %s\n"+
			"Category: %s\n"+
			"Language: %s\n"+
			"Pages: %d\n"+
			"Price: %.2f AZN\n"+
			"Sales: %d\n\n"+
			"Payment card: %s",
		s.Selected.Name, s.Selected.Category, s.Selected.Language,
		s.Selected.Pages, s.Selected.Price, s.Selected.SalesCount, e.platformCard,
	)
	e.bot.SendText(ctx, s.ChatID, details,
		[]service.Button{{Label: "💳 Buy", Data: "buy"}},
		[]service.Button{{Label: "🔙 Back to results", Data: "back_to_results"}},
	)
	return StateConfirmPurchase, nil
}

func (e *Engine) handleConfirmPurchase(ctx context.Context, s *Session, ev Event) (State, error) {
	switch {
	case ev.Type == EventCallback && ev.Data == "buy":
		e.bot.SendText(ctx, s.ChatID, fmt.Sprintf(
			"To buy '%s', transfer %.2f AZN to this card:\n\n%s\n\n%s",
			s.Selected.Name, s.Selected.Price, e.platformCard, msgSendReceipt))
		return StateConfirmPurchase, nil

	case ev.Type == EventCallback && ev.Data == "back_to_results":
		return e.showResults(ctx, s, s.Results, msgMainMenu)

	case ev.Type == EventPhoto:
		payment, err := e.purchases.SubmitReceipt(ctx, s.UserID, s.UserName, s.Selected, ev.Photo)
		if err != nil {
			if apperrors.Is(err, "CONFLICT") {
				e.bot.SendText(ctx, s.ChatID, userMessage(err))
				e.sendMainMenu(ctx, s, msgMainMenu)
				return StateIdle, nil
			}
			if apperrors.Is(err, "MEDIA_ERROR") {
				e.bot.SendText(ctx, s.ChatID, userMessage(err)+" Please send the receipt again.")
				return StateConfirmPurchase, nil
			}
			return StateConfirmPurchase, err
		}

		if err := e.moderation.NotifyNewPayment(ctx, payment, s.Selected); err != nil {
			logger.Error("Failed to notify admin about payment from user %d: %v", s.UserID, err)
		}
		logger.Info("User %d submitted a receipt for %s", s.UserID, s.Selected.Name)
		e.bot.SendText(ctx, s.ChatID, msgPaymentRegistered)
		return StateIdle, nil

	default:
		e.bot.SendText(ctx, s.ChatID, msgSendReceipt)
		return StateConfirmPurchase, nil
	}
}
