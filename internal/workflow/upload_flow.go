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

func (e *Engine) handleUploadFile(ctx context.Context, s *Session, ev Event) (State, error) {
	if ev.Type != EventDocument || ev.Document == nil {
		e.bot.SendText(ctx, s.ChatID, "Please send a PDF or PowerPoint file.")
		return StateUploadFile, nil
	}

	doc := ev.Document
	ref, ext, err := e.uploads.SaveSlideFile(ctx, doc.FileName, doc.MimeType, doc.FileSize, doc.Data)
	if err != nil {
		if apperrors.Is(err, "VALIDATION_ERROR") {
			e.bot.SendText(ctx, s.ChatID, userMessage(err))
			return StateUploadFile, nil
		}
		return StateUploadFile, err
	}

	logger.Info("User %d uploaded slide file %s (%s)", s.UserID, doc.FileName, doc.MimeType)
	s.Draft.FileRef = ref
	s.Draft.FileExtension = ext

	e.bot.SendText(ctx, s.ChatID, msgEnterName)
	return StateUploadName, nil
}

func (e *Engine) handleUploadName(ctx context.Context, s *Session, ev Event) (State, error) {
	name := strings.TrimSpace(ev.Text)
	if ev.Type != EventText || name == "" {
		e.bot.SendText(ctx, s.ChatID, msgNameEmpty)
		return StateUploadName, nil
	}

	s.Draft.Name = name
	e.bot.SendText(ctx, s.ChatID, msgChooseCategory, categoryKeyboard("category_")...)
	return StateUploadCategory, nil
}

func (e *Engine) handleUploadCategory(ctx context.Context, s *Session, ev Event) (State, error) {
	var category string
	switch {
	case ev.Type == EventCallback && strings.HasPrefix(ev.Data, "category_"):
		category = strings.TrimPrefix(ev.Data, "category_")
		if category == CategoryOther {
			e.bot.SendText(ctx, s.ChatID, msgEnterCategory)
			return StateUploadCategory, nil
		}
	case ev.Type == EventText:
		category = strings.TrimSpace(ev.Text)
		if category == "" {
			e.bot.SendText(ctx, s.ChatID, msgCategoryEmpty)
			return StateUploadCategory, nil
		}
	default:
		e.bot.SendText(ctx, s.ChatID, msgChooseCategory, categoryKeyboard("category_")...)
		return StateUploadCategory, nil
	}

	s.Draft.Category = category
	e.bot.SendText(ctx, s.ChatID, fmt.Sprintf(msgEnterPrice, e.sellerShare*100))
	return StateUploadPrice, nil
}

func (e *Engine) handleUploadPrice(ctx context.Context, s *Session, ev Event) (State, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(ev.Text), 64)
	if ev.Type != EventText || err != nil || price <= 0 {
		e.bot.SendText(ctx, s.ChatID, msgInvalidPrice)
		return StateUploadPrice, nil
	}

	s.Draft.Price = price
	e.bot.SendText(ctx, s.ChatID, msgChooseLanguage, languageKeyboard("lang_")...)
	return StateUploadLanguage, nil
}

func (e *Engine) handleUploadLanguage(ctx context.Context, s *Session, ev Event) (State, error) {
	if ev.Type != EventCallback || !strings.HasPrefix(ev.Data, "lang_") {
		e.bot.SendText(ctx, s.ChatID, msgChooseLanguage, languageKeyboard("lang_")...)
		return StateUploadLanguage, nil
	}

	s.Draft.Language = strings.TrimPrefix(ev.Data, "lang_")
	e.bot.SendText(ctx, s.ChatID, msgEnterPages)
	return StateUploadPages, nil
}

func (e *Engine) handleUploadPages(ctx context.Context, s *Session, ev Event) (State, error) {
	pages, err := strconv.Atoi(strings.TrimSpace(ev.Text))
	if ev.Type != EventText || err != nil || pages <= 0 {
		e.bot.SendText(ctx, s.ChatID, msgInvalidPages)
		return StateUploadPages, nil
	}

	s.Draft.Pages = pages
	e.bot.SendText(ctx, s.ChatID, msgEnterCard)
	return StateUploadCard, nil
}

func (e *Engine) handleUploadCard(ctx context.Context, s *Session, ev Event) (State, error) {
	card := strings.TrimSpace(ev.Text)
	if ev.Type != EventText || card == "" {
		e.bot.SendText(ctx, s.ChatID, msgCardEmpty)
		return StateUploadCard, nil
	}

	s.Draft.CardNumber = card
	e.bot.SendText(ctx, s.ChatID, msgSendImages)
	return StateUploadImages, nil
}

func (e *Engine) handleUploadImages(ctx context.Context, s *Session, ev Event) (State, error) {
	switch {
	case ev.Type == EventPhoto:
		ref, err := e.uploads.SavePreviewImage(ctx, ev.Photo)
		if err != nil {
			if apperrors.Is(err, "MEDIA_ERROR") {
				e.bot.SendText(ctx, s.ChatID, userMessage(err)+" Please send the image again.")
				return StateUploadImages, nil
			}
			return StateUploadImages, err
		}
		s.Draft.ImageRefs = append(s.Draft.ImageRefs, ref)

		e.bot.SendText(ctx, s.ChatID,
			fmt.Sprintf("%d image(s) uploaded. What next?", len(s.Draft.ImageRefs)),
			[]service.Button{{Label: "✅ Finish", Data: "finish_upload"}},
			[]service.Button{{Label: "➕ Add another image", Data: "add_more"}},
		)
		return StateUploadImages, nil

	case ev.Type == EventCallback && ev.Data == "add_more":
		e.bot.SendText(ctx, s.ChatID, msgSendMoreImages)
		return StateUploadImages, nil

	case ev.Type == EventCallback && ev.Data == "finish_upload":
		if len(s.Draft.ImageRefs) == 0 {
			e.bot.SendText(ctx, s.ChatID, msgNeedOneImage)
			return StateUploadImages, nil
		}
		return e.finishUpload(ctx, s)

	default:
		e.bot.SendText(ctx, s.ChatID, msgSendOneImage)
		return StateUploadImages, nil
	}
}

func (e *Engine) finishUpload(ctx context.Context, s *Session) (State, error) {
	upload := &entity.PendingUpload{
		UserID:        s.UserID,
		UserName:      s.UserName,
		Name:          s.Draft.Name,
		Category:      s.Draft.Category,
		Price:         s.Draft.Price,
		Language:      s.Draft.Language,
		Pages:         s.Draft.Pages,
		CardNumber:    s.Draft.CardNumber,
		FileRef:       s.Draft.FileRef,
		FileExtension: s.Draft.FileExtension,
		ImageRefs:     s.Draft.ImageRefs,
	}
	if err := e.uploads.Submit(ctx, upload); err != nil {
		return StateUploadImages, err
	}

	if err := e.moderation.NotifyNewUpload(ctx, upload); err != nil {
		logger.Error("Failed to notify admin about upload %s: %v", upload.SlideID, err)
	}

	logger.Info("User %d (%s) submitted slide for approval: %s", s.UserID, s.UserName, upload.Name)
	e.bot.SendText(ctx, s.ChatID, msgUploadRegistered)

	// The stored files now belong to the pending upload; keep them.
	s.Draft = UploadDraft{}
	return StateIdle, nil
}
