package telegram

import (
	"context"
	"io"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"slidemarket/internal/usecase"
	"slidemarket/internal/workflow"
	"slidemarket/pkg/logger"
)

const pollTimeoutSeconds = 30

// Run consumes Telegram updates until the context is cancelled. Updates are
// processed sequentially; administrator decision callbacks are routed to the
// moderation use case, everything else becomes a workflow event.
func (b *Bot) Run(ctx context.Context, engine *workflow.Engine, moderation *usecase.ModerationUseCase) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			logger.Info("Update loop stopped")
			return
		case update := <-updates:
			b.handleUpdate(ctx, update, engine, moderation)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update, engine *workflow.Engine, moderation *usecase.ModerationUseCase) {
	if update.CallbackQuery != nil {
		b.handleCallback(ctx, update.CallbackQuery, engine, moderation)
		return
	}
	if update.Message == nil {
		return
	}
	ev, ok := b.messageEvent(update.Message)
	if !ok {
		return
	}
	engine.HandleEvent(ctx, ev)
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, engine *workflow.Engine, moderation *usecase.ModerationUseCase) {
	// Clear the button spinner regardless of the outcome.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.Warn("Failed to answer callback %s: %v", cb.ID, err)
	}
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	if b.routeModeration(ctx, chatID, cb.Data, moderation) {
		return
	}

	engine.HandleEvent(ctx, workflow.Event{
		Type:     workflow.EventCallback,
		UserID:   cb.From.ID,
		ChatID:   chatID,
		UserName: displayName(cb.From),
		Data:     cb.Data,
	})
}

// routeModeration intercepts the administrator's approve/reject buttons.
// Decision errors are already reported to the chat by the use case.
func (b *Bot) routeModeration(ctx context.Context, callerChatID int64, data string, moderation *usecase.ModerationUseCase) bool {
	switch {
	case strings.HasPrefix(data, "approve_upload_"), strings.HasPrefix(data, "reject_upload_"):
		approve := strings.HasPrefix(data, "approve_upload_")
		rest := strings.TrimPrefix(strings.TrimPrefix(data, "approve_upload_"), "reject_upload_")
		userID, slideID, ok := splitUploadPayload(rest)
		if !ok {
			logger.Warn("Malformed upload callback: %s", data)
			return true
		}
		if err := moderation.DecideUpload(ctx, callerChatID, userID, slideID, approve); err != nil {
			logger.Error("Upload decision failed (user=%d slide=%s): %v", userID, slideID, err)
		}
		return true

	case strings.HasPrefix(data, "approve_payment_"), strings.HasPrefix(data, "reject_payment_"):
		approve := strings.HasPrefix(data, "approve_payment_")
		rest := strings.TrimPrefix(strings.TrimPrefix(data, "approve_payment_"), "reject_payment_")
		userID, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			logger.Warn("Malformed payment callback: %s", data)
			return true
		}
		if err := moderation.DecidePayment(ctx, callerChatID, userID, approve); err != nil {
			logger.Error("Payment decision failed (user=%d): %v", userID, err)
		}
		return true
	}
	return false
}

// splitUploadPayload parses "{userID}_{slideID}".
func splitUploadPayload(rest string) (int64, string, bool) {
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, "", false
	}
	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, "", false
	}
	return userID, parts[1], true
}

func (b *Bot) messageEvent(msg *tgbotapi.Message) (workflow.Event, bool) {
	ev := workflow.Event{
		UserID:   msg.From.ID,
		ChatID:   msg.Chat.ID,
		UserName: displayName(msg.From),
	}

	switch {
	case msg.IsCommand():
		ev.Type = workflow.EventCommand
		ev.Text = strings.ToLower(msg.Command())

	case msg.Document != nil:
		ev.Type = workflow.EventDocument
		ev.Document = b.documentPayload(msg.Document)

	case len(msg.Photo) > 0:
		// Telegram offers several resolutions; the last one is the largest.
		largest := msg.Photo[len(msg.Photo)-1]
		data, err := b.download(largest.FileID)
		if err != nil {
			logger.Error("Failed to download photo from user %d: %v", msg.From.ID, err)
			return ev, false
		}
		ev.Type = workflow.EventPhoto
		ev.Photo = data

	case msg.Text != "":
		ev.Type = workflow.EventText
		ev.Text = msg.Text

	default:
		return ev, false
	}
	return ev, true
}

// documentPayload downloads the document body when it could plausibly be
// accepted. Unsupported or oversized files keep their metadata so the flow
// can answer with the precise refusal.
func (b *Bot) documentPayload(doc *tgbotapi.Document) *workflow.Document {
	out := &workflow.Document{
		FileName: doc.FileName,
		MimeType: doc.MimeType,
		FileSize: int64(doc.FileSize),
	}
	if !usecase.IsSupportedSlideType(doc.MimeType) || doc.FileSize > usecase.MaxSlideFileSize {
		return out
	}
	data, err := b.download(doc.FileID)
	if err != nil {
		logger.Error("Failed to download document %s: %v", doc.FileName, err)
		return out
	}
	out.Data = data
	return out
}

func (b *Bot) download(fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	resp, err := b.client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return u.UserName
}
