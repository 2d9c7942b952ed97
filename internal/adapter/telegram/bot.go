package telegram

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"slidemarket/internal/domain/service"
	"slidemarket/pkg/errors"
	"slidemarket/pkg/logger"
)

// Bot wraps the Telegram Bot API as the outbound Messenger and the inbound
// update source.
type Bot struct {
	api    *tgbotapi.BotAPI
	client *http.Client
}

func NewBot(token string) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Internal("Failed to connect to Telegram", err)
	}
	logger.Info("Authorized on Telegram account %s", api.Self.UserName)
	return &Bot{
		api:    api,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

func markup(buttons [][]service.Button) *tgbotapi.InlineKeyboardMarkup {
	if len(buttons) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, row := range buttons {
		var r []tgbotapi.InlineKeyboardButton
		for _, b := range row {
			r = append(r, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, r)
	}
	m := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &m
}

func (b *Bot) SendText(ctx context.Context, chatID int64, text string, buttons ...[]service.Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if m := markup(buttons); m != nil {
		msg.ReplyMarkup = m
	}
	if _, err := b.api.Send(msg); err != nil {
		return errors.DeliveryFault("Failed to send message", err)
	}
	return nil
}

func (b *Bot) SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, buttons ...[]service.Button) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "photo.jpg", Bytes: photo})
	msg.Caption = caption
	if m := markup(buttons); m != nil {
		msg.ReplyMarkup = m
	}
	if _, err := b.api.Send(msg); err != nil {
		return errors.DeliveryFault("Failed to send photo", err)
	}
	return nil
}

func (b *Bot) SendDocument(ctx context.Context, chatID int64, document []byte, filename, caption string, buttons ...[]service.Button) error {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: filename, Bytes: document})
	msg.Caption = caption
	if m := markup(buttons); m != nil {
		msg.ReplyMarkup = m
	}
	if _, err := b.api.Send(msg); err != nil {
		return errors.DeliveryFault("Failed to send document", err)
	}
	return nil
}
