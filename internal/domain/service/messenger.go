package service

import (
	"context"
)

// Button is one inline keyboard button; Data is the callback payload.
type Button struct {
	Label string
	Data  string
}

// Messenger is the outbound half of the bot transport. Button rows are
// optional; each slice is one keyboard row.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, buttons ...[]Button) error
	SendPhoto(ctx context.Context, chatID int64, photo []byte, caption string, buttons ...[]Button) error
	SendDocument(ctx context.Context, chatID int64, document []byte, filename, caption string, buttons ...[]Button) error
}
