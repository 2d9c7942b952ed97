package workflow

import (
	"context"
	"fmt"
	"sync"

	"slidemarket/internal/domain/service"
	"slidemarket/internal/usecase"
	"slidemarket/pkg/logger"
)

type handlerFunc func(ctx context.Context, s *Session, ev Event) (State, error)

// Engine drives the conversation state machine. It owns the per-user
// sessions, dispatches each inbound event to the handler of the session's
// current state, and guarantees that no handler fault ever escapes: faults
// are logged, answered with a generic failure message, and reset the session
// to idle.
type Engine struct {
	mu       sync.Mutex
	sessions map[int64]*Session

	bot        service.Messenger
	files      service.FileStorage
	catalog    *usecase.CatalogUseCase
	uploads    *usecase.UploadUseCase
	purchases  *usecase.PurchaseUseCase
	moderation *usecase.ModerationUseCase

	platformCard string
	sellerShare  float64

	handlers map[State]handlerFunc
}

func NewEngine(
	bot service.Messenger,
	files service.FileStorage,
	catalog *usecase.CatalogUseCase,
	uploads *usecase.UploadUseCase,
	purchases *usecase.PurchaseUseCase,
	moderation *usecase.ModerationUseCase,
	platformCard string,
	sellerShare float64,
) *Engine {
	e := &Engine{
		sessions:     make(map[int64]*Session),
		bot:          bot,
		files:        files,
		catalog:      catalog,
		uploads:      uploads,
		purchases:    purchases,
		moderation:   moderation,
		platformCard: platformCard,
		sellerShare:  sellerShare,
	}
	e.handlers = map[State]handlerFunc{
		StateIdle:            e.handleIdle,
		StateUploadFile:      e.handleUploadFile,
		StateUploadName:      e.handleUploadName,
		StateUploadCategory:  e.handleUploadCategory,
		StateUploadPrice:     e.handleUploadPrice,
		StateUploadLanguage:  e.handleUploadLanguage,
		StateUploadPages:     e.handleUploadPages,
		StateUploadCard:      e.handleUploadCard,
		StateUploadImages:    e.handleUploadImages,
		StateSearchMenu:      e.handleSearchMenu,
		StateSelectResult:    e.handleSelectResult,
		StateConfirmPurchase: e.handleConfirmPurchase,
		StateMyListings:      e.handleMyListings,
		StateListingAction:   e.handleListingAction,
		StateEditField:       e.handleEditField,
		StateEditValue:       e.handleEditValue,
	}
	return e
}

// Session returns the current state of a user's session; callers outside the
// engine use it for inspection only.
func (e *Engine) SessionState(userID int64) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s, ok := e.sessions[userID]; ok {
		return s.State
	}
	return StateIdle
}

func (e *Engine) session(ev Event) *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[ev.UserID]
	if !ok {
		s = &Session{UserID: ev.UserID, State: StateIdle}
		e.sessions[ev.UserID] = s
	}
	s.ChatID = ev.ChatID
	if ev.UserName != "" {
		s.UserName = ev.UserName
	}
	return s
}

// HandleEvent fully processes one inbound event. It never panics and never
// returns an error: failures end the current flow, not the process.
func (e *Engine) HandleEvent(ctx context.Context, ev Event) {
	s := e.session(ev)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Recovered fault handling event for user %d in state %s: %v", ev.UserID, s.State, r)
			e.bot.SendText(ctx, s.ChatID, msgGenericFailure)
			e.abandonFlow(ctx, s)
		}
	}()

	if ev.Type == EventCommand {
		e.handleCommand(ctx, s, ev)
		return
	}

	handler := e.handlers[s.State]
	next, err := handler(ctx, s, ev)
	if err != nil {
		logger.Error("Handler failed for user %d in state %s: %v", ev.UserID, s.State, err)
		e.bot.SendText(ctx, s.ChatID, msgGenericFailure)
		e.abandonFlow(ctx, s)
		return
	}
	s.State = next
	if next == StateIdle {
		s.clear()
	}
}

func (e *Engine) handleCommand(ctx context.Context, s *Session, ev Event) {
	switch ev.Text {
	case "start":
		logger.Info("User %d (%s) started the bot", s.UserID, s.UserName)
		e.abandonFlow(ctx, s)
		e.sendMainMenu(ctx, s, fmt.Sprintf(
			"Hello %s! Welcome.\n\nUse this bot to share university slides or search for them.", s.UserName))
	case "cancel":
		logger.Info("User %d cancelled the operation", s.UserID)
		e.abandonFlow(ctx, s)
		e.bot.SendText(ctx, s.ChatID, msgCancelled)
	case "myslides":
		e.abandonFlow(ctx, s)
		s.State = e.showMyListings(ctx, s)
	case "help":
		e.bot.SendText(ctx, s.ChatID, msgHelp)
	default:
		e.bot.SendText(ctx, s.ChatID, msgMainMenu, mainMenuKeyboard()...)
	}
}

// abandonFlow clears the session and discards any files stored by an
// unfinished upload draft.
func (e *Engine) abandonFlow(ctx context.Context, s *Session) {
	if s.Draft.FileRef != "" || len(s.Draft.ImageRefs) > 0 {
		e.uploads.DiscardDraft(ctx, s.Draft.FileRef, s.Draft.ImageRefs)
	}
	s.clear()
}

func (e *Engine) sendMainMenu(ctx context.Context, s *Session, text string) {
	e.bot.SendText(ctx, s.ChatID, text, mainMenuKeyboard()...)
}

// handleIdle branches into the upload or search flow.
func (e *Engine) handleIdle(ctx context.Context, s *Session, ev Event) (State, error) {
	choice := ev.Data
	if ev.Type == EventText {
		choice = ev.Text
	}

	switch choice {
	case "upload":
		logger.Info("User %d selected upload", s.UserID)
		e.bot.SendText(ctx, s.ChatID, msgSendSlideFile)
		return StateUploadFile, nil
	case "search":
		logger.Info("User %d selected search", s.UserID)
		e.sendSearchMenu(ctx, s)
		return StateSearchMenu, nil
	default:
		e.sendMainMenu(ctx, s, msgMainMenu)
		return StateIdle, nil
	}
}
