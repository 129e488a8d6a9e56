package bot

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/ad/telegram-classifieds-bot/internal/domain"
	"github.com/ad/telegram-classifieds-bot/internal/locale"
	"github.com/ad/telegram-classifieds-bot/internal/storage"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Wizard state constants
const (
	StateCategory    = "category"
	StateTitle       = "title"
	StateDescription = "description"
	StatePhoto       = "photo"
	StatePrice       = "price"
	StateContact     = "contact"
)

// AdCreationFSM drives the linear ad creation wizard. One session per
// user; starting the wizard again replaces any in-progress session.
type AdCreationFSM struct {
	storage   *storage.SessionStorage
	client    TelegramClient
	ads       *domain.AdService
	localizer locale.Localizer
	logger    domain.Logger
}

// NewAdCreationFSM creates a new wizard
func NewAdCreationFSM(
	sessions *storage.SessionStorage,
	client TelegramClient,
	ads *domain.AdService,
	localizer locale.Localizer,
	logger domain.Logger,
) *AdCreationFSM {
	return &AdCreationFSM{
		storage:   sessions,
		client:    client,
		ads:       ads,
		localizer: localizer,
		logger:    logger,
	}
}

// Start begins a new wizard session, discarding any previous one for
// this user, and sends the category prompt.
func (f *AdCreationFSM) Start(ctx context.Context, userID int64, chatID int64) error {
	initial := &domain.AdCreationContext{ChatID: chatID}

	if err := f.storage.Set(ctx, userID, StateCategory, initial.ToMap()); err != nil {
		f.logger.Error("failed to start wizard session", "user_id", userID, "error", err)
		return err
	}

	f.logger.Info("wizard session started", "user_id", userID, "state", StateCategory)

	return f.sendPrompt(ctx, chatID, locale.WizardAskCategory, categoryReplyKeyboard())
}

// HasSession reports whether the user has an active wizard session
func (f *AdCreationFSM) HasSession(ctx context.Context, userID int64) (bool, error) {
	state, _, err := f.storage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return false, nil
		}
		return false, err
	}

	switch state {
	case StateCategory, StateTitle, StateDescription, StatePhoto, StatePrice, StateContact:
		return true, nil
	default:
		return false, nil
	}
}

// Cancel aborts the wizard, discarding collected data. The returned
// flag reports whether a session existed.
func (f *AdCreationFSM) Cancel(ctx context.Context, userID int64) (bool, error) {
	has, err := f.HasSession(ctx, userID)
	if err != nil {
		return false, err
	}
	if !has {
		return false, nil
	}

	if err := f.storage.Delete(ctx, userID); err != nil {
		return false, err
	}

	f.logger.Info("wizard session cancelled", "user_id", userID)
	return true, nil
}

// HandleMessage feeds a text message into the wizard
func (f *AdCreationFSM) HandleMessage(ctx context.Context, update *models.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	state, wctx, err := f.loadSession(ctx, userID)
	if err != nil || wctx == nil {
		return err
	}

	switch state {
	case StateCategory:
		// Any text is accepted as the category, button press or not
		wctx.Category = text
		return f.advance(ctx, userID, chatID, StateTitle, wctx, locale.WizardAskTitle,
			&models.ReplyKeyboardRemove{RemoveKeyboard: true})
	case StateTitle:
		wctx.Title = text
		return f.advance(ctx, userID, chatID, StateDescription, wctx, locale.WizardAskDescription, nil)
	case StateDescription:
		wctx.Description = text
		return f.advance(ctx, userID, chatID, StatePhoto, wctx, locale.WizardAskPhoto, nil)
	case StatePhoto:
		// Only a photo or /skip moves the wizard forward from here
		return f.sendPrompt(ctx, chatID, locale.WizardAskPhoto, nil)
	case StatePrice:
		price, err := parsePrice(text)
		if err != nil {
			f.logger.Debug("price rejected", "user_id", userID, "input", text)
			return f.sendPrompt(ctx, chatID, locale.WizardInvalidPrice, nil)
		}
		wctx.Price = price
		return f.advance(ctx, userID, chatID, StateContact, wctx, locale.WizardAskContact, nil)
	case StateContact:
		wctx.Contact = text
		return f.finalize(ctx, userID, chatID, wctx)
	default:
		f.logger.Warn("unexpected wizard state for message", "user_id", userID, "state", state)
		return nil
	}
}

// HandlePhoto feeds a photo message into the wizard
func (f *AdCreationFSM) HandlePhoto(ctx context.Context, update *models.Update) error {
	if update.Message == nil || update.Message.From == nil || len(update.Message.Photo) == 0 {
		return nil
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	state, wctx, err := f.loadSession(ctx, userID)
	if err != nil || wctx == nil {
		return err
	}

	if state != StatePhoto {
		f.logger.Debug("photo ignored outside photo state", "user_id", userID, "state", state)
		return nil
	}

	// Telegram orders size variants smallest first; keep the largest
	sizes := update.Message.Photo
	wctx.PhotoID = sizes[len(sizes)-1].FileID

	return f.advance(ctx, userID, chatID, StatePrice, wctx, locale.WizardAskPrice, nil)
}

// HandleSkip handles the /skip command, valid only in the photo state
func (f *AdCreationFSM) HandleSkip(ctx context.Context, update *models.Update) error {
	if update.Message == nil || update.Message.From == nil {
		return nil
	}

	userID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	state, wctx, err := f.loadSession(ctx, userID)
	if err != nil || wctx == nil {
		return err
	}

	if state != StatePhoto {
		f.logger.Debug("/skip ignored outside photo state", "user_id", userID, "state", state)
		return nil
	}

	wctx.PhotoID = ""
	return f.advance(ctx, userID, chatID, StatePrice, wctx, locale.WizardAskPrice, nil)
}

// loadSession fetches and deserializes the wizard session. A missing
// session returns (_, nil, nil) so callers can ignore stray messages.
func (f *AdCreationFSM) loadSession(ctx context.Context, userID int64) (string, *domain.AdCreationContext, error) {
	state, data, err := f.storage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return "", nil, nil
		}
		f.logger.Error("failed to get wizard session", "user_id", userID, "error", err)
		return "", nil, err
	}

	wctx := &domain.AdCreationContext{}
	if err := wctx.FromMap(data); err != nil {
		f.logger.Error("failed to load wizard context", "user_id", userID, "error", err)
		_ = f.storage.Delete(ctx, userID)
		return "", nil, err
	}

	return state, wctx, nil
}

// advance stores the next state and sends its prompt
func (f *AdCreationFSM) advance(ctx context.Context, userID, chatID int64, nextState string, wctx *domain.AdCreationContext, promptKey string, markup models.ReplyMarkup) error {
	if err := f.storage.Set(ctx, userID, nextState, wctx.ToMap()); err != nil {
		f.logger.Error("failed to store wizard state", "user_id", userID, "state", nextState, "error", err)
		return err
	}

	f.logger.Debug("wizard state transition", "user_id", userID, "new_state", nextState)
	return f.sendPrompt(ctx, chatID, promptKey, markup)
}

// finalize persists the assembled ad, ends the session and re-renders
// the main menu
func (f *AdCreationFSM) finalize(ctx context.Context, userID, chatID int64, wctx *domain.AdCreationContext) error {
	ad := &domain.Advertisement{
		UserID:      userID,
		Category:    wctx.Category,
		Title:       wctx.Title,
		Description: wctx.Description,
		PhotoID:     wctx.PhotoID,
		Price:       wctx.Price,
		Contact:     wctx.Contact,
	}

	if err := f.ads.CreateAd(ctx, ad); err != nil {
		f.logger.Error("failed to persist ad", "user_id", userID, "error", err)
		_ = f.sendPrompt(ctx, chatID, locale.ErrorGeneric, nil)
		return err
	}

	if err := f.storage.Delete(ctx, userID); err != nil {
		return err
	}

	if err := f.sendPrompt(ctx, chatID, locale.WizardAdCreated, nil); err != nil {
		return err
	}

	return f.sendPrompt(ctx, chatID, locale.ChooseAction, mainMenuKeyboard(f.localizer))
}

// sendPrompt sends a localized message with an optional reply markup
func (f *AdCreationFSM) sendPrompt(ctx context.Context, chatID int64, key string, markup models.ReplyMarkup) error {
	_, err := f.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        f.localizer.MustLocalize(key),
		ReplyMarkup: markup,
	})
	if err != nil {
		f.logger.Error("failed to send wizard prompt", "chat_id", chatID, "key", key, "error", err)
	}
	return err
}

// parsePrice parses user input as a non-negative price
func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return 0, errors.New("price must be a non-negative number")
	}
	return price, nil
}
