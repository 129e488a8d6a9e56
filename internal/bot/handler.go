package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/ad/telegram-classifieds-bot/internal/config"
	"github.com/ad/telegram-classifieds-bot/internal/domain"
	"github.com/ad/telegram-classifieds-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotHandler handles menu navigation, listings and ad deletion.
// All listing operations are read-only; deletion is the only mutation
// reachable from here.
type BotHandler struct {
	client    TelegramClient
	ads       *domain.AdService
	wizard    *AdCreationFSM
	config    *config.Config
	localizer locale.Localizer
	logger    domain.Logger
}

// NewBotHandler creates a new BotHandler
func NewBotHandler(
	client TelegramClient,
	ads *domain.AdService,
	wizard *AdCreationFSM,
	cfg *config.Config,
	localizer locale.Localizer,
	logger domain.Logger,
) *BotHandler {
	return &BotHandler{
		client:    client,
		ads:       ads,
		wizard:    wizard,
		config:    cfg,
		localizer: localizer,
		logger:    logger,
	}
}

// HandleStart handles the /start command: welcome text plus main menu
func (h *BotHandler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        h.localizer.MustLocalize(locale.WelcomeMessage),
		ReplyMarkup: mainMenuKeyboard(h.localizer),
	})
	if err != nil {
		h.logger.Error("failed to send welcome message", "chat_id", update.Message.Chat.ID, "error", err)
	}
}

// HandleAdd handles the /add command: starts the ad creation wizard
func (h *BotHandler) HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	if err := h.wizard.Start(ctx, update.Message.From.ID, update.Message.Chat.ID); err != nil {
		h.logger.Error("failed to start wizard", "user_id", update.Message.From.ID, "error", err)
	}
}

// HandleCancel handles the /cancel command: aborts any wizard session
// and re-renders the main menu. No ad is created.
func (h *BotHandler) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	chatID := update.Message.Chat.ID

	if _, err := h.wizard.Cancel(ctx, update.Message.From.ID); err != nil {
		h.logger.Error("failed to cancel wizard", "user_id", update.Message.From.ID, "error", err)
	}

	// Drop the wizard's reply keyboard if one is still showing
	_, _ = h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(locale.WizardCancelled),
		ReplyMarkup: &models.ReplyKeyboardRemove{RemoveKeyboard: true},
	})
	h.sendMainMenu(ctx, chatID)
}

// HandleSkip handles the /skip command (photo step only)
func (h *BotHandler) HandleSkip(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.wizard.HandleSkip(ctx, update); err != nil {
		h.logger.Error("wizard skip handling failed", "error", err)
	}
}

// HandleMessage handles free-text messages. Text is only meaningful
// while a wizard session is active; anything else is ignored.
func (h *BotHandler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	userID := update.Message.From.ID

	hasSession, err := h.wizard.HasSession(ctx, userID)
	if err != nil {
		h.logger.Error("failed to check wizard session", "user_id", userID, "error", err)
		return
	}
	if !hasSession {
		return
	}

	if err := h.wizard.HandleMessage(ctx, update); err != nil {
		h.logger.Error("wizard message handling failed", "user_id", userID, "error", err)
	}
}

// HandlePhotoMessage handles photo uploads (wizard photo step only)
func (h *BotHandler) HandlePhotoMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if err := h.wizard.HandlePhoto(ctx, update); err != nil {
		h.logger.Error("wizard photo handling failed", "error", err)
	}
}

// HandleCallback handles callback queries (button clicks)
func (h *BotHandler) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}

	callback := update.CallbackQuery
	userID := callback.From.ID
	data := callback.Data

	// Answer the callback query to remove the loading state
	_, _ = h.client.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callback.ID,
	})

	msg := callback.Message.Message
	if msg == nil {
		h.logger.Warn("callback without accessible message", "user_id", userID, "data", data)
		return
	}
	chatID := msg.Chat.ID

	switch {
	case data == CallbackShowAll:
		deleteMessages(ctx, h.client, h.logger, chatID, msg.ID)
		h.showAllAds(ctx, chatID, userID)
	case data == CallbackMyAds:
		deleteMessages(ctx, h.client, h.logger, chatID, msg.ID)
		h.showMyAds(ctx, chatID, userID)
	case data == CallbackAddAd:
		deleteMessages(ctx, h.client, h.logger, chatID, msg.ID)
		if err := h.wizard.Start(ctx, userID, chatID); err != nil {
			h.logger.Error("failed to start wizard", "user_id", userID, "error", err)
		}
	case data == CallbackSearchCategory:
		h.showCategoryPicker(ctx, chatID, msg.ID)
	case data == CallbackBackToMenu:
		h.editToMainMenu(ctx, chatID, msg.ID)
	case strings.HasPrefix(data, categoryPrefix):
		h.showCategoryAds(ctx, chatID, msg.ID, userID, strings.TrimPrefix(data, categoryPrefix))
	case strings.HasPrefix(data, deletePrefix):
		h.handleDeleteCallback(ctx, chatID, userID, strings.TrimPrefix(data, deletePrefix))
	default:
		h.logger.Warn("unexpected callback", "user_id", userID, "data", data)
	}
}

// sendMainMenu sends the main menu as a new message
func (h *BotHandler) sendMainMenu(ctx context.Context, chatID int64) {
	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(locale.ChooseAction),
		ReplyMarkup: mainMenuKeyboard(h.localizer),
	})
	if err != nil {
		h.logger.Error("failed to send main menu", "chat_id", chatID, "error", err)
	}
}

// editToMainMenu edits an existing message back into the main menu
func (h *BotHandler) editToMainMenu(ctx context.Context, chatID int64, messageID int) {
	_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        h.localizer.MustLocalize(locale.ChooseAction),
		ReplyMarkup: mainMenuKeyboard(h.localizer),
	})
	if err != nil {
		h.logger.Error("failed to edit message to main menu", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

// showCategoryPicker edits the current message into the category picker
func (h *BotHandler) showCategoryPicker(ctx context.Context, chatID int64, messageID int) {
	_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      chatID,
		MessageID:   messageID,
		Text:        h.localizer.MustLocalize(locale.CategoryPickerPrompt),
		ReplyMarkup: categoryPickerKeyboard(h.localizer),
	})
	if err != nil {
		h.logger.Error("failed to show category picker", "chat_id", chatID, "error", err)
	}
}

// showAllAds renders the newest ads across all categories, capped at
// the configured limit
func (h *BotHandler) showAllAds(ctx context.Context, chatID int64, viewerID int64) {
	ads, err := h.ads.ListRecent(ctx, h.config.ShowAllLimit)
	if err != nil {
		h.logger.Error("failed to list recent ads", "error", err)
		h.sendText(ctx, chatID, locale.ErrorGeneric, nil)
		return
	}

	if len(ads) == 0 {
		h.sendText(ctx, chatID, locale.AllAdsEmpty, backToMenuKeyboard(h.localizer))
		return
	}

	h.sendText(ctx, chatID, locale.AllAdsHeader, nil)
	h.sendAdList(ctx, chatID, viewerID, ads, true, backToMenuKeyboard(h.localizer).InlineKeyboard[0])
}

// showMyAds renders all ads posted by the requester. Every ad gets a
// delete button since they all belong to the viewer.
func (h *BotHandler) showMyAds(ctx context.Context, chatID int64, viewerID int64) {
	ads, err := h.ads.ListByUser(ctx, viewerID)
	if err != nil {
		h.logger.Error("failed to list user ads", "user_id", viewerID, "error", err)
		h.sendText(ctx, chatID, locale.ErrorGeneric, nil)
		return
	}

	if len(ads) == 0 {
		h.sendText(ctx, chatID, locale.MyAdsEmpty, backToMenuKeyboard(h.localizer))
		return
	}

	h.sendText(ctx, chatID, locale.MyAdsHeader, nil)
	h.sendAdList(ctx, chatID, viewerID, ads, true, backToMenuKeyboard(h.localizer).InlineKeyboard[0])
}

// showCategoryAds renders all ads in a category. The picker message is
// deleted first and the header sent fresh, so the listing reads as a
// new conversation turn.
func (h *BotHandler) showCategoryAds(ctx context.Context, chatID int64, pickerMessageID int, viewerID int64, category string) {
	ads, err := h.ads.ListByCategory(ctx, category)
	if err != nil {
		h.logger.Error("failed to list category ads", "category", category, "error", err)
		h.sendText(ctx, chatID, locale.ErrorGeneric, nil)
		return
	}

	if len(ads) == 0 {
		_, err := h.client.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   pickerMessageID,
			Text:        h.localizer.MustLocalizeWithTemplate(locale.CategoryEmpty, category),
			ReplyMarkup: backToCategoriesKeyboard(h.localizer),
		})
		if err != nil {
			h.logger.Error("failed to show empty category message", "category", category, "error", err)
		}
		return
	}

	deleteMessages(ctx, h.client, h.logger, chatID, pickerMessageID)

	_, err = h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   h.localizer.MustLocalizeWithTemplate(locale.CategoryHeader, category),
	})
	if err != nil {
		h.logger.Error("failed to send category header", "category", category, "error", err)
	}

	h.sendAdList(ctx, chatID, viewerID, ads, false, backToCategoriesKeyboard(h.localizer).InlineKeyboard[0])
}

// sendAdList sends one message per ad: photo with caption when the ad
// has one, plain text otherwise. A delete button appears when the
// viewer may delete the ad and the last ad carries the back action.
// Individual send failures are logged and the rest of the listing
// continues; there is no rollback of messages already sent.
func (h *BotHandler) sendAdList(ctx context.Context, chatID int64, viewerID int64, ads []*domain.Advertisement, withCategory bool, backRow []models.InlineKeyboardButton) {
	for i, ad := range ads {
		var rows [][]models.InlineKeyboardButton

		if h.ads.CanDelete(viewerID, ad) {
			rows = append(rows, []models.InlineKeyboardButton{
				{Text: h.localizer.MustLocalize(locale.BtnDelete), CallbackData: deleteCallbackData(ad.ID)},
			})
		}
		if i == len(ads)-1 {
			rows = append(rows, backRow)
		}

		var markup models.ReplyMarkup
		if len(rows) > 0 {
			markup = &models.InlineKeyboardMarkup{InlineKeyboard: rows}
		}

		text := h.formatAdCard(ad, withCategory)

		var err error
		if ad.HasPhoto() {
			_, err = h.client.SendPhoto(ctx, &bot.SendPhotoParams{
				ChatID:      chatID,
				Photo:       &models.InputFileString{Data: ad.PhotoID},
				Caption:     text,
				ReplyMarkup: markup,
			})
		} else {
			_, err = h.client.SendMessage(ctx, &bot.SendMessageParams{
				ChatID:      chatID,
				Text:        text,
				ReplyMarkup: markup,
			})
		}

		if err != nil {
			h.logger.Error("failed to send ad message", "ad_id", ad.ID, "chat_id", chatID, "error", err)
		}
	}
}

// handleDeleteCallback processes a delete button press
func (h *BotHandler) handleDeleteCallback(ctx context.Context, chatID int64, userID int64, idStr string) {
	adID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.logger.Error("invalid delete callback data", "data", idStr, "error", err)
		return
	}

	err = h.ads.DeleteAd(ctx, adID, userID)
	switch {
	case err == nil:
		h.sendText(ctx, chatID, locale.DeleteSuccess, nil)
		h.sendMainMenu(ctx, chatID)
	case errors.Is(err, domain.ErrNotAuthorized):
		h.sendText(ctx, chatID, locale.DeleteDenied, nil)
	case errors.Is(err, domain.ErrAdNotFound):
		h.sendText(ctx, chatID, locale.DeleteNotFound, nil)
	default:
		h.logger.Error("delete failed", "ad_id", adID, "user_id", userID, "error", err)
		h.sendText(ctx, chatID, locale.ErrorGeneric, nil)
	}
}

// formatAdCard renders the per-ad message text
func (h *BotHandler) formatAdCard(ad *domain.Advertisement, withCategory bool) string {
	price := formatPrice(ad.Price)
	if withCategory {
		return h.localizer.MustLocalizeWithTemplate(locale.AdCard,
			ad.Title, ad.Category, ad.Description, price, ad.Contact)
	}
	return h.localizer.MustLocalizeWithTemplate(locale.AdCardNoCategory,
		ad.Title, ad.Description, price, ad.Contact)
}

// sendText sends a localized message with an optional keyboard
func (h *BotHandler) sendText(ctx context.Context, chatID int64, key string, markup models.ReplyMarkup) {
	_, err := h.client.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(key),
		ReplyMarkup: markup,
	})
	if err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "key", key, "error", err)
	}
}

// formatPrice renders a price without trailing zeros
func formatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
