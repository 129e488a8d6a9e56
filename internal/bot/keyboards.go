package bot

import (
	"fmt"

	"github.com/ad/telegram-classifieds-bot/internal/domain"
	"github.com/ad/telegram-classifieds-bot/internal/locale"

	"github.com/go-telegram/bot/models"
)

// Callback action identifiers
const (
	CallbackShowAll        = "show_all"
	CallbackSearchCategory = "search_cat"
	CallbackMyAds          = "my_ads"
	CallbackAddAd          = "add_ad"
	CallbackBackToMenu     = "back_to_menu"

	categoryPrefix = "cat:"
	deletePrefix   = "delete:"
)

// mainMenuKeyboard builds the four-action main menu
func mainMenuKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: l.MustLocalize(locale.BtnShowAll), CallbackData: CallbackShowAll}},
			{{Text: l.MustLocalize(locale.BtnSearchCategory), CallbackData: CallbackSearchCategory}},
			{{Text: l.MustLocalize(locale.BtnMyAds), CallbackData: CallbackMyAds}},
			{{Text: l.MustLocalize(locale.BtnAddAd), CallbackData: CallbackAddAd}},
		},
	}
}

// categoryPickerKeyboard builds the browse-by-category picker
func categoryPickerKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	var buttons [][]models.InlineKeyboardButton
	for _, category := range domain.Categories {
		buttons = append(buttons, []models.InlineKeyboardButton{
			{Text: category, CallbackData: categoryPrefix + category},
		})
	}
	buttons = append(buttons, []models.InlineKeyboardButton{
		{Text: l.MustLocalize(locale.BtnBackToMenu), CallbackData: CallbackBackToMenu},
	})

	return &models.InlineKeyboardMarkup{InlineKeyboard: buttons}
}

// categoryReplyKeyboard builds the one-shot reply keyboard the wizard
// shows while asking for a category. Free text is accepted too.
func categoryReplyKeyboard() *models.ReplyKeyboardMarkup {
	var rows [][]models.KeyboardButton
	for _, category := range domain.Categories {
		rows = append(rows, []models.KeyboardButton{{Text: category}})
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		OneTimeKeyboard: true,
		ResizeKeyboard:  true,
	}
}

// backToMenuKeyboard builds a single back-to-menu button
func backToMenuKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: l.MustLocalize(locale.BtnBackToMenu), CallbackData: CallbackBackToMenu}},
		},
	}
}

// backToCategoriesKeyboard builds a single back-to-categories button
func backToCategoriesKeyboard(l locale.Localizer) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: l.MustLocalize(locale.BtnBackToCategories), CallbackData: CallbackSearchCategory}},
		},
	}
}

// deleteCallbackData builds the delete action identifier for an ad
func deleteCallbackData(adID int64) string {
	return fmt.Sprintf("%s%d", deletePrefix, adID)
}
