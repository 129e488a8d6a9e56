package bot

import (
	"context"
	"strings"
	"time"

	"github.com/ad/telegram-classifieds-bot/internal/domain"

	"github.com/go-telegram/bot"
)

// MessageDeleter is the deletion slice of the Telegram API
type MessageDeleter interface {
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

// deleteMessages removes messages from a chat, best effort. Menus and
// pickers are deleted before a listing replaces them; a failure here
// only leaves a stale message behind, so errors are logged and never
// interrupt the flow. Rate-limited deletions get one retry.
func deleteMessages(ctx context.Context, b MessageDeleter, logger domain.Logger, chatID int64, messageIDs ...int) {
	for _, messageID := range messageIDs {
		if err := deleteMessageWithRetry(ctx, b, chatID, messageID); err != nil {
			logger.Warn("message deletion failed",
				"chat_id", chatID,
				"message_id", messageID,
				"error", err.Error())
		} else {
			logger.Debug("message deleted",
				"chat_id", chatID,
				"message_id", messageID)
		}
	}
}

// deleteMessageWithRetry deletes a single message, retrying once after
// a rate limit response
func deleteMessageWithRetry(ctx context.Context, b MessageDeleter, chatID int64, messageID int) error {
	params := &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	}

	_, err := b.DeleteMessage(ctx, params)
	if err == nil {
		return nil
	}

	if !isRateLimitError(err) {
		return err
	}

	time.Sleep(1 * time.Second)

	_, err = b.DeleteMessage(ctx, params)
	return err
}

// isRateLimitError checks if the error is a Telegram rate limit error
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "Too Many Requests") || strings.Contains(errStr, "retry after")
}
