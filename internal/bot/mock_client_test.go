package bot

import (
	"context"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// sentMessage records one outbound message for assertions
type sentMessage struct {
	ChatID      any
	Text        string
	PhotoFileID string
	IsPhoto     bool
	ReplyMarkup models.ReplyMarkup
}

// MockTelegramClient records every outbound call instead of hitting
// the Telegram API
type MockTelegramClient struct {
	mu            sync.Mutex
	nextMessageID int

	Sent            []sentMessage
	Edits           []*bot.EditMessageTextParams
	Deleted         []int
	AnsweredQueries []string

	SendMessageErr error
}

func NewMockTelegramClient() *MockTelegramClient {
	return &MockTelegramClient{nextMessageID: 1000}
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendMessageErr != nil {
		return nil, m.SendMessageErr
	}

	m.Sent = append(m.Sent, sentMessage{
		ChatID:      params.ChatID,
		Text:        params.Text,
		ReplyMarkup: params.ReplyMarkup,
	})
	m.nextMessageID++
	return &models.Message{ID: m.nextMessageID}, nil
}

func (m *MockTelegramClient) SendPhoto(ctx context.Context, params *bot.SendPhotoParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var fileID string
	if f, ok := params.Photo.(*models.InputFileString); ok {
		fileID = f.Data
	}

	m.Sent = append(m.Sent, sentMessage{
		ChatID:      params.ChatID,
		Text:        params.Caption,
		PhotoFileID: fileID,
		IsPhoto:     true,
		ReplyMarkup: params.ReplyMarkup,
	})
	m.nextMessageID++
	return &models.Message{ID: m.nextMessageID}, nil
}

func (m *MockTelegramClient) EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Edits = append(m.Edits, params)
	return &models.Message{ID: params.MessageID}, nil
}

func (m *MockTelegramClient) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Deleted = append(m.Deleted, params.MessageID)
	return true, nil
}

func (m *MockTelegramClient) AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AnsweredQueries = append(m.AnsweredQueries, params.CallbackQueryID)
	return true, nil
}

// LastText returns the text of the most recent outbound message
func (m *MockTelegramClient) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Text
}

// Reset clears the recorded calls
func (m *MockTelegramClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Sent = nil
	m.Edits = nil
	m.Deleted = nil
	m.AnsweredQueries = nil
}
