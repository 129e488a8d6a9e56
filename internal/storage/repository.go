package storage

import (
	"context"

	"github.com/ad/telegram-classifieds-bot/internal/domain"
)

// AdRepositoryInterface defines the interface for ad operations
type AdRepositoryInterface interface {
	CreateAd(ctx context.Context, ad *domain.Advertisement) error
	ListRecent(ctx context.Context, limit int) ([]*domain.Advertisement, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Advertisement, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Advertisement, error)
	GetAd(ctx context.Context, adID int64) (*domain.Advertisement, error)
	GetAdOwner(ctx context.Context, adID int64) (int64, error)
	DeleteAd(ctx context.Context, adID int64) (bool, error)
}

// SessionStorageInterface defines the interface for wizard session persistence
type SessionStorageInterface interface {
	Get(ctx context.Context, userID int64) (string, map[string]interface{}, error)
	Set(ctx context.Context, userID int64, state string, data map[string]interface{}) error
	Delete(ctx context.Context, userID int64) error
	CleanupStale(ctx context.Context) error
}
