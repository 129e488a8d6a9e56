package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrAdNotFound is returned when the requested ad does not exist
	ErrAdNotFound = errors.New("ad not found")
	// ErrNotAuthorized is returned when the requester may not delete the ad
	ErrNotAuthorized = errors.New("not authorized to delete this ad")
)

// Logger interface for logging
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// AdRepository defines the persistence operations the service needs
type AdRepository interface {
	CreateAd(ctx context.Context, ad *Advertisement) error
	ListRecent(ctx context.Context, limit int) ([]*Advertisement, error)
	ListByCategory(ctx context.Context, category string) ([]*Advertisement, error)
	ListByUser(ctx context.Context, userID int64) ([]*Advertisement, error)
	GetAdOwner(ctx context.Context, adID int64) (int64, error)
	DeleteAd(ctx context.Context, adID int64) (bool, error)
}

// AdService owns ad lifecycle rules: creation-time stamping, validation
// and the owner-or-admin delete check. The admin set is injected at
// construction so tests can substitute it.
type AdService struct {
	repo     AdRepository
	adminIDs map[int64]struct{}
	logger   Logger
}

// NewAdService creates a new AdService
func NewAdService(repo AdRepository, adminUserIDs []int64, logger Logger) *AdService {
	admins := make(map[int64]struct{}, len(adminUserIDs))
	for _, id := range adminUserIDs {
		admins[id] = struct{}{}
	}
	return &AdService{
		repo:     repo,
		adminIDs: admins,
		logger:   logger,
	}
}

// IsAdmin reports whether the user is in the injected admin set
func (s *AdService) IsAdmin(userID int64) bool {
	_, ok := s.adminIDs[userID]
	return ok
}

// CreateAd validates and persists a fully assembled ad as a single
// insert. CreatedAt is stamped here unless the caller already set it.
func (s *AdService) CreateAd(ctx context.Context, ad *Advertisement) error {
	if ad.CreatedAt.IsZero() {
		ad.CreatedAt = time.Now()
	}

	if err := ad.Validate(); err != nil {
		return err
	}

	if err := s.repo.CreateAd(ctx, ad); err != nil {
		s.logger.Error("failed to create ad", "user_id", ad.UserID, "error", err)
		return err
	}

	s.logger.Info("ad created", "ad_id", ad.ID, "user_id", ad.UserID, "category", ad.Category)
	return nil
}

// ListRecent returns the newest ads across all categories, capped at limit
func (s *AdService) ListRecent(ctx context.Context, limit int) ([]*Advertisement, error) {
	return s.repo.ListRecent(ctx, limit)
}

// ListByCategory returns all ads in a category, newest first
func (s *AdService) ListByCategory(ctx context.Context, category string) ([]*Advertisement, error) {
	return s.repo.ListByCategory(ctx, category)
}

// ListByUser returns all ads posted by a user, newest first
func (s *AdService) ListByUser(ctx context.Context, userID int64) ([]*Advertisement, error) {
	return s.repo.ListByUser(ctx, userID)
}

// CanDelete reports whether the viewer may delete the given ad
func (s *AdService) CanDelete(viewerID int64, ad *Advertisement) bool {
	return viewerID == ad.UserID || s.IsAdmin(viewerID)
}

// DeleteAd removes an ad after an ownership check. It returns
// ErrAdNotFound for unknown IDs and ErrNotAuthorized when the requester
// is neither the owner nor an admin; the record is untouched in both
// cases.
func (s *AdService) DeleteAd(ctx context.Context, adID int64, requesterID int64) error {
	ownerID, err := s.repo.GetAdOwner(ctx, adID)
	if err != nil {
		if errors.Is(err, ErrAdNotFound) {
			s.logger.Debug("delete requested for unknown ad", "ad_id", adID, "requester_id", requesterID)
			return ErrAdNotFound
		}
		s.logger.Error("failed to look up ad owner", "ad_id", adID, "error", err)
		return err
	}

	if ownerID != requesterID && !s.IsAdmin(requesterID) {
		s.logger.Warn("unauthorized delete attempt", "ad_id", adID, "requester_id", requesterID, "owner_id", ownerID)
		return ErrNotAuthorized
	}

	deleted, err := s.repo.DeleteAd(ctx, adID)
	if err != nil {
		s.logger.Error("failed to delete ad", "ad_id", adID, "error", err)
		return err
	}
	if !deleted {
		// Removed between the owner lookup and the delete
		return ErrAdNotFound
	}

	s.logger.Info("ad deleted", "ad_id", adID, "requester_id", requesterID, "owner_id", ownerID)
	return nil
}
