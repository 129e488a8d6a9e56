package domain

import (
	"errors"
	"time"
)

// Validation errors
var (
	ErrEmptyCategory    = errors.New("category cannot be empty")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyContact     = errors.New("contact cannot be empty")
	ErrNegativePrice    = errors.New("price cannot be negative")
	ErrInvalidPoster    = errors.New("poster user ID must be set")
)

// Categories is the fixed set of price-bracket labels shown to users.
// The labels are stored verbatim in the category column, so changing
// them orphans existing ads in their old bracket.
var Categories = []string{
	"up to 1000",
	"up to 2000",
	"up to 3000",
	"up to 4000",
	"over 4000",
}

// Advertisement represents a single classified listing.
// Ads are immutable once created; the only mutation is a hard delete.
type Advertisement struct {
	ID          int64
	UserID      int64
	Category    string
	Title       string
	Description string
	PhotoID     string // Telegram file ID; empty when the poster skipped the photo
	Price       float64
	Contact     string
	CreatedAt   time.Time
}

// HasPhoto reports whether the ad carries a photo reference
func (a *Advertisement) HasPhoto() bool {
	return a.PhotoID != ""
}

// Validate validates an Advertisement before it is persisted
func (a *Advertisement) Validate() error {
	if a.UserID == 0 {
		return ErrInvalidPoster
	}
	if a.Category == "" {
		return ErrEmptyCategory
	}
	if a.Title == "" {
		return ErrEmptyTitle
	}
	if a.Description == "" {
		return ErrEmptyDescription
	}
	if a.Price < 0 {
		return ErrNegativePrice
	}
	if a.Contact == "" {
		return ErrEmptyContact
	}
	return nil
}
