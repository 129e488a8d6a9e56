package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ad/telegram-classifieds-bot/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	_ "modernc.org/sqlite"
)

func newTestAdRepository(t *testing.T) *AdRepository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	queue := NewDBQueue(db)
	t.Cleanup(queue.Close)

	if err := InitSchema(queue); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := RunMigrations(queue); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return NewAdRepository(queue)
}

func testAd(userID int64, category, title string, createdAt time.Time) *domain.Advertisement {
	return &domain.Advertisement{
		UserID:      userID,
		Category:    category,
		Title:       title,
		Description: "Description for " + title,
		Price:       100,
		Contact:     "@someone",
		CreatedAt:   createdAt,
	}
}

func TestAdRoundTrip(t *testing.T) {
	repo := newTestAdRepository(t)

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("ad round-trip preserves all fields", prop.ForAll(
		func(userID int64, title string, description string, price float64, hasPhoto bool) bool {
			now := time.Now().Truncate(time.Second)

			ad := &domain.Advertisement{
				UserID:      userID,
				Category:    "up to 1000",
				Title:       title,
				Description: description,
				Price:       price,
				Contact:     "@contact",
				CreatedAt:   now,
			}
			if hasPhoto {
				ad.PhotoID = "photo_" + title
			}

			if err := ad.Validate(); err != nil {
				return true // Skip invalid inputs
			}

			ctx := context.Background()

			if err := repo.CreateAd(ctx, ad); err != nil {
				t.Logf("Failed to create ad: %v", err)
				return false
			}
			if ad.ID == 0 {
				t.Logf("CreateAd did not assign an ID")
				return false
			}

			retrieved, err := repo.GetAd(ctx, ad.ID)
			if err != nil {
				t.Logf("Failed to get ad: %v", err)
				return false
			}

			if retrieved.UserID != ad.UserID {
				t.Logf("UserID mismatch: expected %d, got %d", ad.UserID, retrieved.UserID)
				return false
			}
			if retrieved.Title != ad.Title {
				t.Logf("Title mismatch: expected %q, got %q", ad.Title, retrieved.Title)
				return false
			}
			if retrieved.Description != ad.Description {
				t.Logf("Description mismatch: expected %q, got %q", ad.Description, retrieved.Description)
				return false
			}
			if retrieved.PhotoID != ad.PhotoID {
				t.Logf("PhotoID mismatch: expected %q, got %q", ad.PhotoID, retrieved.PhotoID)
				return false
			}
			if retrieved.Price != ad.Price {
				t.Logf("Price mismatch: expected %v, got %v", ad.Price, retrieved.Price)
				return false
			}
			if retrieved.Contact != ad.Contact {
				t.Logf("Contact mismatch: expected %q, got %q", ad.Contact, retrieved.Contact)
				return false
			}
			if !retrieved.CreatedAt.Equal(ad.CreatedAt) {
				t.Logf("CreatedAt mismatch: expected %v, got %v", ad.CreatedAt, retrieved.CreatedAt)
				return false
			}

			return true
		},
		gen.Int64Range(1, 1000000),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.Float64Range(0, 1000000),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestListRecentOrderingAndLimit(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 15; i++ {
		ad := testAd(1, "up to 1000", fmt.Sprintf("Ad %d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.CreateAd(ctx, ad); err != nil {
			t.Fatalf("Failed to create ad %d: %v", i, err)
		}
	}

	ads, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list recent ads: %v", err)
	}

	if len(ads) != 10 {
		t.Fatalf("Expected 10 ads, got %d", len(ads))
	}

	// Newest first
	if ads[0].Title != "Ad 14" {
		t.Errorf("Expected newest ad first, got %q", ads[0].Title)
	}
	for i := 1; i < len(ads); i++ {
		if ads[i].CreatedAt.After(ads[i-1].CreatedAt) {
			t.Errorf("Ads out of order at index %d: %v after %v", i, ads[i].CreatedAt, ads[i-1].CreatedAt)
		}
	}
}

func TestListRecentTieBreaksByID(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	now := time.Now().Truncate(time.Second)
	first := testAd(1, "up to 1000", "First", now)
	second := testAd(1, "up to 1000", "Second", now)

	if err := repo.CreateAd(ctx, first); err != nil {
		t.Fatalf("Failed to create first ad: %v", err)
	}
	if err := repo.CreateAd(ctx, second); err != nil {
		t.Fatalf("Failed to create second ad: %v", err)
	}

	ads, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("Failed to list recent ads: %v", err)
	}

	if len(ads) != 2 {
		t.Fatalf("Expected 2 ads, got %d", len(ads))
	}
	// Same timestamp resolves to the later insert first
	if ads[0].ID != second.ID {
		t.Errorf("Expected ad %d first, got %d", second.ID, ads[0].ID)
	}
}

func TestListByCategory(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 12; i++ {
		category := "up to 1000"
		if i%3 == 0 {
			category = "over 4000"
		}
		ad := testAd(int64(i+1), category, fmt.Sprintf("Ad %d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.CreateAd(ctx, ad); err != nil {
			t.Fatalf("Failed to create ad %d: %v", i, err)
		}
	}

	ads, err := repo.ListByCategory(ctx, "over 4000")
	if err != nil {
		t.Fatalf("Failed to list by category: %v", err)
	}

	if len(ads) != 4 {
		t.Fatalf("Expected 4 ads, got %d", len(ads))
	}
	for i, ad := range ads {
		if ad.Category != "over 4000" {
			t.Errorf("Ad %d has wrong category %q", i, ad.Category)
		}
		if i > 0 && ads[i].CreatedAt.After(ads[i-1].CreatedAt) {
			t.Errorf("Category listing out of order at index %d", i)
		}
	}

	empty, err := repo.ListByCategory(ctx, "no such category")
	if err != nil {
		t.Fatalf("Failed to list empty category: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty result, got %d ads", len(empty))
	}
}

func TestListByUser(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i := 0; i < 20; i++ {
		userID := int64(1)
		if i%2 == 0 {
			userID = 2
		}
		ad := testAd(userID, "up to 2000", fmt.Sprintf("Ad %d", i), base.Add(time.Duration(i)*time.Minute))
		if err := repo.CreateAd(ctx, ad); err != nil {
			t.Fatalf("Failed to create ad %d: %v", i, err)
		}
	}

	ads, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list by user: %v", err)
	}

	// My ads listing is not capped
	if len(ads) != 10 {
		t.Fatalf("Expected 10 ads for user 1, got %d", len(ads))
	}
	for i, ad := range ads {
		if ad.UserID != 1 {
			t.Errorf("Ad %d belongs to user %d", i, ad.UserID)
		}
	}
}

func TestGetAdOwner(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	ad := testAd(99, "up to 3000", "Owned", time.Now())
	if err := repo.CreateAd(ctx, ad); err != nil {
		t.Fatalf("Failed to create ad: %v", err)
	}

	ownerID, err := repo.GetAdOwner(ctx, ad.ID)
	if err != nil {
		t.Fatalf("Failed to get ad owner: %v", err)
	}
	if ownerID != 99 {
		t.Errorf("Expected owner 99, got %d", ownerID)
	}

	_, err = repo.GetAdOwner(ctx, 12345)
	if !errors.Is(err, domain.ErrAdNotFound) {
		t.Errorf("Expected ErrAdNotFound for unknown ad, got: %v", err)
	}
}

func TestDeleteAd(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	ad := testAd(5, "up to 1000", "Doomed", time.Now())
	if err := repo.CreateAd(ctx, ad); err != nil {
		t.Fatalf("Failed to create ad: %v", err)
	}

	deleted, err := repo.DeleteAd(ctx, ad.ID)
	if err != nil {
		t.Fatalf("Failed to delete ad: %v", err)
	}
	if !deleted {
		t.Error("Expected deleted=true for existing ad")
	}

	if _, err := repo.GetAd(ctx, ad.ID); !errors.Is(err, domain.ErrAdNotFound) {
		t.Errorf("Expected ErrAdNotFound after delete, got: %v", err)
	}

	deleted, err = repo.DeleteAd(ctx, ad.ID)
	if err != nil {
		t.Fatalf("Second delete returned error: %v", err)
	}
	if deleted {
		t.Error("Expected deleted=false for already removed ad")
	}
}

func TestDeleteAdLeavesOthersIntact(t *testing.T) {
	repo := newTestAdRepository(t)
	ctx := context.Background()

	keep := testAd(1, "up to 1000", "Keep", time.Now())
	drop := testAd(1, "up to 1000", "Drop", time.Now())
	for _, ad := range []*domain.Advertisement{keep, drop} {
		if err := repo.CreateAd(ctx, ad); err != nil {
			t.Fatalf("Failed to create ad: %v", err)
		}
	}

	if _, err := repo.DeleteAd(ctx, drop.ID); err != nil {
		t.Fatalf("Failed to delete ad: %v", err)
	}

	remaining, err := repo.ListByUser(ctx, 1)
	if err != nil {
		t.Fatalf("Failed to list user ads: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("Expected only ad %d to remain, got %d ads", keep.ID, len(remaining))
	}
}
