package storage

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ad/telegram-classifieds-bot/internal/domain"
)

// AdRepository handles advertisement data operations
type AdRepository struct {
	queue *DBQueue
}

// NewAdRepository creates a new AdRepository
func NewAdRepository(queue *DBQueue) *AdRepository {
	return &AdRepository{queue: queue}
}

const adColumns = "id, user_id, category, title, description, photo_id, price, contact, created_at"

// CreateAd inserts a fully assembled ad and assigns its ID
func (r *AdRepository) CreateAd(ctx context.Context, ad *domain.Advertisement) error {
	return r.queue.Execute(func(db *sql.DB) error {
		photoID := sql.NullString{String: ad.PhotoID, Valid: ad.PhotoID != ""}

		result, err := db.ExecContext(ctx,
			`INSERT INTO advertisements (user_id, category, title, description, photo_id, price, contact, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ad.UserID, ad.Category, ad.Title, ad.Description, photoID, ad.Price, ad.Contact, ad.CreatedAt,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		ad.ID = id
		return nil
	})
}

// ListRecent retrieves the newest ads across all categories, capped at limit
func (r *AdRepository) ListRecent(ctx context.Context, limit int) ([]*domain.Advertisement, error) {
	return r.queryAds(ctx,
		`SELECT `+adColumns+` FROM advertisements ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// ListByCategory retrieves all ads in a category, newest first
func (r *AdRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Advertisement, error) {
	return r.queryAds(ctx,
		`SELECT `+adColumns+` FROM advertisements WHERE category = ? ORDER BY created_at DESC, id DESC`,
		category,
	)
}

// ListByUser retrieves all ads posted by a user, newest first
func (r *AdRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Advertisement, error) {
	return r.queryAds(ctx,
		`SELECT `+adColumns+` FROM advertisements WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
}

// GetAd retrieves a single ad by ID
func (r *AdRepository) GetAd(ctx context.Context, adID int64) (*domain.Advertisement, error) {
	var ad domain.Advertisement
	var photoID sql.NullString

	err := r.queue.Execute(func(db *sql.DB) error {
		return db.QueryRowContext(ctx,
			`SELECT `+adColumns+` FROM advertisements WHERE id = ?`,
			adID,
		).Scan(
			&ad.ID, &ad.UserID, &ad.Category, &ad.Title, &ad.Description,
			&photoID, &ad.Price, &ad.Contact, &ad.CreatedAt,
		)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAdNotFound
	}
	if err != nil {
		return nil, err
	}

	if photoID.Valid {
		ad.PhotoID = photoID.String
	}

	return &ad, nil
}

// GetAdOwner retrieves the posting user of an ad.
// Returns domain.ErrAdNotFound for unknown IDs.
func (r *AdRepository) GetAdOwner(ctx context.Context, adID int64) (int64, error) {
	var ownerID int64

	err := r.queue.Execute(func(db *sql.DB) error {
		return db.QueryRowContext(ctx,
			`SELECT user_id FROM advertisements WHERE id = ?`,
			adID,
		).Scan(&ownerID)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrAdNotFound
	}
	if err != nil {
		return 0, err
	}

	return ownerID, nil
}

// DeleteAd removes an ad. The returned flag reports whether a row was
// actually deleted.
func (r *AdRepository) DeleteAd(ctx context.Context, adID int64) (bool, error) {
	var deleted bool

	err := r.queue.Execute(func(db *sql.DB) error {
		result, err := db.ExecContext(ctx, `DELETE FROM advertisements WHERE id = ?`, adID)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		deleted = affected > 0
		return nil
	})

	if err != nil {
		return false, err
	}
	return deleted, nil
}

// queryAds runs a listing query and scans the rows
func (r *AdRepository) queryAds(ctx context.Context, query string, args ...interface{}) ([]*domain.Advertisement, error) {
	var ads []*domain.Advertisement

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var ad domain.Advertisement
			var photoID sql.NullString

			if err := rows.Scan(
				&ad.ID, &ad.UserID, &ad.Category, &ad.Title, &ad.Description,
				&photoID, &ad.Price, &ad.Contact, &ad.CreatedAt,
			); err != nil {
				return err
			}

			if photoID.Valid {
				ad.PhotoID = photoID.String
			}

			ads = append(ads, &ad)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return ads, nil
}
