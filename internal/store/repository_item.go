package store

import (
	"context"
	"fmt"

	"github.com/liquify-app/liquify-server/internal/logger"
	"github.com/liquify-app/liquify-server/models"
)

// itemRepository is the PostgreSQL-backed implementation of
// [ItemRepository]. It persists the aggregator item records linked to a
// user, including the access tokens the aggregator hands back during the
// public-token exchange.
type itemRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewItemRepository constructs an [ItemRepository] backed by the provided
// database connection and logger.
func NewItemRepository(db *DB, logger *logger.Logger) ItemRepository {
	logger.Debug().Msg("creating item repository")
	return &itemRepository{
		db:     db,
		logger: logger,
	}
}

// SaveItem persists a newly exchanged aggregator item for the user.
func (r *itemRepository) SaveItem(ctx context.Context, item models.Item) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, saveItem, item.UserID, item.ItemID, item.AccessToken, item.Active); err != nil {
		log.Err(err).Str("func", "*itemRepository.SaveItem").Msg("error: executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// GetItems returns every active item linked to the user. A user with no
// linked accounts yields an empty slice, not an error.
func (r *itemRepository) GetItems(ctx context.Context, userID int64) ([]models.Item, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getItems, userID)
	if err != nil {
		log.Err(err).Str("func", "*itemRepository.GetItems").Msg("error: executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.Item, 0)
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.UserID, &item.ItemID, &item.AccessToken, &item.Active); err != nil {
			log.Err(err).Str("func", "*itemRepository.GetItems").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}
