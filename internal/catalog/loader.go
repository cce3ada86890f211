package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/models"
)

const catalogQuery = `SELECT name, price, category, seasonal_months
	FROM catalog_items
	WHERE active = true
	ORDER BY position, name`

// LoadFromPostgres reads active rows of catalog_items in display order.
// An empty table is an error so callers can fall back to Default.
func LoadFromPostgres(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx, catalogQuery)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(fmt.Errorf("query catalog: %w", err))
	}
	defer rows.Close()

	var entries []models.CatalogEntry
	for rows.Next() {
		var (
			e        models.CatalogEntry
			category sql.NullString
			months   pq.Int64Array
		)
		if err := rows.Scan(&e.Name, &e.Price, &category, &months); err != nil {
			return nil, apperrors.NewCatalogLoadFailedError(fmt.Errorf("scan catalog row: %w", err))
		}
		if category.Valid {
			e.Category = category.String
		}
		if e.Category == "" {
			e.Category = GuessCategory(e.Name)
		}
		for _, m := range months {
			if m >= 1 && m <= 12 {
				e.Seasonal = append(e.Seasonal, time.Month(m))
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(fmt.Errorf("iterate catalog rows: %w", err))
	}
	if len(entries) == 0 {
		return nil, apperrors.NewCatalogLoadFailedError(errors.New("catalog_items has no active rows"))
	}
	return New(entries), nil
}
