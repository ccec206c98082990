package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transito-cc/backend-go/internal/domain"
)

type deliveryRepository struct {
	db *DB
}

func NewDeliveryRepository(db *DB) *deliveryRepository {
	return &deliveryRepository{db: db}
}

// FetchWindow returns the raw delivery-tracking records whose report date
// falls inside [from, to]. The creation and contact timestamps are kept
// as text: the source emits inconsistent formats and the pipeline owns
// the day-first parse (with failures degrading to null calendar fields
// rather than dropped rows).
func (r *deliveryRepository) FetchWindow(ctx context.Context, from, to time.Time) ([]domain.DeliveryRow, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire db slot: %w", err)
	}
	defer r.db.sem.Release(1)

	query := `
		SELECT
			COALESCE(folio, '')             AS folio,
			COALESCE(phone, '')             AS phone,
			COALESCE(delivery_address, '')  AS delivery_address,
			COALESCE(requesting_center, '') AS requesting_center,
			COALESCE(status, '')            AS status,
			COALESCE(back_office, '')       AS back_office,
			COALESCE(contact_at, '')        AS contact_at,
			COALESCE(created_at, '')        AS created_at,
			COALESCE(sale_ref, '')          AS sale_ref,
			COALESCE(salesperson, '')       AS salesperson
		FROM delivery_schedule
		WHERE report_date >= $1 AND report_date <= $2
		ORDER BY report_date, folio
	`

	var rows []domain.DeliveryRow
	if err := r.db.SelectContext(ctx, &rows, query, from, to); err != nil {
		return nil, fmt.Errorf("failed to fetch delivery window %s..%s: %w",
			from.Format("2006-01-02"), to.Format("2006-01-02"), err)
	}

	log.Debug().
		Int("rows", len(rows)).
		Time("from", from).
		Time("to", to).
		Msg("delivery window fetched")
	return rows, nil
}
