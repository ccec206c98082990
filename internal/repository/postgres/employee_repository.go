package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/transito-cc/backend-go/internal/domain"
)

type employeeRepository struct {
	db *DB
}

func NewEmployeeRepository(db *DB) *employeeRepository {
	return &employeeRepository{db: db}
}

// FetchRoster returns the current employee snapshot, raw. Eligibility
// filtering, deduplication and supervisor resolution happen in the
// pipeline so the rules stay testable outside SQL. NULL text columns
// come back as empty strings and are collapsed by the normalizer.
func (r *employeeRepository) FetchRoster(ctx context.Context) ([]domain.EmployeeRow, error) {
	if err := r.db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("could not acquire db slot: %w", err)
	}
	defer r.db.sem.Release(1)

	query := `
		SELECT
			COALESCE(full_name, '')      AS full_name,
			COALESCE(supervisor, '')     AS supervisor,
			COALESCE(region, '')         AS region,
			COALESCE(sub_region, '')     AS sub_region,
			COALESCE(venue, '')          AS venue,
			COALESCE(store, '')          AS store,
			COALESCE(role, '')           AS role,
			COALESCE(sales_channel, '')  AS sales_channel,
			COALESCE(store_type, '')     AS store_type,
			COALESCE(operation_unit, '') AS operation_unit,
			COALESCE(status, '')         AS status
		FROM employee_roster
	`

	var rows []domain.EmployeeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to fetch employee roster: %w", err)
	}

	log.Debug().Int("rows", len(rows)).Msg("employee roster fetched")
	return rows, nil
}
