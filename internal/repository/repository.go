// backend-go/internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/transito-cc/backend-go/internal/domain"
)

// EmployeeRepository fetches the raw roster snapshot. The snapshot is
// superseded wholesale per reporting refresh; there is no incremental
// update path.
type EmployeeRepository interface {
	FetchRoster(ctx context.Context) ([]domain.EmployeeRow, error)
}

// DeliveryRepository fetches the raw delivery-tracking records for a
// caller-supplied date window.
type DeliveryRepository interface {
	FetchWindow(ctx context.Context, from, to time.Time) ([]domain.DeliveryRow, error)
}
