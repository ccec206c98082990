// backend-go/internal/service/report_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/transito-cc/backend-go/internal/cache"
	"github.com/transito-cc/backend-go/internal/domain"
	"github.com/transito-cc/backend-go/internal/pipeline"
	"github.com/transito-cc/backend-go/internal/repository"
	"github.com/transito-cc/backend-go/internal/storage"
)

// ReportService glues the snapshot repositories, the reconciliation
// pipeline and the cache together. The upstream fetch is the only
// blocking step; once both snapshots are in memory the pipeline runs
// synchronously to completion.
type ReportService struct {
	employees  repository.EmployeeRepository
	deliveries repository.DeliveryRepository
	pipe       *pipeline.Pipeline
	cache      cache.ReportCache
	archive    storage.ObjectStorage
}

func NewReportService(
	employees repository.EmployeeRepository,
	deliveries repository.DeliveryRepository,
	pipe *pipeline.Pipeline,
	reportCache cache.ReportCache,
	archive storage.ObjectStorage,
) *ReportService {
	return &ReportService{
		employees:  employees,
		deliveries: deliveries,
		pipe:       pipe,
		cache:      reportCache,
		archive:    archive,
	}
}

// Dataset returns the classified dataset for a date window, from cache
// when fresh, otherwise by fetching both snapshots (concurrently) and
// running the pipeline. A cache miss rebuild replaces the entry
// wholesale.
func (s *ReportService) Dataset(ctx context.Context, from, to time.Time) (*domain.ReportDataset, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid window: %s is after %s",
			from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	if cached, ok, err := s.cache.GetDataset(ctx, from, to); err != nil {
		log.Warn().Err(err).Msg("report cache read failed, rebuilding")
	} else if ok {
		return cached, nil
	}

	var (
		employeeRows []domain.EmployeeRow
		deliveryRows []domain.DeliveryRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.employees.FetchRoster(gctx)
		if err != nil {
			return err
		}
		employeeRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.deliveries.FetchWindow(gctx, from, to)
		if err != nil {
			return err
		}
		deliveryRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot fetch failed: %w", err)
	}

	dataset := s.pipe.Run(from, to, employeeRows, deliveryRows)

	if err := s.cache.SetDataset(ctx, dataset); err != nil {
		log.Warn().Err(err).Msg("report cache write failed")
	}

	return dataset, nil
}

// Summary computes the KPI scalars for a window, after applying the
// report filter. The no-sale count always uses the month of ref over the
// unfiltered classified set, matching the source reports.
func (s *ReportService) Summary(ctx context.Context, from, to time.Time, filter domain.ReportFilter, ref time.Time) (*domain.KPISummary, error) {
	dataset, err := s.Dataset(ctx, from, to)
	if err != nil {
		return nil, err
	}

	noSale := s.pipe.NoSale(dataset.Roster, dataset.Deliveries, ref)
	filtered := pipeline.FilterDeliveries(dataset.Deliveries, filter)

	summary := pipeline.Summarize(filtered, len(noSale))
	return &summary, nil
}

// Deliveries returns the filtered classified rows.
func (s *ReportService) Deliveries(ctx context.Context, from, to time.Time, filter domain.ReportFilter) ([]domain.Delivery, error) {
	dataset, err := s.Dataset(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return pipeline.FilterDeliveries(dataset.Deliveries, filter), nil
}

// NoSale returns the anti-join output for the month of ref, optionally
// narrowed to one supervisor.
func (s *ReportService) NoSale(ctx context.Context, from, to time.Time, ref time.Time, supervisor string) ([]domain.NoSaleRecord, error) {
	dataset, err := s.Dataset(ctx, from, to)
	if err != nil {
		return nil, err
	}

	records := s.pipe.NoSale(dataset.Roster, dataset.Deliveries, ref)
	if supervisor == "" {
		return records, nil
	}

	out := make([]domain.NoSaleRecord, 0, len(records))
	for _, rec := range records {
		if rec.Supervisor == supervisor {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Detail returns the supervisor/executive breakdown for the filtered set.
func (s *ReportService) Detail(ctx context.Context, from, to time.Time, filter domain.ReportFilter) ([]domain.DetailRow, error) {
	deliveries, err := s.Deliveries(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}
	return pipeline.DetailSummary(deliveries), nil
}

// Weekly returns scheduled counts per ISO year-week for the filtered set.
func (s *ReportService) Weekly(ctx context.Context, from, to time.Time, filter domain.ReportFilter) ([]domain.WeekCount, error) {
	deliveries, err := s.Deliveries(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}
	return pipeline.WeeklyScheduled(deliveries), nil
}

// TopExecutives returns the top-n salespeople by scheduled count.
func (s *ReportService) TopExecutives(ctx context.Context, from, to time.Time, filter domain.ReportFilter, n int) ([]domain.ExecutiveCount, error) {
	deliveries, err := s.Deliveries(ctx, from, to, filter)
	if err != nil {
		return nil, err
	}
	return pipeline.TopExecutives(deliveries, n), nil
}

// BackOffice returns date and hour groupings for rows carrying a
// back-office marker.
func (s *ReportService) BackOffice(ctx context.Context, from, to time.Time, filter domain.ReportFilter) ([]domain.DateCount, []domain.HourCount, error) {
	deliveries, err := s.Deliveries(ctx, from, to, filter)
	if err != nil {
		return nil, nil, err
	}
	subset := pipeline.BackOfficeSubset(deliveries)
	return pipeline.CountByDate(subset), pipeline.CountByHour(subset), nil
}

// Cancelled returns date and hour groupings for Canc Error rows.
func (s *ReportService) Cancelled(ctx context.Context, from, to time.Time, filter domain.ReportFilter) ([]domain.DateCount, []domain.HourCount, error) {
	deliveries, err := s.Deliveries(ctx, from, to, filter)
	if err != nil {
		return nil, nil, err
	}
	subset := pipeline.CancelledSubset(deliveries)
	return pipeline.CountByDate(subset), pipeline.CountByHour(subset), nil
}

// FilterOptions lists the distinct filter values in the window's dataset.
func (s *ReportService) FilterOptions(ctx context.Context, from, to time.Time) (*domain.FilterOptions, error) {
	dataset, err := s.Dataset(ctx, from, to)
	if err != nil {
		return nil, err
	}
	opts := pipeline.Options(dataset.Deliveries)
	return &opts, nil
}

// InvalidateCache drops every cached dataset. The next request refetches
// from the operational database.
func (s *ReportService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

// Archive serializes the window's classified dataset and pushes it to
// object storage.
func (s *ReportService) Archive(ctx context.Context, from, to time.Time) (string, error) {
	if s.archive == nil {
		return "", fmt.Errorf("snapshot archive is not configured")
	}

	dataset, err := s.Dataset(ctx, from, to)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(dataset)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	key := fmt.Sprintf("snapshots/%s_%s_%s.json",
		from.Format("2006-01-02"), to.Format("2006-01-02"),
		dataset.BuiltAt.UTC().Format("20060102T150405Z"))

	if err := s.archive.PutObject(ctx, key, payload, "application/json"); err != nil {
		return "", err
	}

	log.Info().Str("key", key).Int("bytes", len(payload)).Msg("snapshot archived")
	return key, nil
}
