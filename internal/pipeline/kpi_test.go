package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transito-cc/backend-go/internal/domain"
)

func classified(supervisor, executive, rawStatus, status, createdAt string) domain.Delivery {
	return domain.Delivery{
		Folio:       "F",
		RawStatus:   rawStatus,
		Status:      status,
		Supervisor:  supervisor,
		Coordinator: supervisor,
		Salesperson: strPtr(executive),
		Calendar:    DeriveCalendar(createdAt),
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, 0)

	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Delivered)
	assert.Equal(t, 0, s.InTransit)
	assert.Equal(t, 0, s.TotalScheduled)
	assert.Equal(t, 0, s.DeliveredWithoutSale)
	assert.Empty(t, s.ByRawStatus)
}

func TestSummarizeCarriesNoSaleCount(t *testing.T) {
	s := Summarize(nil, 7)
	assert.Equal(t, 7, s.NoSaleCount)
}

func TestDetailSummary(t *testing.T) {
	deliveries := []domain.Delivery{
		classified("SUP B", "EXEC 1", "Solicitado", "En Transito", "05/01/2026"),
		classified("SUP A", "EXEC 2", "Entregado", "Entregado", "05/01/2026"),
		classified("SUP A", "EXEC 2", "En entrega", "En Transito", "06/01/2026"),
		classified("SUP A", "EXEC 3", "Canc Error", "Entregado", "06/01/2026"),
		classified("SUP A", "EXEC 2", "Entregado", "En Transito", "07/01/2026"),
	}

	rows := DetailSummary(deliveries)
	require.Len(t, rows, 4) // three pairs plus the grand total

	// Sorted by supervisor then executive.
	assert.Equal(t, "SUP A", rows[0].Supervisor)
	assert.Equal(t, "EXEC 2", rows[0].Executive)
	assert.Equal(t, 3, rows[0].TotalScheduled)
	assert.Equal(t, 1, rows[0].Delivered)
	assert.Equal(t, 2, rows[0].InTransit)
	assert.Equal(t, 1, rows[0].InTransitEnEntrega)
	assert.Equal(t, 1, rows[0].InTransitDeliveredNoSale)

	assert.Equal(t, "EXEC 3", rows[1].Executive)
	assert.Equal(t, 0, rows[1].TotalScheduled)
	assert.Equal(t, 1, rows[1].Delivered)

	assert.Equal(t, "SUP B", rows[2].Supervisor)
	assert.Equal(t, 1, rows[2].InTransitSolicitado)

	total := rows[3]
	assert.Equal(t, "Total", total.Supervisor)
	assert.Equal(t, 4, total.TotalScheduled)
	assert.Equal(t, 2, total.Delivered)
	assert.Equal(t, 3, total.InTransit)
}

func TestWeeklyScheduled(t *testing.T) {
	deliveries := []domain.Delivery{
		classified("S", "E", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "E", "En entrega", "En Transito", "06/01/2026"),
		classified("S", "E", "Solicitado", "En Transito", "12/01/2026"),
		// Cancelled and unparsed rows stay out of the buckets.
		classified("S", "E", "Canc Error", "Entregado", "05/01/2026"),
		classified("S", "E", "Solicitado", "En Transito", "garbage"),
	}

	got := WeeklyScheduled(deliveries)
	require.Len(t, got, 2)
	assert.Equal(t, domain.WeekCount{YearWeek: "2026-02", Count: 2}, got[0])
	assert.Equal(t, domain.WeekCount{YearWeek: "2026-03", Count: 1}, got[1])
}

func TestTopExecutives(t *testing.T) {
	deliveries := []domain.Delivery{
		classified("S", "BETA", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "BETA", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "ALFA", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "ALFA", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "GAMMA", "Solicitado", "En Transito", "05/01/2026"),
		classified("S", "GAMMA", "Canc Error", "Entregado", "05/01/2026"),
	}

	got := TopExecutives(deliveries, 2)
	require.Len(t, got, 2)
	// Ties break alphabetically.
	assert.Equal(t, domain.ExecutiveCount{Executive: "ALFA", Count: 2}, got[0])
	assert.Equal(t, domain.ExecutiveCount{Executive: "BETA", Count: 2}, got[1])

	all := TopExecutives(deliveries, 0)
	require.Len(t, all, 3)
	assert.Equal(t, domain.ExecutiveCount{Executive: "GAMMA", Count: 1}, all[2])
}

func TestBackOfficeSubset(t *testing.T) {
	with := classified("S", "E", "Back Office", "En Transito", "05/01/2026")
	with.BackOffice = strPtr("REVISION")
	without := classified("S", "E", "Solicitado", "En Transito", "05/01/2026")

	got := BackOfficeSubset([]domain.Delivery{with, without})
	require.Len(t, got, 1)
	require.NotNil(t, got[0].BackOffice)
	assert.Equal(t, "REVISION", *got[0].BackOffice)
}

func TestCancelledSubset(t *testing.T) {
	deliveries := []domain.Delivery{
		classified("S", "E", "Canc Error", "Entregado", "05/01/2026"),
		classified("S", "E", "Entregado", "Entregado", "05/01/2026"),
	}

	got := CancelledSubset(deliveries)
	require.Len(t, got, 1)
	assert.Equal(t, "Canc Error", got[0].RawStatus)
}

func TestCountByDateAndHour(t *testing.T) {
	deliveries := []domain.Delivery{
		classified("S", "E", "Solicitado", "En Transito", "05/01/2026 09:00:00"),
		classified("S", "E", "Solicitado", "En Transito", "05/01/2026 14:00:00"),
		classified("S", "E", "Solicitado", "En Transito", "06/01/2026 09:30:00"),
		classified("S", "E", "Solicitado", "En Transito", "not a date"),
	}

	byDate := CountByDate(deliveries)
	require.Len(t, byDate, 2)
	assert.Equal(t, domain.DateCount{Date: "2026-01-05", Count: 2}, byDate[0])
	assert.Equal(t, domain.DateCount{Date: "2026-01-06", Count: 1}, byDate[1])

	byHour := CountByHour(deliveries)
	require.Len(t, byHour, 2)
	assert.Equal(t, domain.HourCount{Hour: 9, Count: 2}, byHour[0])
	assert.Equal(t, domain.HourCount{Hour: 14, Count: 1}, byHour[1])
}
