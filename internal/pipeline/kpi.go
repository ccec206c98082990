package pipeline

import (
	"sort"

	"github.com/transito-cc/backend-go/internal/domain"
)

// Summarize computes the named KPI scalars over a (possibly filtered)
// classified set. Deterministic, side-effect free; empty input yields
// zeroes.
func Summarize(deliveries []domain.Delivery, noSaleCount int) domain.KPISummary {
	s := domain.KPISummary{
		NoSaleCount: noSaleCount,
		ByRawStatus: make(map[string]int),
	}

	for _, d := range deliveries {
		s.Total++
		s.ByRawStatus[d.RawStatus]++

		switch d.Status {
		case domain.StatusEntregado:
			s.Delivered++
		case domain.StatusEnTransito:
			s.InTransit++
		}

		if d.RawStatus != domain.RawCancError {
			s.TotalScheduled++
		}
		if d.RawStatus == domain.RawEntregado && textAbsent(d.SaleRef) {
			s.DeliveredWithoutSale++
		}
	}

	return s
}

// DetailSummary groups the classified set by (supervisor, executive) and
// counts the scheduled/delivered/in-transit breakdown per pair. Rows are
// ordered by supervisor then executive; the final row is the grand total.
func DetailSummary(deliveries []domain.Delivery) []domain.DetailRow {
	type key struct{ supervisor, executive string }

	byPair := make(map[key]*domain.DetailRow)
	for _, d := range deliveries {
		executive := ""
		if d.Salesperson != nil {
			executive = *d.Salesperson
		}
		k := key{supervisor: d.Supervisor, executive: executive}

		row, ok := byPair[k]
		if !ok {
			row = &domain.DetailRow{Supervisor: k.supervisor, Executive: k.executive}
			byPair[k] = row
		}

		if d.RawStatus != domain.RawCancError {
			row.TotalScheduled++
		}
		if d.Status == domain.StatusEntregado {
			row.Delivered++
		}
		if d.Status == domain.StatusEnTransito {
			row.InTransit++
			switch d.RawStatus {
			case domain.RawEnEntrega:
				row.InTransitEnEntrega++
			case domain.RawEnPreparacion:
				row.InTransitEnPreparacion++
			case domain.RawSolicitado:
				row.InTransitSolicitado++
			case domain.RawBackOffice:
				row.InTransitBackOffice++
			case domain.RawEntregado:
				row.InTransitDeliveredNoSale++
			}
		}
	}

	rows := make([]domain.DetailRow, 0, len(byPair)+1)
	for _, row := range byPair {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Supervisor != rows[j].Supervisor {
			return rows[i].Supervisor < rows[j].Supervisor
		}
		return rows[i].Executive < rows[j].Executive
	})

	total := domain.DetailRow{Supervisor: "Total"}
	for _, row := range rows {
		total.TotalScheduled += row.TotalScheduled
		total.Delivered += row.Delivered
		total.InTransit += row.InTransit
		total.InTransitEnEntrega += row.InTransitEnEntrega
		total.InTransitEnPreparacion += row.InTransitEnPreparacion
		total.InTransitSolicitado += row.InTransitSolicitado
		total.InTransitBackOffice += row.InTransitBackOffice
		total.InTransitDeliveredNoSale += row.InTransitDeliveredNoSale
	}
	rows = append(rows, total)

	return rows
}

// WeeklyScheduled counts scheduled deliveries (raw status other than Canc
// Error) per ISO year-week. Rows without a parsed timestamp are excluded
// from the buckets.
func WeeklyScheduled(deliveries []domain.Delivery) []domain.WeekCount {
	byWeek := make(map[string]int)
	for _, d := range deliveries {
		if d.RawStatus == domain.RawCancError || !d.Calendar.Valid {
			continue
		}
		byWeek[d.Calendar.YearWeek]++
	}
	return sortedWeekCounts(byWeek)
}

// TopExecutives returns the top-n salespeople by scheduled count,
// descending. Ties break alphabetically so the order is stable.
func TopExecutives(deliveries []domain.Delivery, n int) []domain.ExecutiveCount {
	byExec := make(map[string]int)
	for _, d := range deliveries {
		if d.RawStatus == domain.RawCancError || d.Salesperson == nil {
			continue
		}
		byExec[*d.Salesperson]++
	}

	out := make([]domain.ExecutiveCount, 0, len(byExec))
	for exec, count := range byExec {
		out = append(out, domain.ExecutiveCount{Executive: exec, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Executive < out[j].Executive
	})

	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// BackOfficeSubset keeps rows with a non-blank back-office marker.
func BackOfficeSubset(deliveries []domain.Delivery) []domain.Delivery {
	out := make([]domain.Delivery, 0)
	for _, d := range deliveries {
		if !textAbsent(d.BackOffice) {
			out = append(out, d)
		}
	}
	return out
}

// CancelledSubset keeps rows with raw status Canc Error.
func CancelledSubset(deliveries []domain.Delivery) []domain.Delivery {
	out := make([]domain.Delivery, 0)
	for _, d := range deliveries {
		if d.RawStatus == domain.RawCancError {
			out = append(out, d)
		}
	}
	return out
}

// CountByDate groups a subset by civil date. Unparsed timestamps drop
// out of the buckets.
func CountByDate(deliveries []domain.Delivery) []domain.DateCount {
	byDate := make(map[string]int)
	for _, d := range deliveries {
		if !d.Calendar.Valid {
			continue
		}
		byDate[d.Calendar.Date.Format("2006-01-02")]++
	}

	out := make([]domain.DateCount, 0, len(byDate))
	for date, count := range byDate {
		out = append(out, domain.DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CountByHour groups a subset by hour of day.
func CountByHour(deliveries []domain.Delivery) []domain.HourCount {
	byHour := make(map[int]int)
	for _, d := range deliveries {
		if !d.Calendar.Valid {
			continue
		}
		byHour[d.Calendar.Hour]++
	}

	out := make([]domain.HourCount, 0, len(byHour))
	for hour, count := range byHour {
		out = append(out, domain.HourCount{Hour: hour, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

func sortedWeekCounts(byWeek map[string]int) []domain.WeekCount {
	out := make([]domain.WeekCount, 0, len(byWeek))
	for week, count := range byWeek {
		out = append(out, domain.WeekCount{YearWeek: week, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearWeek < out[j].YearWeek })
	return out
}
