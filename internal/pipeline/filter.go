package pipeline

import (
	"sort"

	"github.com/transito-cc/backend-go/internal/domain"
)

// FilterDeliveries narrows the classified set by origin, supervisor,
// executive and month name. Empty filter fields match everything.
func FilterDeliveries(deliveries []domain.Delivery, f domain.ReportFilter) []domain.Delivery {
	if f == (domain.ReportFilter{}) {
		return deliveries
	}

	out := make([]domain.Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if f.Origin != "" && (d.Origin == nil || *d.Origin != f.Origin) {
			continue
		}
		if f.Supervisor != "" && d.Supervisor != f.Supervisor {
			continue
		}
		if f.Executive != "" && (d.Salesperson == nil || *d.Salesperson != f.Executive) {
			continue
		}
		if f.Month != "" && (!d.Calendar.Valid || d.Calendar.MonthName != f.Month) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Options lists the distinct filter values present in the classified set.
func Options(deliveries []domain.Delivery) domain.FilterOptions {
	origins := make(map[string]struct{})
	supervisors := make(map[string]struct{})
	months := make(map[string]struct{})
	executives := make(map[string]struct{})

	for _, d := range deliveries {
		if d.Origin != nil {
			origins[*d.Origin] = struct{}{}
		}
		if d.Supervisor != "" {
			supervisors[d.Supervisor] = struct{}{}
		}
		if d.Calendar.Valid {
			months[d.Calendar.MonthName] = struct{}{}
		}
		if d.Salesperson != nil {
			executives[*d.Salesperson] = struct{}{}
		}
	}

	return domain.FilterOptions{
		Origins:     sortedKeys(origins),
		Supervisors: sortedKeys(supervisors),
		Months:      sortedKeys(months),
		Executives:  sortedKeys(executives),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
