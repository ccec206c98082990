package pipeline

import "github.com/transito-cc/backend-go/internal/domain"

// rosterIndex builds the lookup used by the hierarchy join. The resolver
// already deduplicated by full name, so at most one entry per key.
func rosterIndex(roster []domain.Employee) map[string]domain.Employee {
	idx := make(map[string]domain.Employee, len(roster))
	for _, e := range roster {
		if _, ok := idx[e.FullName]; !ok {
			idx[e.FullName] = e
		}
	}
	return idx
}

// joinHierarchy attaches supervisor and coordinator to a delivery by
// exact salesperson-name match. Left join: the row is always kept, and a
// miss resolves to the sentinel group so every row can be grouped.
func joinHierarchy(d *domain.Delivery, idx map[string]domain.Employee, sentinel string) {
	if d.Salesperson != nil {
		if e, ok := idx[*d.Salesperson]; ok {
			d.Supervisor = e.Supervisor
			d.Coordinator = e.Coordinator
			return
		}
	}
	d.Supervisor = sentinel
	d.Coordinator = sentinel
}
