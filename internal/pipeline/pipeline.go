// backend-go/internal/pipeline/pipeline.go
package pipeline

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transito-cc/backend-go/internal/config"
	"github.com/transito-cc/backend-go/internal/domain"
)

// Pipeline is the synchronous reconciliation pipeline: raw roster and
// delivery snapshots in, resolved roster and classified deliveries out.
// A Pipeline is immutable after construction and safe for concurrent use.
type Pipeline struct {
	rules  config.RulesConfig
	roster *RosterResolver
	status *StatusClassifier
	origin OriginClassifier
}

func New(rules config.RulesConfig) *Pipeline {
	return &Pipeline{
		rules:  rules,
		roster: NewRosterResolver(rules),
		status: NewStatusClassifier(rules.UnknownStatusPolicy),
		origin: NewOriginClassifier(rules.JuarezOriginLabel),
	}
}

// Run executes the full pipeline over one input snapshot. Each stage
// consumes the complete output of the previous one; there is no partial
// result and no retained state between runs.
func (p *Pipeline) Run(from, to time.Time, employees []domain.EmployeeRow, deliveries []domain.DeliveryRow) *domain.ReportDataset {
	roster := p.roster.Resolve(employees)
	classified := p.Classify(deliveries, roster)

	log.Info().
		Int("roster", len(roster)).
		Int("deliveries", len(classified)).
		Time("from", from).
		Time("to", to).
		Msg("pipeline run complete")

	return &domain.ReportDataset{
		From:       from,
		To:         to,
		Roster:     roster,
		Deliveries: classified,
		BuiltAt:    time.Now(),
	}
}

// Classify normalizes, classifies and joins the raw delivery rows. Rows
// for the excluded vendor are dropped; every other row survives with its
// derived fields attached.
func (p *Pipeline) Classify(rows []domain.DeliveryRow, roster []domain.Employee) []domain.Delivery {
	idx := rosterIndex(roster)
	out := make([]domain.Delivery, 0, len(rows))

	for _, row := range rows {
		salesperson := NormalizeText(row.Salesperson)
		if salesperson != nil && strings.EqualFold(*salesperson, p.rules.ExcludedVendor) {
			continue
		}

		center := NormalizeText(row.Center)
		rawStatus := cleanText(row.RawStatus)
		saleRef := NormalizeText(row.SaleRef)

		if rawStatus != "" && !domain.KnownRawStatus(rawStatus) {
			log.Debug().Str("folio", row.Folio).Str("status", rawStatus).
				Msg("unknown raw status, applying fallback policy")
		}

		d := domain.Delivery{
			Folio:       strings.TrimSpace(row.Folio),
			Phone:       strings.TrimSpace(row.Phone),
			Address:     strings.TrimSpace(row.Address),
			Center:      center,
			RawStatus:   rawStatus,
			BackOffice:  NormalizeText(row.BackOffice),
			SaleRef:     saleRef,
			Salesperson: salesperson,

			Status:       p.status.Classify(rawStatus, saleRef),
			Origin:       p.origin.Origin(center),
			Region:       RegionFromCenter(center),
			Calendar:     DeriveCalendar(row.CreatedAt),
			ContactMonth: ContactMonth(row.ContactAt),
		}

		joinHierarchy(&d, idx, p.rules.SentinelSupervisor)
		out = append(out, d)
	}

	return out
}

// NoSale computes the anti-join for the month of ref: eligible-role
// employees with no qualifying delivery in that month. Recomputed in
// full on every call.
func (p *Pipeline) NoSale(roster []domain.Employee, deliveries []domain.Delivery, ref time.Time) []domain.NoSaleRecord {
	noSaleRoles := make(map[string]struct{}, len(p.rules.NoSaleRoles))
	for _, r := range p.rules.NoSaleRoles {
		noSaleRoles[strings.ToUpper(r)] = struct{}{}
	}

	qualifying := make(map[string]struct{})
	for _, s := range domain.ValidActivityStatuses() {
		qualifying[s] = struct{}{}
	}

	// 1. Restrict the roster: anti-join roles only, no sentinel group.
	// The resolver already deduplicated and removed the excluded vendor.
	eligible := make([]domain.Employee, 0, len(roster))
	for _, e := range roster {
		if _, ok := noSaleRoles[strings.ToUpper(e.Role)]; !ok {
			continue
		}
		if e.Supervisor == p.rules.SentinelSupervisor {
			continue
		}
		eligible = append(eligible, e)
	}

	// 2+3. Distinct salespeople with at least one qualifying delivery in
	// the reference month. Cancelled records never qualify; rows whose
	// timestamp failed to parse have no month and never qualify either.
	active := make(map[string]struct{})
	for _, d := range deliveries {
		if !d.Calendar.Valid {
			continue
		}
		if d.Calendar.Year != ref.Year() || d.Calendar.MonthNum != int(ref.Month()) {
			continue
		}
		if _, ok := qualifying[d.RawStatus]; !ok {
			continue
		}
		if d.Salesperson == nil {
			continue
		}
		active[*d.Salesperson] = struct{}{}
	}

	// 4. Anti-join.
	out := make([]domain.NoSaleRecord, 0)
	for _, e := range eligible {
		if _, ok := active[e.FullName]; ok {
			continue
		}
		out = append(out, domain.NoSaleRecord{
			FullName:    e.FullName,
			Supervisor:  e.Supervisor,
			Coordinator: e.Coordinator,
			Role:        e.Role,
		})
	}

	return out
}
