package pipeline

import (
	"strings"

	"github.com/transito-cc/backend-go/internal/config"
	"github.com/transito-cc/backend-go/internal/domain"
)

// RosterResolver filters the raw roster to the eligible population and
// assigns every employee a canonical supervisor.
type RosterResolver struct {
	rules         config.RulesConfig
	eligibleRoles map[string]struct{}
}

func NewRosterResolver(rules config.RulesConfig) *RosterResolver {
	roles := make(map[string]struct{}, len(rules.EligibleRoles))
	for _, r := range rules.EligibleRoles {
		roles[strings.ToUpper(r)] = struct{}{}
	}
	return &RosterResolver{rules: rules, eligibleRoles: roles}
}

// Resolve applies the eligibility predicates in order, collapses
// duplicate full names (first occurrence wins, source order preserved)
// and substitutes the sentinel supervisor for blank ones. The excluded
// vendor never survives resolution.
func (r *RosterResolver) Resolve(rows []domain.EmployeeRow) []domain.Employee {
	seen := make(map[string]struct{}, len(rows))
	out := make([]domain.Employee, 0, len(rows))

	for _, row := range rows {
		fullName := cleanText(row.FullName)
		if fullName == "" {
			continue
		}
		if strings.EqualFold(fullName, r.rules.ExcludedVendor) {
			continue
		}

		if !strings.EqualFold(cleanText(row.SalesChannel), r.rules.SalesChannel) {
			continue
		}
		if !strings.EqualFold(cleanText(row.OperationUnit), r.rules.OperationUnit) {
			continue
		}
		if !strings.EqualFold(cleanText(row.StoreType), r.rules.StoreType) {
			continue
		}
		if _, ok := r.eligibleRoles[strings.ToUpper(cleanText(row.Role))]; !ok {
			continue
		}
		if !strings.EqualFold(cleanText(row.Status), r.rules.ActiveStatus) {
			continue
		}

		if _, dup := seen[fullName]; dup {
			continue
		}
		seen[fullName] = struct{}{}

		supervisor := cleanText(row.Supervisor)
		if supervisor == "" {
			supervisor = r.rules.SentinelSupervisor
		}

		out = append(out, domain.Employee{
			FullName:    fullName,
			Supervisor:  supervisor,
			Coordinator: supervisor,
			Role:        cleanText(row.Role),
			Region:      cleanText(row.Region),
			SubRegion:   cleanText(row.SubRegion),
			Venue:       cleanText(row.Venue),
		})
	}

	return out
}
