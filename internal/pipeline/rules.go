package pipeline

import (
	"github.com/transito-cc/backend-go/internal/domain"
)

// StatusRule is one step of the canonical status derivation. Rules are
// evaluated in order; the first match wins, which keeps the precedence
// between "pending", "delivered without sale" and "cancelled" auditable.
type StatusRule struct {
	Name  string
	Match func(rawStatus string, saleRef *string) bool
	Apply func(rawStatus string) string
}

// StatusClassifier derives the canonical status from the raw lifecycle
// status and the sale-reference field, and from nothing else.
type StatusClassifier struct {
	rules    []StatusRule
	fallback string
}

// NewStatusClassifier builds the ordered rule list. policy is one of
// domain.UnknownStatusDelivered (fold unknown raw statuses into the
// delivered bucket) or domain.UnknownStatusPassthrough (preserve them
// verbatim).
func NewStatusClassifier(policy string) *StatusClassifier {
	pending := map[string]struct{}{
		domain.RawEnEntrega:     {},
		domain.RawEnPreparacion: {},
		domain.RawSolicitado:    {},
		domain.RawBackOffice:    {},
	}

	rules := []StatusRule{
		{
			Name: "pending",
			Match: func(raw string, _ *string) bool {
				_, ok := pending[raw]
				return ok
			},
			Apply: func(string) string { return domain.StatusEnTransito },
		},
		{
			// A delivered record with no linked sale is still on its way
			// toward a completed sale.
			Name: "delivered-without-sale",
			Match: func(raw string, saleRef *string) bool {
				return raw == domain.RawEntregado && textAbsent(saleRef)
			},
			Apply: func(string) string { return domain.StatusEnTransito },
		},
		{
			Name: "delivered-with-sale",
			Match: func(raw string, _ *string) bool {
				return raw == domain.RawEntregado
			},
			Apply: func(string) string { return domain.StatusEntregado },
		},
		{
			// Cancelled records count as delivered so they never inflate
			// the in-transit backlog.
			Name: "cancelled",
			Match: func(raw string, _ *string) bool {
				return raw == domain.RawCancError
			},
			Apply: func(string) string { return domain.StatusEntregado },
		},
	}

	return &StatusClassifier{rules: rules, fallback: policy}
}

// Classify returns the canonical status for one record. Pure and total:
// any input yields a status, never an error.
func (c *StatusClassifier) Classify(rawStatus string, saleRef *string) string {
	for _, rule := range c.rules {
		if rule.Match(rawStatus, saleRef) {
			return rule.Apply(rawStatus)
		}
	}

	if c.fallback == domain.UnknownStatusPassthrough {
		return rawStatus
	}
	return domain.StatusEntregado
}
