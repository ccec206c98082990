package domain

import "strings"

// Raw lifecycle statuses as recorded by the source system.
const (
	RawSolicitado    = "Solicitado"
	RawEnPreparacion = "En preparacion"
	RawEnEntrega     = "En entrega"
	RawBackOffice    = "Back Office"
	RawEntregado     = "Entregado"
	RawCancError     = "Canc Error"
)

// Canonical statuses derived by the pipeline. Every report metric counts
// against these two values, never against the raw lifecycle status alone.
const (
	StatusEnTransito = "En Transito"
	StatusEntregado  = "Entregado"
)

// Policies for raw statuses outside the known enumeration.
const (
	UnknownStatusDelivered   = "delivered"
	UnknownStatusPassthrough = "passthrough"
)

var rawStatuses = map[string]struct{}{
	strings.ToLower(RawSolicitado):    {},
	strings.ToLower(RawEnPreparacion): {},
	strings.ToLower(RawEnEntrega):     {},
	strings.ToLower(RawBackOffice):    {},
	strings.ToLower(RawEntregado):     {},
	strings.ToLower(RawCancError):     {},
}

// KnownRawStatus reports whether s is one of the six source statuses
// (case-insensitive).
func KnownRawStatus(s string) bool {
	_, ok := rawStatuses[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// ValidActivityStatuses are the raw statuses that count as qualifying
// activity for the no-sale detection. Canc Error is deliberately absent.
func ValidActivityStatuses() []string {
	return []string{
		RawBackOffice,
		RawEnEntrega,
		RawEnPreparacion,
		RawEntregado,
		RawSolicitado,
	}
}
