package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transito-cc/backend-go/internal/domain"
)

func deliveryRow(folio, status, saleRef, salesperson, createdAt string) domain.DeliveryRow {
	return domain.DeliveryRow{
		Folio:       folio,
		Center:      "EXP ATT C CENTER 2 GDL",
		RawStatus:   status,
		SaleRef:     saleRef,
		Salesperson: salesperson,
		CreatedAt:   createdAt,
	}
}

func TestClassifyDerivesAllFields(t *testing.T) {
	p := New(testRules())
	roster := []domain.Employee{
		{FullName: "ANA LOPEZ", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ", Role: "ASESOR TELEFONICO 7500"},
	}

	rows := []domain.DeliveryRow{
		deliveryRow("F1", "Entregado", "SALE1", "ANA LOPEZ", "05/01/2026 10:00:00"),
		deliveryRow("F2", "Entregado", "  ", "ANA LOPEZ", "05/01/2026 11:00:00"),
		deliveryRow("F3", "En preparacion", "", "DESCONOCIDO", "06/01/2026 12:00:00"),
		deliveryRow("F4", "Canc Error", "", "", "bad-date"),
	}

	got := p.Classify(rows, roster)
	require.Len(t, got, 4)

	// F1: delivered with sale.
	assert.Equal(t, domain.StatusEntregado, got[0].Status)
	assert.Equal(t, "MARIA RUIZ", got[0].Supervisor)
	require.NotNil(t, got[0].Origin)
	assert.Equal(t, "CC2", *got[0].Origin)
	require.NotNil(t, got[0].Region)
	assert.Equal(t, "GDL", *got[0].Region)
	assert.True(t, got[0].Calendar.Valid)

	// F2: whitespace-only sale reference counts as absent.
	assert.Equal(t, domain.StatusEnTransito, got[1].Status)

	// F3: salesperson not on roster keeps the row, sentinel supervisor.
	assert.Equal(t, domain.StatusEnTransito, got[2].Status)
	assert.Equal(t, "ENCUBADORA", got[2].Supervisor)
	assert.Equal(t, "ENCUBADORA", got[2].Coordinator)

	// F4: unparseable timestamp keeps the row with invalid calendar.
	assert.Equal(t, domain.StatusEntregado, got[3].Status)
	assert.False(t, got[3].Calendar.Valid)
	assert.Nil(t, got[3].Salesperson)
}

func TestClassifyStatusDependsOnlyOnStatusAndSale(t *testing.T) {
	p := New(testRules())

	a := deliveryRow("F1", "Entregado", "SALE1", "ANA LOPEZ", "05/01/2026 10:00:00")
	b := deliveryRow("F2", "Entregado", "SALE1", "OTRO VENDEDOR", "20/03/2025 23:59:00")
	b.Center = "EXP ATT C CENTER JUAREZ"
	b.Phone = "5550000000"

	got := p.Classify([]domain.DeliveryRow{a, b}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, got[0].Status, got[1].Status)
}

func TestClassifyExcludedVendorDropped(t *testing.T) {
	p := New(testRules())

	rows := []domain.DeliveryRow{
		deliveryRow("F1", "Entregado", "S", "ABASTECEDORA Y SUMINISTROS ORTEGA/ISABEL VALDEZ JIMENEZ", "05/01/2026"),
		deliveryRow("F2", "Entregado", "S", "Abastecedora y Suministros Ortega/Isabel Valdez Jimenez", "05/01/2026"),
		deliveryRow("F3", "Entregado", "S", "ANA LOPEZ", "05/01/2026"),
	}

	got := p.Classify(rows, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "F3", got[0].Folio)
}

func TestJoinNeverDropsOrDuplicatesRows(t *testing.T) {
	p := New(testRules())
	roster := []domain.Employee{
		{FullName: "ANA LOPEZ", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ"},
		{FullName: "JUAN PEREZ", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ"},
	}

	rows := make([]domain.DeliveryRow, 0, 10)
	for i := 0; i < 10; i++ {
		rows = append(rows, deliveryRow("F", "Solicitado", "", "ANA LOPEZ", "05/01/2026"))
	}

	got := p.Classify(rows, roster)
	assert.Len(t, got, len(rows))
}

func TestNoSaleAntiJoin(t *testing.T) {
	p := New(testRules())
	ref := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

	roster := []domain.Employee{
		{FullName: "CON VENTA", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ", Role: "ASESOR TELEFONICO 7500"},
		{FullName: "SIN VENTA", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ", Role: "EJECUTIVO TELEFONICO 6500 AM"},
		{FullName: "SOLO CANCELADAS", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ", Role: "ASESOR TELEFONICO 7500"},
		{FullName: "VENTA OTRO MES", Supervisor: "MARIA RUIZ", Coordinator: "MARIA RUIZ", Role: "ASESOR TELEFONICO 7500"},
		// Outside the anti-join role subset.
		{FullName: "SUPERVISORA", Supervisor: "GERENTE", Coordinator: "GERENTE", Role: "SUPERVISOR DE CONTACT CENTER"},
		// Sentinel group is excluded even when otherwise eligible.
		{FullName: "SIN JEFE", Supervisor: "ENCUBADORA", Coordinator: "ENCUBADORA", Role: "ASESOR TELEFONICO 7500"},
	}

	deliveries := p.Classify([]domain.DeliveryRow{
		deliveryRow("F1", "Entregado", "SALE1", "CON VENTA", "10/01/2026"),
		deliveryRow("F2", "Canc Error", "", "SOLO CANCELADAS", "10/01/2026"),
		deliveryRow("F3", "Solicitado", "", "VENTA OTRO MES", "10/02/2026"),
	}, roster)

	got := p.NoSale(roster, deliveries, ref)

	names := make([]string, 0, len(got))
	for _, rec := range got {
		names = append(names, rec.FullName)
	}
	assert.ElementsMatch(t, []string{"SIN VENTA", "SOLO CANCELADAS", "VENTA OTRO MES"}, names)
}

func TestNoSaleCompleteness(t *testing.T) {
	// Union of {active in month} and {no-sale output} must equal the
	// eligible-role population, with empty intersection.
	p := New(testRules())
	ref := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	roster := []domain.Employee{
		{FullName: "A", Supervisor: "S1", Coordinator: "S1", Role: "ASESOR TELEFONICO 7500"},
		{FullName: "B", Supervisor: "S1", Coordinator: "S1", Role: "ASESOR TELEFONICO 7500"},
		{FullName: "C", Supervisor: "S2", Coordinator: "S2", Role: "EJECUTIVO TELEFONICO 6500 AM"},
	}

	deliveries := p.Classify([]domain.DeliveryRow{
		deliveryRow("F1", "Solicitado", "", "A", "02/01/2026"),
	}, roster)

	noSale := p.NoSale(roster, deliveries, ref)

	inNoSale := make(map[string]bool)
	for _, rec := range noSale {
		inNoSale[rec.FullName] = true
	}

	assert.False(t, inNoSale["A"])
	assert.True(t, inNoSale["B"])
	assert.True(t, inNoSale["C"])
	assert.Len(t, noSale, 2)
}

func TestRunExcludedVendorInvariant(t *testing.T) {
	p := New(testRules())
	vendor := "ABASTECEDORA Y SUMINISTROS ORTEGA/ISABEL VALDEZ JIMENEZ"
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	employees := []domain.EmployeeRow{
		eligibleRow(vendor, "MARIA RUIZ", "ASESOR TELEFONICO 7500"),
		eligibleRow("ANA LOPEZ", "MARIA RUIZ", "ASESOR TELEFONICO 7500"),
	}
	deliveries := []domain.DeliveryRow{
		deliveryRow("F1", "Entregado", "S", vendor, "05/01/2026"),
		deliveryRow("F2", "Solicitado", "", "ANA LOPEZ", "05/01/2026"),
	}

	ds := p.Run(from, to, employees, deliveries)

	for _, e := range ds.Roster {
		assert.NotEqual(t, vendor, e.FullName)
	}
	for _, d := range ds.Deliveries {
		if d.Salesperson != nil {
			assert.NotEqual(t, vendor, *d.Salesperson)
		}
	}
	for _, rec := range p.NoSale(ds.Roster, ds.Deliveries, to) {
		assert.NotEqual(t, vendor, rec.FullName)
	}
}

func TestRunKPIConsistency(t *testing.T) {
	p := New(testRules())
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)

	deliveries := []domain.DeliveryRow{
		deliveryRow("F1", "Entregado", "S1", "A", "05/01/2026"),
		deliveryRow("F2", "Entregado", "", "A", "05/01/2026"),
		deliveryRow("F3", "Solicitado", "", "B", "06/01/2026"),
		deliveryRow("F4", "En entrega", "", "B", "07/01/2026"),
		deliveryRow("F5", "Canc Error", "", "C", "08/01/2026"),
		deliveryRow("F6", "Back Office", "", "C", "09/01/2026"),
	}

	ds := p.Run(from, to, nil, deliveries)
	s := Summarize(ds.Deliveries, 0)

	assert.Equal(t, s.Total, s.Delivered+s.InTransit)
	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 2, s.Delivered)  // F1 + folded Canc Error
	assert.Equal(t, 4, s.InTransit)  // F2 (no sale), F3, F4, F6
	assert.Equal(t, 5, s.TotalScheduled)
	assert.Equal(t, 1, s.DeliveredWithoutSale)
	assert.Equal(t, 1, s.ByRawStatus["Canc Error"])
}
