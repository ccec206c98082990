// backend-go/internal/domain/models.go
package domain

import "time"

// EmployeeRow is a raw roster row as fetched from the operational
// database. All fields are text and may carry stray whitespace or the
// source system's "nan"/"None" null sentinels.
type EmployeeRow struct {
	FullName      string `db:"full_name"`
	Supervisor    string `db:"supervisor"`
	Region        string `db:"region"`
	SubRegion     string `db:"sub_region"`
	Venue         string `db:"venue"`
	Store         string `db:"store"`
	Role          string `db:"role"`
	SalesChannel  string `db:"sales_channel"`
	StoreType     string `db:"store_type"`
	OperationUnit string `db:"operation_unit"`
	Status        string `db:"status"`
}

// Employee is one resolved roster entry: eligible, deduplicated by full
// name, with a supervisor that is always set (sentinel if unassigned).
type Employee struct {
	FullName    string `json:"full_name"`
	Supervisor  string `json:"supervisor"`
	Coordinator string `json:"coordinator"`
	Role        string `json:"role"`
	Region      string `json:"region,omitempty"`
	SubRegion   string `json:"sub_region,omitempty"`
	Venue       string `json:"venue,omitempty"`
}

// DeliveryRow is a raw order/delivery-tracking record for the requested
// date window. Timestamps arrive as text and are parsed by the pipeline.
type DeliveryRow struct {
	Folio       string `db:"folio"`
	Phone       string `db:"phone"`
	Address     string `db:"delivery_address"`
	Center      string `db:"requesting_center"`
	RawStatus   string `db:"status"`
	BackOffice  string `db:"back_office"`
	ContactAt   string `db:"contact_at"`
	CreatedAt   string `db:"created_at"`
	SaleRef     string `db:"sale_ref"`
	Salesperson string `db:"salesperson"`
}

// Calendar holds the time-bucket fields derived from a creation
// timestamp. Valid is false when the source value did not parse; such
// rows stay in unbucketed counts but drop out of calendar groupings.
type Calendar struct {
	Valid       bool      `json:"valid"`
	Date        time.Time `json:"date,omitempty"`
	Hour        int       `json:"hour,omitempty"`
	Year        int       `json:"year,omitempty"`
	MonthNum    int       `json:"month_num,omitempty"`
	MonthName   string    `json:"month_name,omitempty"`
	YearMonth   string    `json:"year_month,omitempty"`
	Day         int       `json:"day,omitempty"`
	WeekdayName string    `json:"weekday_name,omitempty"`
	YearWeek    string    `json:"year_week,omitempty"`
}

// Delivery is a classified, joined transaction: the raw record plus every
// field the pipeline derives.
type Delivery struct {
	Folio       string  `json:"folio"`
	Phone       string  `json:"phone,omitempty"`
	Address     string  `json:"address,omitempty"`
	Center      *string `json:"center"`
	RawStatus   string  `json:"raw_status"`
	BackOffice  *string `json:"back_office"`
	SaleRef     *string `json:"sale_ref"`
	Salesperson *string `json:"salesperson"`

	Status       string   `json:"status"`
	Origin       *string  `json:"origin"`
	Region       *string  `json:"region"`
	Supervisor   string   `json:"supervisor"`
	Coordinator  string   `json:"coordinator"`
	Calendar     Calendar `json:"calendar"`
	ContactMonth int      `json:"contact_month,omitempty"`
}

// ReportDataset is the full output of one pipeline run: the resolved
// roster and the classified delivery set for a date window. Read-only
// once built; a refresh replaces it wholesale.
type ReportDataset struct {
	From       time.Time  `json:"from"`
	To         time.Time  `json:"to"`
	Roster     []Employee `json:"roster"`
	Deliveries []Delivery `json:"deliveries"`
	BuiltAt    time.Time  `json:"built_at"`
}

// NoSaleRecord identifies an eligible employee with zero qualifying
// activity in the reference month.
type NoSaleRecord struct {
	FullName    string `json:"full_name"`
	Supervisor  string `json:"supervisor"`
	Coordinator string `json:"coordinator"`
	Role        string `json:"role"`
}

// KPISummary carries the named scalar aggregates for a filtered delivery
// set. Empty input yields zeroes.
type KPISummary struct {
	Total                int            `json:"total"`
	Delivered            int            `json:"delivered"`
	InTransit            int            `json:"in_transit"`
	TotalScheduled       int            `json:"total_scheduled"`
	DeliveredWithoutSale int            `json:"delivered_without_sale"`
	NoSaleCount          int            `json:"no_sale_count"`
	ByRawStatus          map[string]int `json:"by_raw_status"`
}

// DetailRow is one line of the supervisor/executive breakdown.
type DetailRow struct {
	Supervisor               string `json:"supervisor"`
	Executive                string `json:"executive"`
	TotalScheduled           int    `json:"total_scheduled"`
	Delivered                int    `json:"delivered"`
	InTransit                int    `json:"in_transit"`
	InTransitEnEntrega       int    `json:"in_transit_en_entrega"`
	InTransitEnPreparacion   int    `json:"in_transit_en_preparacion"`
	InTransitSolicitado      int    `json:"in_transit_solicitado"`
	InTransitBackOffice      int    `json:"in_transit_back_office"`
	InTransitDeliveredNoSale int    `json:"in_transit_delivered_no_sale"`
}

// DateCount / HourCount / WeekCount / ExecutiveCount are the grouped
// counts consumed by the presentation layer.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

type WeekCount struct {
	YearWeek string `json:"year_week"`
	Count    int    `json:"count"`
}

type ExecutiveCount struct {
	Executive string `json:"executive"`
	Count     int    `json:"count"`
}

// ReportFilter narrows the classified set before aggregation. Empty
// fields match everything.
type ReportFilter struct {
	Origin     string `json:"origin,omitempty"`
	Supervisor string `json:"supervisor,omitempty"`
	Executive  string `json:"executive,omitempty"`
	Month      string `json:"month,omitempty"`
}

// FilterOptions lists the distinct values available for each filter.
type FilterOptions struct {
	Origins     []string `json:"origins"`
	Supervisors []string `json:"supervisors"`
	Months      []string `json:"months"`
	Executives  []string `json:"executives"`
}
