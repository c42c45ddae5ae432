package simulation

// Sector identifies the industry category a business operates in
type Sector string

const (
	SectorRetail        Sector = "Retail"
	SectorHospitality   Sector = "Hospitality"
	SectorManufacturing Sector = "Manufacturing"
	SectorServices      Sector = "Services"
	SectorHealthcare    Sector = "Healthcare"
)

// Sectors returns the fixed sector set in canonical order.
// Sampling, grouping, and chart axes all use this order.
func Sectors() []Sector {
	return []Sector{
		SectorRetail,
		SectorHospitality,
		SectorManufacturing,
		SectorServices,
		SectorHealthcare,
	}
}

// String returns the sector label
func (s Sector) String() string {
	return string(s)
}

// IsValid checks whether the sector is one of the known categories
func (s Sector) IsValid() bool {
	switch s {
	case SectorRetail, SectorHospitality, SectorManufacturing, SectorServices, SectorHealthcare:
		return true
	}
	return false
}

// BusinessRecord represents one synthetic business in the generated dataset.
// DropFactor is the ephemeral multiplier used to derive the post-shock
// revenue; it never reaches the exported table.
type BusinessRecord struct {
	ID               int     `json:"business_id"`
	Sector           Sector  `json:"sector"`
	PreShockRevenue  float64 `json:"pre_covid_revenue"`
	PostShockRevenue float64 `json:"post_covid_revenue"`
	DropFactor       float64 `json:"-"`
	DeclinePercent   float64 `json:"decline_percent"`
}

// Dataset is the full generated collection, immutable after simulation,
// in insertion order (record IDs ascending from 1).
type Dataset struct {
	Records []BusinessRecord `json:"records"`
	Seed    uint64           `json:"seed"`
}

// Len returns the number of records in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}
