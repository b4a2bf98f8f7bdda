package models

// MarginResult decomposes one procedure's revenue.
type MarginResult struct {
	Procedure          ProcedureAggregate
	RemunerationAmount float64
	CostAmount         float64
	GrossMargin        float64
	MarginPerHour      *float64
	AvgUnitPrice       *float64
	RevenuePerHour     *float64
}

// MarginBatch holds the results of one ComputeMargins call. The margin
// percentage lives on Parameters once for the whole batch.
type MarginBatch struct {
	Parameters SimulationParameters
	Results    []MarginResult
}

// MarginPct is identical for every result of the batch.
func (b MarginBatch) MarginPct() float64 { return b.Parameters.CurrentMarginPct() }

// MarginRow is the wire row of the margin endpoint.
type MarginRow struct {
	ActeID              int      `json:"acte_id,omitempty"`
	Acte                string   `json:"acte"`
	TotalVisits         int      `json:"total_visits"`
	UniqPatients        int      `json:"uniq_patients"`
	TotalHours          float64  `json:"total_hours"`
	CA                  float64  `json:"CA"`
	CAParHeure          *float64 `json:"ca_par_heure"`
	RemunerationMedecin float64  `json:"remuneration_medecin"`
	CoutCentre          float64  `json:"cout_centre"`
	MargeBrute          float64  `json:"marge_brute"`
	MargeBrutePct       float64  `json:"marge_brute_pct"`
	MargeParHeure       *float64 `json:"marge_par_heure"`
	PrixMoyenActe       *float64 `json:"prix_moyen_acte"`
	DoctorID            *int     `json:"doctor_id,omitempty"`
}

// Rows flattens the batch into wire rows, repeating the batch margin
// percentage on each row.
func (b MarginBatch) Rows() []MarginRow {
	rows := make([]MarginRow, 0, len(b.Results))
	pct := b.MarginPct()
	for _, r := range b.Results {
		rows = append(rows, MarginRow{
			ActeID:              r.Procedure.ProcedureID,
			Acte:                r.Procedure.Name,
			TotalVisits:         r.Procedure.TotalVisits,
			UniqPatients:        r.Procedure.UniquePatients,
			TotalHours:          r.Procedure.TotalHours,
			CA:                  r.Procedure.Revenue,
			CAParHeure:          r.RevenuePerHour,
			RemunerationMedecin: r.RemunerationAmount,
			CoutCentre:          r.CostAmount,
			MargeBrute:          r.GrossMargin,
			MargeBrutePct:       pct,
			MargeParHeure:       r.MarginPerHour,
			PrixMoyenActe:       r.AvgUnitPrice,
			DoctorID:            r.Procedure.DoctorID,
		})
	}
	return rows
}

// Margin bands used by the dashboard to colour rows.
const (
	MarginBandNegative = "negative"
	MarginBandLow      = "low"
	MarginBandNormal   = "normal"
	MarginBandHigh     = "high"
)

// MarginBand classifies a margin percentage.
func MarginBand(pct float64) string {
	switch {
	case pct < 0:
		return MarginBandNegative
	case pct < 20:
		return MarginBandLow
	case pct >= 40:
		return MarginBandHigh
	default:
		return MarginBandNormal
	}
}

// RentabiliteResponse is the margin endpoint payload.
type RentabiliteResponse struct {
	Parametres Parametres  `json:"parametres"`
	Actes      []MarginRow `json:"actes"`
}
