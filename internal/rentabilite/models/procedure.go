package models

// ProcedureAggregate is one billable act type aggregated over a period.
type ProcedureAggregate struct {
	ProcedureID    int     `json:"acte_id,omitempty"`
	Name           string  `json:"acte"`
	TotalVisits    int     `json:"total_visits"`
	UniquePatients int     `json:"uniq_patients"`
	TotalHours     float64 `json:"total_hours"`
	Revenue        float64 `json:"CA"`
	// DoctorID is set when the aggregate was computed for a single doctor.
	DoctorID *int `json:"doctor_id,omitempty"`
}

// SimulationParameters are the global percentage inputs of a simulation batch.
// TargetMarginPct is only meaningful for tariff suggestions.
type SimulationParameters struct {
	RemunerationPct float64  `json:"remunerationMedecin"`
	CostPct         float64  `json:"coutCentre"`
	TargetMarginPct *float64 `json:"margeCible,omitempty"`
}

// CurrentMarginPct is the margin share left after remuneration and cost.
// It is a batch-wide value, not derived per procedure.
func (p SimulationParameters) CurrentMarginPct() float64 {
	return 100 - p.RemunerationPct - p.CostPct
}

// Parametres is the wire form of the parameters block. margeCible is always
// present: the target for suggestions, the current margin for margin mode.
type Parametres struct {
	RemunerationMedecin float64 `json:"remunerationMedecin"`
	CoutCentre          float64 `json:"coutCentre"`
	MargeCible          float64 `json:"margeCible"`
}

func (p SimulationParameters) Wire() Parametres {
	out := Parametres{
		RemunerationMedecin: p.RemunerationPct,
		CoutCentre:          p.CostPct,
		MargeCible:          p.CurrentMarginPct(),
	}
	if p.TargetMarginPct != nil {
		out.MargeCible = *p.TargetMarginPct
	}
	return out
}
