package services

import (
	"math"

	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// RawProcedure is a procedure aggregate as it arrives from a provider payload.
// Every numeric field may be absent.
type RawProcedure struct {
	ProcedureID    *int     `json:"acte_id"`
	Name           string   `json:"acte"`
	TotalVisits    *float64 `json:"total_visits"`
	UniquePatients *float64 `json:"uniq_patients"`
	TotalHours     *float64 `json:"total_hours"`
	Revenue        *float64 `json:"CA"`
	DoctorID       *int     `json:"doctor_id"`
}

// NormalizeProcedure defaults missing, negative or non-finite numbers to zero.
func NormalizeProcedure(raw RawProcedure) models.ProcedureAggregate {
	p := models.ProcedureAggregate{
		Name:           raw.Name,
		TotalVisits:    utils.Count(orZero(raw.TotalVisits)),
		UniquePatients: utils.Count(orZero(raw.UniquePatients)),
		TotalHours:     orZero(raw.TotalHours),
		Revenue:        orZero(raw.Revenue),
		DoctorID:       raw.DoctorID,
	}
	if raw.ProcedureID != nil {
		p.ProcedureID = *raw.ProcedureID
	}
	return p
}

func NormalizeProcedures(raws []RawProcedure) []models.ProcedureAggregate {
	out := make([]models.ProcedureAggregate, 0, len(raws))
	for _, r := range raws {
		out = append(out, NormalizeProcedure(r))
	}
	return out
}

func orZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0
	}
	return *v
}
