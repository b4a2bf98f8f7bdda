package models

import (
	"time"

	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	rentModels "github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/google/uuid"
)

// SimulationRecord is the last computed margin/suggestion batch. There is one
// slot; each save replaces it entirely.
type SimulationRecord struct {
	ID             uuid.UUID                       `json:"id"`
	Parameters     rentModels.SimulationParameters `json:"parameters"`
	Results        []rentModels.MarginRow          `json:"results"`
	Suggestions    []rentModels.TariffSuggestion   `json:"suggestions,omitempty"`
	Summary        *rentModels.SuggestionSummary   `json:"resume,omitempty"`
	DoctorFilterID *int                            `json:"doctorFilterId,omitempty"`
	DoctorName     string                          `json:"doctorName,omitempty"`
	Period         commonModels.Period             `json:"period"`
	Timestamp      time.Time                       `json:"timestamp"`
}

// Clone returns a copy sharing no memory with r.
func (r *SimulationRecord) Clone() *SimulationRecord {
	if r == nil {
		return nil
	}
	out := *r
	out.Parameters.TargetMarginPct = clonePtr(r.Parameters.TargetMarginPct)
	if r.Results != nil {
		out.Results = make([]rentModels.MarginRow, len(r.Results))
		for i, row := range r.Results {
			row.CAParHeure = clonePtr(row.CAParHeure)
			row.MargeParHeure = clonePtr(row.MargeParHeure)
			row.PrixMoyenActe = clonePtr(row.PrixMoyenActe)
			row.DoctorID = clonePtr(row.DoctorID)
			out.Results[i] = row
		}
	}
	if r.Suggestions != nil {
		out.Suggestions = append([]rentModels.TariffSuggestion(nil), r.Suggestions...)
	}
	out.Summary = clonePtr(r.Summary)
	out.DoctorFilterID = clonePtr(r.DoctorFilterID)
	return &out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// GlobalStats summarises the stored margin rows.
type GlobalStats struct {
	TotalCA      float64 `json:"totalCA"`
	TotalMarge   float64 `json:"totalMarge"`
	MargeMoyenne float64 `json:"margeMoyenne"`
	NombreActes  int     `json:"nombreActes"`
	TotalVisites int     `json:"totalVisites"`
}

// RunRequest is the body of POST /api/simulation. Missing percentages take
// the simulator defaults.
type RunRequest struct {
	StartDate           string   `json:"startDate"`
	EndDate             string   `json:"endDate"`
	RemunerationMedecin *float64 `json:"remunerationMedecin"`
	CoutCentre          *float64 `json:"coutCentre"`
	MargeCible          *float64 `json:"margeCible"`
	DoctorID            *int     `json:"doctorId"`
	DoctorName          string   `json:"doctorName"`
	Mode                string   `json:"mode"`
}
