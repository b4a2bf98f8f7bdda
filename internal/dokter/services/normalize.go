package services

import (
	"math"
	"strings"

	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/pkg/utils"
)

// RawDoctor is a doctor aggregate as read from a provider. Numeric fields
// may be absent.
type RawDoctor struct {
	ID                int      `json:"id"`
	LastName          string   `json:"nom"`
	FirstName         string   `json:"prenom"`
	UniquePatients    *float64 `json:"uniquePatients"`
	TotalVisits       *float64 `json:"totalVisits"`
	NewPatients       *float64 `json:"newPatients"`
	AvgPatientTime    *float64 `json:"avgPatientTime"`
	AvgWaitingTime    *float64 `json:"avgWaitingTime"`
	TotalRevenue      *float64 `json:"totalRevenue"`
	TotalWorkingHours *float64 `json:"totalWorkingHours"`
}

// NormalizeDoctor defaults missing values to zero and derives the per-hour
// and per-visit revenue.
func NormalizeDoctor(raw RawDoctor) models.DoctorAggregate {
	d := models.DoctorAggregate{
		ID:                raw.ID,
		LastName:          raw.LastName,
		FirstName:         raw.FirstName,
		Name:              strings.TrimSpace(raw.LastName + " " + raw.FirstName),
		UniquePatients:    utils.Count(orZero(raw.UniquePatients)),
		TotalVisits:       utils.Count(orZero(raw.TotalVisits)),
		NewPatients:       utils.Count(orZero(raw.NewPatients)),
		AvgPatientTime:    orZero(raw.AvgPatientTime),
		AvgWaitingTime:    orZero(raw.AvgWaitingTime),
		TotalRevenue:      orZero(raw.TotalRevenue),
		TotalWorkingHours: orZero(raw.TotalWorkingHours),
	}
	if d.NewPatients > d.UniquePatients {
		d.NewPatients = d.UniquePatients
	}
	if d.TotalWorkingHours > 0 {
		d.RevenuePerHour = d.TotalRevenue / d.TotalWorkingHours
	}
	if d.TotalVisits > 0 {
		d.AvgRevenuePerVisit = d.TotalRevenue / float64(d.TotalVisits)
	}
	return d
}

func orZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return 0
	}
	return *v
}
