package services

import (
	"context"
	"time"

	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
)

// ProcedureQuery selects the aggregates of a period, optionally for one doctor.
type ProcedureQuery struct {
	Start    time.Time
	End      time.Time
	DoctorID *int
}

// ProcedureAggregateProvider supplies one aggregate per procedure type.
type ProcedureAggregateProvider interface {
	FetchProcedures(ctx context.Context, q ProcedureQuery) ([]models.ProcedureAggregate, error)
}
