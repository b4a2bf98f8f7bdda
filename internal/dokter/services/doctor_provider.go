package services

import (
	"context"
	"time"

	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
)

// DoctorQuery selects the aggregates of the given doctors over a period.
type DoctorQuery struct {
	DoctorIDs []int
	Start     time.Time
	End       time.Time
}

// DoctorAggregateProvider returns one aggregate per requested doctor, in
// request order.
type DoctorAggregateProvider interface {
	FetchDoctors(ctx context.Context, q DoctorQuery) ([]models.DoctorAggregate, error)
}
