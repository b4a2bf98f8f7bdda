package services

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	commonModels "github.com/c14220110/poliklinik-analytics/internal/common/models"
	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"github.com/c14220110/poliklinik-analytics/pkg/upstream"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fptr(v float64) *float64 { return &v }

func TestNormalizeDoctor_HugeCountsSaturate(t *testing.T) {
	d := NormalizeDoctor(RawDoctor{ID: 1, TotalVisits: fptr(1e300), UniquePatients: fptr(1e300), NewPatients: fptr(1e300), TotalRevenue: fptr(100)})
	assert.Equal(t, math.MaxInt32, d.TotalVisits)
	assert.Equal(t, math.MaxInt32, d.UniquePatients)
	assert.Equal(t, math.MaxInt32, d.NewPatients)
	assert.GreaterOrEqual(t, d.AvgRevenuePerVisit, 0.0)
}

func TestNormalizeDoctor(t *testing.T) {
	d := NormalizeDoctor(RawDoctor{
		ID: 4, LastName: "Benali", FirstName: "Amine",
		TotalVisits: fptr(10), UniquePatients: fptr(8), NewPatients: fptr(9),
		TotalRevenue: fptr(1000), TotalWorkingHours: fptr(4),
	})
	assert.Equal(t, "Benali Amine", d.Name)
	assert.Equal(t, 250.0, d.RevenuePerHour)
	assert.Equal(t, 100.0, d.AvgRevenuePerVisit)
	assert.Equal(t, 8, d.NewPatients)

	empty := NormalizeDoctor(RawDoctor{ID: 5, LastName: "Saidi"})
	assert.Equal(t, "Saidi", empty.Name)
	assert.Equal(t, 0.0, empty.RevenuePerHour)
	assert.Equal(t, 0.0, empty.AvgRevenuePerVisit)
}

var doctorColumns = []string{"id", "lastName", "firstName", "unique_patients", "total_visits", "new_patients",
	"avg_patient_time", "avg_waiting_time", "total_revenue", "total_working_hours"}

func TestMariaDBDoctorProvider_Fetch(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(`FROM user u`).WithArgs(start, end, 1).
		WillReturnRows(sqlmock.NewRows(doctorColumns).AddRow(1, "Benali", "Amine", 40, 60, 10, 20.0, 8.0, 6000.0, 30.0))
	mock.ExpectQuery(`FROM user u`).WithArgs(start, end, 2).
		WillReturnRows(sqlmock.NewRows(doctorColumns).AddRow(2, "Haddad", "Lina", 0, 0, 0, nil, nil, 0.0, nil))

	provider := NewMariaDBDoctorProvider(db, zap.NewNop())
	got, err := provider.FetchDoctors(context.Background(), DoctorQuery{DoctorIDs: []int{1, 2}, Start: start, End: end})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 200.0, got[0].RevenuePerHour)
	assert.Equal(t, 100.0, got[0].AvgRevenuePerVisit)
	assert.Equal(t, "Haddad Lina", got[1].Name)
	assert.Equal(t, 0.0, got[1].AvgPatientTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMariaDBDoctorProvider_UnknownDoctor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM user u`).WillReturnRows(sqlmock.NewRows(doctorColumns))

	provider := NewMariaDBDoctorProvider(db, zap.NewNop())
	_, err = provider.FetchDoctors(context.Background(), DoctorQuery{DoctorIDs: []int{99}})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestRemoteDoctorProvider_Fetch(t *testing.T) {
	var (
		mu      sync.Mutex
		lastReq doctorAggregateRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/aggregates/doctors", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		assert.NoError(t, json.Unmarshal(body, &lastReq))
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":[
			{"id":1,"nom":"Benali","prenom":"Amine","totalVisits":10,"totalRevenue":500,"totalWorkingHours":5},
			{"id":2,"nom":"Haddad","prenom":"Lina","totalVisits":null}
		]}`))
	}))
	defer srv.Close()

	provider := NewRemoteDoctorProvider(upstream.NewClient(srv.URL, "", zap.NewNop()), zap.NewNop())
	got, err := provider.FetchDoctors(context.Background(), DoctorQuery{
		DoctorIDs: []int{2, 1},
		Start:     time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	mu.Lock()
	assert.Equal(t, []int{2, 1}, lastReq.DoctorIDs)
	assert.Equal(t, "2025-02-01", lastReq.StartDate)
	mu.Unlock()
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 100.0, got[1].RevenuePerHour)

	_, err = provider.FetchDoctors(context.Background(), DoctorQuery{DoctorIDs: []int{1, 3}})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

type stubDoctorProvider struct {
	records []models.DoctorAggregate
	err     error
	query   DoctorQuery
}

func (s *stubDoctorProvider) FetchDoctors(_ context.Context, q DoctorQuery) ([]models.DoctorAggregate, error) {
	s.query = q
	return s.records, s.err
}

func TestComparisonService_Compare(t *testing.T) {
	stub := &stubDoctorProvider{records: sampleDoctors()[:2]}
	svc := NewComparisonService(stub, zap.NewNop())

	resp, err := svc.Compare(context.Background(), models.ComparisonRequest{
		DoctorIDs: []int{1, 2, 1}, StartDate: "2025-01-01", EndDate: "2025-01-31",
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, stub.query.DoctorIDs)
	assert.Equal(t, 23, stub.query.End.Hour())
	assert.Len(t, resp.Doctors, 2)
	assert.Len(t, resp.Badges, 4)
	assert.Len(t, resp.Suggestions, 2)
	assert.NotEmpty(t, resp.Rankings)
	assert.Equal(t, "2025-01-31", resp.Period.EndDate)
}

func TestComparisonService_Validation(t *testing.T) {
	svc := NewComparisonService(&stubDoctorProvider{}, zap.NewNop())
	cases := []models.ComparisonRequest{
		{DoctorIDs: []int{1}, StartDate: "2025-01-01", EndDate: "2025-01-31"},
		{DoctorIDs: []int{3, 3}, StartDate: "2025-01-01", EndDate: "2025-01-31"},
		{DoctorIDs: []int{1, 2}},
		{DoctorIDs: []int{1, 2}, StartDate: "2025-02-01", EndDate: "2025-01-01"},
	}
	for _, req := range cases {
		_, err := svc.Compare(context.Background(), req)
		assert.True(t, commonModels.IsValidationError(err), "%+v", req)
	}
}

func TestComparisonService_ProviderError(t *testing.T) {
	boom := errors.New("db down")
	svc := NewComparisonService(&stubDoctorProvider{err: boom}, zap.NewNop())
	_, err := svc.Compare(context.Background(), models.ComparisonRequest{
		DoctorIDs: []int{1, 2}, StartDate: "2025-01-01", EndDate: "2025-01-31",
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, commonModels.IsValidationError(err))
}
