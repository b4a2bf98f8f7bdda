package services

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"github.com/c14220110/poliklinik-analytics/pkg/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestNormalizeProcedure_DefaultsMissingFields(t *testing.T) {
	p := NormalizeProcedure(RawProcedure{
		Name:        "Soin",
		TotalVisits: fptr(12),
		TotalHours:  fptr(math.NaN()),
		Revenue:     fptr(-5),
	})
	assert.Equal(t, models.ProcedureAggregate{Name: "Soin", TotalVisits: 12}, p)

	p = NormalizeProcedure(RawProcedure{ProcedureID: iptr(4), Name: "X", DoctorID: iptr(7), Revenue: fptr(80)})
	assert.Equal(t, 4, p.ProcedureID)
	assert.Equal(t, 80.0, p.Revenue)
	require.NotNil(t, p.DoctorID)
	assert.Equal(t, 7, *p.DoctorID)
}

func TestNormalizeProcedure_HugeCountsSaturate(t *testing.T) {
	p := NormalizeProcedure(RawProcedure{Name: "Soin", TotalVisits: fptr(1e300), UniquePatients: fptr(math.MaxFloat64)})
	assert.Equal(t, math.MaxInt32, p.TotalVisits)
	assert.Equal(t, math.MaxInt32, p.UniquePatients)
}

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *MariaDBProcedureProvider) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewMariaDBProcedureProvider(db, zap.NewNop())
}

var procedureColumns = []string{"acte_id", "acte", "total_visits", "unique_patients", "total_hours", "total_revenue"}

func TestMariaDBProcedureProvider_FetchAll(t *testing.T) {
	db, mock, provider := setupMockDB(t)
	defer db.Close()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)

	rows := sqlmock.NewRows(procedureColumns).
		AddRow(1, "Détartrage", 20, 18, 10.5, 1000.0).
		AddRow(2, "Radio", 4, 4, nil, nil)
	mock.ExpectQuery(`WITH actes_par_visit AS`).
		WithArgs(start, end).
		WillReturnRows(rows)

	got, err := provider.FetchProcedures(context.Background(), ProcedureQuery{Start: start, End: end})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ProcedureAggregate{ProcedureID: 1, Name: "Détartrage", TotalVisits: 20, UniquePatients: 18, TotalHours: 10.5, Revenue: 1000}, got[0])
	assert.Equal(t, 0.0, got[1].Revenue)
	assert.Equal(t, 0.0, got[1].TotalHours)
	assert.Nil(t, got[1].DoctorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMariaDBProcedureProvider_DoctorFilterTagsRows(t *testing.T) {
	db, mock, provider := setupMockDB(t)
	defer db.Close()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)
	doctor := 12

	mock.ExpectQuery(`v\.user_activated_id = \?`).
		WithArgs(start, end, doctor).
		WillReturnRows(sqlmock.NewRows(procedureColumns).AddRow(3, "Couronne", 2, 2, 3.0, 900.0))

	got, err := provider.FetchProcedures(context.Background(), ProcedureQuery{Start: start, End: end, DoctorID: &doctor})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].DoctorID)
	assert.Equal(t, 12, *got[0].DoctorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMariaDBProcedureProvider_QueryError(t *testing.T) {
	db, mock, provider := setupMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`WITH actes_par_visit AS`).WillReturnError(sql.ErrConnDone)

	got, err := provider.FetchProcedures(context.Background(), ProcedureQuery{})
	assert.Error(t, err)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.Nil(t, got)
}

func TestRemoteProcedureProvider_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/aggregates/procedures", r.URL.Path)
		assert.Equal(t, "2025-03-01", r.URL.Query().Get("start"))
		assert.Equal(t, "2025-03-31", r.URL.Query().Get("end"))
		assert.Equal(t, "5", r.URL.Query().Get("doctorId"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"message":"ok","data":[
			{"acte_id":1,"acte":"Soin","total_visits":3,"uniq_patients":2,"total_hours":1.5,"CA":300},
			{"acte":"Radio","total_visits":null}
		]}`))
	}))
	defer srv.Close()

	provider := NewRemoteProcedureProvider(upstream.NewClient(srv.URL, "tok", zap.NewNop()), zap.NewNop())
	doctor := 5
	got, err := provider.FetchProcedures(context.Background(), ProcedureQuery{
		Start:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:      time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC),
		DoctorID: &doctor,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 300.0, got[0].Revenue)
	assert.Equal(t, 0, got[1].TotalVisits)
	require.NotNil(t, got[1].DoctorID)
	assert.Equal(t, 5, *got[1].DoctorID)
}

func TestRemoteProcedureProvider_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	provider := NewRemoteProcedureProvider(upstream.NewClient(srv.URL, "", zap.NewNop()), zap.NewNop())
	_, err := provider.FetchProcedures(context.Background(), ProcedureQuery{})
	assert.Error(t, err)
}
