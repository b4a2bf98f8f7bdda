package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/c14220110/poliklinik-analytics/internal/dokter/models"
	"go.uber.org/zap"
)

// ErrDoctorNotFound is returned when a requested doctor has no user row.
var ErrDoctorNotFound = errors.New("doctor not found")

type MariaDBDoctorProvider struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewMariaDBDoctorProvider(db *sql.DB, logger *zap.Logger) *MariaDBDoctorProvider {
	return &MariaDBDoctorProvider{DB: db, Logger: logger}
}

const doctorAggregateQuery = `
	SELECT
		u.id,
		u.lastName,
		u.firstName,
		COUNT(DISTINCT v.patient_id) AS unique_patients,
		COUNT(DISTINCT v.id) AS total_visits,
		COUNT(DISTINCT CASE
			WHEN v.currentLocalTimeAssignment = (
				SELECT MIN(v2.currentLocalTimeAssignment)
				FROM visit v2
				WHERE v2.patient_id = v.patient_id
				  AND v2.user_activated_id = u.id
			)
			THEN v.patient_id
		END) AS new_patients,
		AVG(TIMESTAMPDIFF(MINUTE, v.startDate, v.endDate)) AS avg_patient_time,
		AVG(CASE
			WHEN v.arrivalDate IS NOT NULL AND v.startDate IS NOT NULL
			THEN TIMESTAMPDIFF(MINUTE, v.arrivalDate, v.startDate)
		END) AS avg_waiting_time,
		COALESCE(SUM(p.amount), 0) AS total_revenue,
		SUM(TIMESTAMPDIFF(MINUTE, v.startDate, v.endDate) / 60) AS total_working_hours
	FROM user u
	LEFT JOIN visit v ON u.id = v.user_activated_id
		AND v.currentLocalTimeAssignment BETWEEN ? AND ?
	LEFT JOIN payment p ON v.id = p.consultation_id
	WHERE u.id = ?
	GROUP BY u.id, u.lastName, u.firstName`

// FetchDoctors queries each doctor in turn. An unknown doctor fails the
// whole fetch.
func (p *MariaDBDoctorProvider) FetchDoctors(ctx context.Context, q DoctorQuery) ([]models.DoctorAggregate, error) {
	out := make([]models.DoctorAggregate, 0, len(q.DoctorIDs))
	for _, id := range q.DoctorIDs {
		d, err := p.fetchOne(ctx, id, q)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (p *MariaDBDoctorProvider) fetchOne(ctx context.Context, id int, q DoctorQuery) (models.DoctorAggregate, error) {
	var (
		raw                                   RawDoctor
		lastName, firstName                   sql.NullString
		patients, visits, newPatients         sql.NullInt64
		patientTime, waitingTime, revenue, hr sql.NullFloat64
	)
	err := p.DB.QueryRowContext(ctx, doctorAggregateQuery, q.Start, q.End, id).Scan(
		&raw.ID, &lastName, &firstName,
		&patients, &visits, &newPatients,
		&patientTime, &waitingTime, &revenue, &hr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		p.Logger.Warn("doctor not found", zap.Int("doctor_id", id))
		return models.DoctorAggregate{}, fmt.Errorf("%w: id %d", ErrDoctorNotFound, id)
	}
	if err != nil {
		return models.DoctorAggregate{}, fmt.Errorf("query doctor %d aggregates: %w", id, err)
	}

	raw.LastName = lastName.String
	raw.FirstName = firstName.String
	raw.UniquePatients = nullInt(patients)
	raw.TotalVisits = nullInt(visits)
	raw.NewPatients = nullInt(newPatients)
	raw.AvgPatientTime = nullFloat(patientTime)
	raw.AvgWaitingTime = nullFloat(waitingTime)
	raw.TotalRevenue = nullFloat(revenue)
	raw.TotalWorkingHours = nullFloat(hr)
	return NormalizeDoctor(raw), nil
}

func nullInt(v sql.NullInt64) *float64 {
	if !v.Valid {
		return nil
	}
	f := float64(v.Int64)
	return &f
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
