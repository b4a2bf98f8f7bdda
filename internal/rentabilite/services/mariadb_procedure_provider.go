package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/c14220110/poliklinik-analytics/internal/rentabilite/models"
	"go.uber.org/zap"
)

// MariaDBProcedureProvider aggregates procedures from the clinic database.
// A visit's payments are split evenly across the acts recorded on it.
type MariaDBProcedureProvider struct {
	DB     *sql.DB
	Logger *zap.Logger
}

func NewMariaDBProcedureProvider(db *sql.DB, logger *zap.Logger) *MariaDBProcedureProvider {
	return &MariaDBProcedureProvider{DB: db, Logger: logger}
}

const procedureAggregateQuery = `
	WITH actes_par_visit AS (
		SELECT v.id AS visit_id, u.description1 AS acte, u.id AS acte_id
		FROM dental_diagram_udc ddu
		JOIN dental_diagram dd ON dd.id = ddu.dental_diagram_id
		JOIN udc u ON u.id = ddu.udc_id
		JOIN visit v ON v.id = dd.consultation_id
		WHERE v.currentLocalTimeAssignment BETWEEN ? AND ?%s
	),
	nombre_actes_par_visit AS (
		SELECT visit_id, COUNT(*) AS nb_actes
		FROM actes_par_visit
		GROUP BY visit_id
	),
	revenus_par_acte AS (
		SELECT apv.acte, apv.acte_id, SUM(p.amount / napv.nb_actes) AS total_revenue
		FROM actes_par_visit apv
		JOIN nombre_actes_par_visit napv ON apv.visit_id = napv.visit_id
		JOIN payment p ON p.consultation_id = apv.visit_id
		GROUP BY apv.acte, apv.acte_id
	),
	statistiques_actes AS (
		SELECT apv.acte, apv.acte_id,
		       COUNT(DISTINCT v.id) AS total_visits,
		       COUNT(DISTINCT v.patient_id) AS unique_patients,
		       SUM(CASE WHEN v.startDate IS NOT NULL AND v.endDate IS NOT NULL
		                THEN TIMESTAMPDIFF(MINUTE, v.startDate, v.endDate) END) / 60.0 AS total_hours
		FROM actes_par_visit apv
		JOIN visit v ON v.id = apv.visit_id
		GROUP BY apv.acte, apv.acte_id
	)
	SELECT sa.acte_id, sa.acte, sa.total_visits, sa.unique_patients,
	       ROUND(sa.total_hours, 2), ROUND(rpa.total_revenue, 2)
	FROM statistiques_actes sa
	LEFT JOIN revenus_par_acte rpa ON sa.acte = rpa.acte AND sa.acte_id = rpa.acte_id
	ORDER BY rpa.total_revenue DESC`

// FetchProcedures runs the aggregate query. Rows come back unfiltered; the
// engines decide which rows carry signal.
func (p *MariaDBProcedureProvider) FetchProcedures(ctx context.Context, q ProcedureQuery) ([]models.ProcedureAggregate, error) {
	doctorClause := ""
	args := []interface{}{q.Start, q.End}
	if q.DoctorID != nil {
		doctorClause = " AND v.user_activated_id = ?"
		args = append(args, *q.DoctorID)
	}
	query := fmt.Sprintf(procedureAggregateQuery, doctorClause)

	p.Logger.Debug("fetching procedure aggregates",
		zap.Time("start", q.Start), zap.Time("end", q.End), zap.Any("doctor_id", q.DoctorID))

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query procedure aggregates: %w", err)
	}
	defer rows.Close()

	var result []models.ProcedureAggregate
	for rows.Next() {
		var (
			acteID              int
			acte                sql.NullString
			visits, patients    sql.NullInt64
			hours, totalRevenue sql.NullFloat64
		)
		if err := rows.Scan(&acteID, &acte, &visits, &patients, &hours, &totalRevenue); err != nil {
			return nil, fmt.Errorf("scan procedure aggregate: %w", err)
		}
		raw := RawProcedure{
			ProcedureID:    &acteID,
			Name:           acte.String,
			TotalVisits:    nullInt(visits),
			UniquePatients: nullInt(patients),
			TotalHours:     nullFloat(hours),
			Revenue:        nullFloat(totalRevenue),
			DoctorID:       q.DoctorID,
		}
		result = append(result, NormalizeProcedure(raw))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate procedure aggregates: %w", err)
	}
	return result, nil
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
