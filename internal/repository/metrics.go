package repository

import (
	"context"
	"time"

	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/report"
)

// GetSessionStats fetches the per-session aggregates the metrics overview
// is folded from. Entry counts come from a live count, not a stored
// counter.
func (r *Repository) GetSessionStats(from, to time.Time) ([]report.SessionStat, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.service_date,
			COUNT(e.id),
			COALESCE(SUM(e.duration_minutes), 0)
		FROM shift_sessions s
		LEFT JOIN procedure_entries e ON s.id = e.session_id
		WHERE s.service_date >= $1 AND s.service_date < $2
		GROUP BY s.id
		ORDER BY s.service_date
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make([]report.SessionStat, 0)
	for rows.Next() {
		var stat report.SessionStat
		if err := rows.Scan(&stat.ServiceDate, &stat.EntryCount, &stat.TotalMinutes); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return stats, nil
}

// GetCategoryBands fetches the category of every categorization whose
// assessment date falls inside the window.
func (r *Repository) GetCategoryBands(from, to time.Time) ([]domain.CategoryBand, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT category FROM patient_categorizations
		WHERE assessment_date >= $1 AND assessment_date < $2
	`

	rows, err := r.dbpool.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bands := make([]domain.CategoryBand, 0)
	for rows.Next() {
		var band domain.CategoryBand
		if err := rows.Scan(&band); err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bands, nil
}

func (r *Repository) CountActivePatients() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM patients WHERE is_active`
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *Repository) CountActiveStaff() (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var count int
	query := `SELECT COUNT(*) FROM staff_members WHERE is_active AND role <> $1`
	if err := r.dbpool.QueryRowContext(ctx, query, domain.RoleAdministrator).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
