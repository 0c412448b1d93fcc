package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

const categorizationUniqueConstraint = "patient_categorizations_patient_date_key"

// CreateCategorization inserts a scored snapshot, enforcing at most one per
// (patient, date). The pre-check produces the friendly conflict message;
// the unique index is the authoritative backstop under concurrency.
func (r *Repository) CreateCategorization(c *domain.PatientCategorization) error {
	existingAt, err := r.getCategorizationTimestamp(c.PatientReference, c.AssessmentDate)
	if err != nil {
		return err
	}
	if existingAt != nil {
		return &domain.ConflictError{
			Message:    "patient already categorized on this date",
			ExistingAt: *existingAt,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO patient_categorizations (
			patient_reference,
			staff_member_id,
			assessment_date,
			item_1, item_2, item_3, item_4, item_5,
			total_score,
			category,
			workload_label
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, version
	`

	params := []any{
		c.PatientReference,
		c.StaffMemberID,
		c.AssessmentDate,
		c.Items[0], c.Items[1], c.Items[2], c.Items[3], c.Items[4],
		c.TotalScore,
		c.Category,
		c.WorkloadLabel,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&c.ID, &c.CreatedAt, &c.Version); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == categorizationUniqueConstraint {
			// lost a concurrent race the pre-check could not see
			conflict := &domain.ConflictError{Message: "patient already categorized on this date"}
			if existingAt, lookupErr := r.getCategorizationTimestamp(c.PatientReference, c.AssessmentDate); lookupErr == nil && existingAt != nil {
				conflict.ExistingAt = *existingAt
			}
			return conflict
		}
		return err
	}

	return nil
}

// UpdateCategorization replaces the sub-scores and every derived value in
// full; nothing is patched incrementally.
func (r *Repository) UpdateCategorization(c *domain.PatientCategorization) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		UPDATE patient_categorizations
		SET
			item_1 = $1, item_2 = $2, item_3 = $3, item_4 = $4, item_5 = $5,
			total_score = $6,
			category = $7,
			workload_label = $8,
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING version
	`

	params := []any{
		c.Items[0], c.Items[1], c.Items[2], c.Items[3], c.Items[4],
		c.TotalScore,
		c.Category,
		c.WorkloadLabel,
		c.ID,
		c.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&c.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &domain.NotFoundError{Resource: "patient categorization"}
		}
		return err
	}

	return nil
}

func (r *Repository) GetCategorizationByID(id int64) (*domain.PatientCategorization, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			patient_reference,
			staff_member_id,
			assessment_date,
			item_1, item_2, item_3, item_4, item_5,
			total_score,
			category,
			workload_label,
			created_at,
			version
		FROM patient_categorizations
		WHERE id = $1
	`

	c := &domain.PatientCategorization{
		ID:    id,
		Items: make([]int32, 5),
	}

	dst := []any{
		&c.PatientReference,
		&c.StaffMemberID,
		&c.AssessmentDate,
		&c.Items[0], &c.Items[1], &c.Items[2], &c.Items[3], &c.Items[4],
		&c.TotalScore,
		&c.Category,
		&c.WorkloadLabel,
		&c.CreatedAt,
		&c.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "patient categorization"}
		}
		return nil, err
	}

	return c, nil
}

func (r *Repository) GetCategorizationsByPatient(patientReference string) ([]*domain.PatientCategorization, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			id,
			staff_member_id,
			assessment_date,
			item_1, item_2, item_3, item_4, item_5,
			total_score,
			category,
			workload_label,
			created_at,
			version
		FROM patient_categorizations
		WHERE patient_reference = $1
		ORDER BY assessment_date DESC
	`

	rows, err := r.dbpool.QueryContext(ctx, query, patientReference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categorizations := make([]*domain.PatientCategorization, 0)
	for rows.Next() {
		c := &domain.PatientCategorization{
			PatientReference: patientReference,
			Items:            make([]int32, 5),
		}
		dst := []any{
			&c.ID,
			&c.StaffMemberID,
			&c.AssessmentDate,
			&c.Items[0], &c.Items[1], &c.Items[2], &c.Items[3], &c.Items[4],
			&c.TotalScore,
			&c.Category,
			&c.WorkloadLabel,
			&c.CreatedAt,
			&c.Version,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		categorizations = append(categorizations, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categorizations, nil
}

func (r *Repository) getCategorizationTimestamp(patientReference string, date time.Time) (*time.Time, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT created_at FROM patient_categorizations
		WHERE patient_reference = $1 AND assessment_date = $2
	`

	var createdAt time.Time
	if err := r.dbpool.QueryRowContext(ctx, query, patientReference, date).Scan(&createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &createdAt, nil
}
