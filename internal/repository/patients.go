package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

// GetPatientByReference resolves a patient from its national-ID style
// reference. Absence is a NotFoundError, never a silent nil.
func (r *Repository) GetPatientByReference(reference string) (*domain.Patient, error) {
	query := `
		SELECT id, full_name, is_active, created_at
		FROM patients WHERE reference = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	patient := &domain.Patient{
		Reference: reference,
	}

	dst := []any{&patient.ID, &patient.FullName, &patient.IsActive, &patient.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, reference).Scan(dst...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.NotFoundError{Resource: "patient"}
		}
		return nil, err
	}

	return patient, nil
}

func (r *Repository) GetAllPatients() ([]*domain.Patient, error) {
	query := `
		SELECT id, reference, full_name, is_active, created_at
		FROM patients
		ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	patients := make([]*domain.Patient, 0)
	for rows.Next() {
		patient := &domain.Patient{}
		dst := []any{&patient.ID, &patient.Reference, &patient.FullName, &patient.IsActive, &patient.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		patients = append(patients, patient)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

func (r *Repository) CreatePatient(patient *domain.Patient) error {
	query := `
		INSERT INTO patients (reference, full_name)
		VALUES ($1, $2)
		RETURNING id, is_active, created_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, patient.Reference, patient.FullName).Scan(&patient.ID, &patient.IsActive, &patient.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "patients_reference_key" {
			return domain.NewValidationError("patient reference already registered")
		}
		return err
	}

	return nil
}
