package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/scoring"
)

const burnoutUniqueConstraint = "burnout_submissions_staff_member_id_key"

// CreateBurnoutSubmission inserts the submission and its 22 answer rows as
// one atomic unit. Submissions are accept-once per staff member; a second
// attempt fails with a ConflictError reporting when the first was made.
func (r *Repository) CreateBurnoutSubmission(submission *domain.BurnoutSubmission) error {
	if existing, err := r.GetBurnoutSubmissionByStaffMember(submission.StaffMemberID); err == nil {
		return &domain.ConflictError{
			Message:    "staff member already submitted the burnout inventory",
			ExistingAt: existing.SubmittedAt,
		}
	} else {
		var notFound *domain.NotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO burnout_submissions (
			staff_member_id,
			exhaustion_total, depersonalization_total, accomplishment_total,
			exhaustion_level, depersonalization_level, accomplishment_level
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, submitted_at
	`

	params := []any{
		submission.StaffMemberID,
		submission.ExhaustionTotal,
		submission.DepersonalizationTotal,
		submission.AccomplishmentTotal,
		submission.ExhaustionLevel,
		submission.DepersonalizationLevel,
		submission.AccomplishmentLevel,
	}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&submission.ID, &submission.SubmittedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == burnoutUniqueConstraint {
			conflict := &domain.ConflictError{Message: "staff member already submitted the burnout inventory"}
			if existing, lookupErr := r.GetBurnoutSubmissionByStaffMember(submission.StaffMemberID); lookupErr == nil {
				conflict.ExistingAt = existing.SubmittedAt
			}
			return conflict
		}
		return err
	}

	answerQuery := `
		INSERT INTO burnout_answers (submission_id, item_number, answer)
		VALUES ($1, $2, $3)
	`
	for i, answer := range submission.Answers {
		if _, err := tx.ExecContext(ctx, answerQuery, submission.ID, i+1, answer); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetBurnoutSubmissionByStaffMember(staffMemberID int64) (*domain.BurnoutSubmission, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.id,
			s.submitted_at,
			s.exhaustion_total, s.depersonalization_total, s.accomplishment_total,
			s.exhaustion_level, s.depersonalization_level, s.accomplishment_level,
			a.item_number,
			a.answer
		FROM burnout_submissions s
		LEFT JOIN burnout_answers a ON s.id = a.submission_id
		WHERE s.staff_member_id = $1
		ORDER BY a.item_number
	`

	rows, err := r.dbpool.QueryContext(ctx, query, staffMemberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submission *domain.BurnoutSubmission

	for rows.Next() {
		var row struct {
			ID                     int64
			SubmittedAt            time.Time
			ExhaustionTotal        int32
			DepersonalizationTotal int32
			AccomplishmentTotal    int32
			ExhaustionLevel        string
			DepersonalizationLevel string
			AccomplishmentLevel    string

			ItemNumber sql.NullInt32
			Answer     sql.NullInt32
		}

		dst := []any{
			&row.ID,
			&row.SubmittedAt,
			&row.ExhaustionTotal,
			&row.DepersonalizationTotal,
			&row.AccomplishmentTotal,
			&row.ExhaustionLevel,
			&row.DepersonalizationLevel,
			&row.AccomplishmentLevel,
			&row.ItemNumber,
			&row.Answer,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if submission == nil {
			submission = &domain.BurnoutSubmission{
				ID:                     row.ID,
				StaffMemberID:          staffMemberID,
				SubmittedAt:            row.SubmittedAt,
				Answers:                make([]int32, scoring.NumBurnoutItems),
				ExhaustionTotal:        row.ExhaustionTotal,
				DepersonalizationTotal: row.DepersonalizationTotal,
				AccomplishmentTotal:    row.AccomplishmentTotal,
				ExhaustionLevel:        domain.CategoryBand(row.ExhaustionLevel),
				DepersonalizationLevel: domain.CategoryBand(row.DepersonalizationLevel),
				AccomplishmentLevel:    domain.CategoryBand(row.AccomplishmentLevel),
			}
		}

		if row.ItemNumber.Valid && row.ItemNumber.Int32 >= 1 && int(row.ItemNumber.Int32) <= scoring.NumBurnoutItems {
			submission.Answers[row.ItemNumber.Int32-1] = row.Answer.Int32
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if submission == nil {
		return nil, &domain.NotFoundError{Resource: "burnout submission"}
	}

	return submission, nil
}
