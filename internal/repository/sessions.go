package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/timefmt"
)

// sessionUniqueConstraint backs the one-session-per-(staff, line, date,
// shift) guard. The service line is part of the tuple: both lines allow a
// 24h shift, and a nursing session must never be mistaken for a
// kinesiology one.
const sessionUniqueConstraint = "shift_sessions_staff_line_date_kind_key"

// CreateSession persists a session and its full initial entry batch as one
// atomic unit and stores the re-summed total. A concurrent duplicate create
// for the same (staff, line, date, shift) tuple loses against the unique index
// and is surfaced as a ConflictError carrying the existing session's
// timestamp.
func (r *Repository) CreateSession(session *domain.ShiftSession) error {
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
		INSERT INTO shift_sessions (staff_member_id, service_line, shift_kind, service_date, cached_total_minutes)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, created_at, version
	`
	params := []any{session.StaffMemberID, session.ServiceLine, session.ShiftKind, session.ServiceDate}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&session.ID, &session.CreatedAt, &session.Version); err != nil {
		return r.mapSessionConflict(err, session)
	}

	if err := r.insertEntriesTx(ctx, tx, session.ID, session.Entries); err != nil {
		return err
	}

	total, err := r.recomputeTotalTx(ctx, tx, session.ID)
	if err != nil {
		return err
	}
	session.CachedTotalMinutes = total

	return tx.Commit()
}

// ResolveOrCreateSession finds the session identified by the (staff, line,
// date, shift) tuple, creating an empty one when absent. This is the
// synthesized identity of the non-sessioned lines: callers never hand us a
// session id.
func (r *Repository) ResolveOrCreateSession(staffMemberID int64, line domain.ServiceLine, kind domain.ShiftKind, date time.Time) (*domain.ShiftSession, error) {
	session, err := r.GetSessionByTuple(staffMemberID, line, kind, date)
	if err == nil {
		return session, nil
	}
	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	session = &domain.ShiftSession{
		StaffMemberID: staffMemberID,
		ServiceLine:   line,
		ShiftKind:     kind,
		ServiceDate:   date,
		Entries:       []domain.ProcedureEntry{},
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO shift_sessions (staff_member_id, service_line, shift_kind, service_date, cached_total_minutes)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, created_at, version
	`
	params := []any{staffMemberID, line, kind, date}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&session.ID, &session.CreatedAt, &session.Version); err != nil {
		// a concurrent writer may have created the tuple first; their row
		// serves just as well
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == sessionUniqueConstraint {
			return r.GetSessionByTuple(staffMemberID, line, kind, date)
		}
		return nil, err
	}

	return session, nil
}

// AddEntries appends entries to a session and re-derives the cached total
// from the live entry set inside the same transaction.
func (r *Repository) AddEntries(sessionID int64, entries []domain.ProcedureEntry) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.insertEntriesTx(ctx, tx, sessionID, entries); err != nil {
		return err
	}

	if _, err := r.recomputeTotalTx(ctx, tx, sessionID); err != nil {
		return err
	}

	return tx.Commit()
}

// RemoveEntry deletes one entry and re-derives the cached total in the same
// transaction.
func (r *Repository) RemoveEntry(sessionID int64, entryID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `DELETE FROM procedure_entries WHERE id = $1 AND session_id = $2`
	result, err := tx.ExecContext(ctx, query, entryID, sessionID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return &domain.NotFoundError{Resource: "procedure entry"}
	}

	if _, err := r.recomputeTotalTx(ctx, tx, sessionID); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSession removes the session; entries cascade at the storage layer.
func (r *Repository) DeleteSession(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `DELETE FROM shift_sessions WHERE id = $1`
	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSessionByID(id int64) (*domain.ShiftSession, error) {
	query := `
		SELECT
			s.id,
			s.staff_member_id,
			s.service_line,
			s.shift_kind,
			s.service_date,
			s.cached_total_minutes,
			s.created_at,
			s.version,
			e.id,
			e.name,
			e.duration,
			e.duration_minutes,
			e.patient_reference,
			e.note
		FROM shift_sessions s
		LEFT JOIN procedure_entries e ON s.id = e.session_id
		WHERE s.id = $1
		ORDER BY e.id
	`
	return r.querySession(query, id)
}

// GetSessionByTuple resolves a session from its synthesized identity. The
// lookup filters on the service line too: a nursing 24h session and a
// kinesiology 24h session on the same date are distinct records.
func (r *Repository) GetSessionByTuple(staffMemberID int64, line domain.ServiceLine, kind domain.ShiftKind, date time.Time) (*domain.ShiftSession, error) {
	query := `
		SELECT
			s.id,
			s.staff_member_id,
			s.service_line,
			s.shift_kind,
			s.service_date,
			s.cached_total_minutes,
			s.created_at,
			s.version,
			e.id,
			e.name,
			e.duration,
			e.duration_minutes,
			e.patient_reference,
			e.note
		FROM shift_sessions s
		LEFT JOIN procedure_entries e ON s.id = e.session_id
		WHERE s.staff_member_id = $1 AND s.service_line = $2 AND s.shift_kind = $3 AND s.service_date = $4
		ORDER BY e.id
	`
	return r.querySession(query, staffMemberID, line, kind, date)
}

func (r *Repository) GetSessionsByStaffMember(staffMemberID int64, from, to time.Time) ([]*domain.ShiftSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		SELECT
			s.id,
			s.staff_member_id,
			s.service_line,
			s.shift_kind,
			s.service_date,
			s.cached_total_minutes,
			s.created_at,
			s.version,
			e.id,
			e.name,
			e.duration,
			e.duration_minutes,
			e.patient_reference,
			e.note
		FROM shift_sessions s
		LEFT JOIN procedure_entries e ON s.id = e.session_id
		WHERE s.staff_member_id = $1 AND s.service_date >= $2 AND s.service_date < $3
		ORDER BY s.service_date, s.id, e.id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, staffMemberID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessionsMap := make(map[int64]*domain.ShiftSession)
	order := make([]int64, 0)

	for rows.Next() {
		session, entry, entryValid, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}

		existing, ok := sessionsMap[session.ID]
		if !ok {
			session.Entries = make([]domain.ProcedureEntry, 0)
			sessionsMap[session.ID] = session
			order = append(order, session.ID)
			existing = session
		}

		if entryValid {
			existing.Entries = append(existing.Entries, entry)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sessions := make([]*domain.ShiftSession, 0, len(order))
	for _, id := range order {
		r.verifyCachedTotal(sessionsMap[id])
		sessions = append(sessions, sessionsMap[id])
	}

	return sessions, nil
}

func (r *Repository) querySession(query string, args ...any) (*domain.ShiftSession, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var session *domain.ShiftSession

	for rows.Next() {
		scanned, entry, entryValid, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}

		if session == nil {
			session = scanned
			session.Entries = make([]domain.ProcedureEntry, 0)
		}

		if entryValid {
			session.Entries = append(session.Entries, entry)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if session == nil {
		return nil, &domain.NotFoundError{Resource: "shift session"}
	}

	r.verifyCachedTotal(session)

	return session, nil
}

func scanSessionRow(rows *sql.Rows) (*domain.ShiftSession, domain.ProcedureEntry, bool, error) {
	var row struct {
		ID                 int64
		StaffMemberID      int64
		ServiceLine        string
		ShiftKind          string
		ServiceDate        time.Time
		CachedTotalMinutes int32
		CreatedAt          time.Time
		Version            int32

		EntryID          sql.NullInt64
		Name             sql.NullString
		Duration         sql.NullString
		DurationMinutes  sql.NullInt32
		PatientReference sql.NullString
		Note             sql.NullString
	}

	dst := []any{
		&row.ID,
		&row.StaffMemberID,
		&row.ServiceLine,
		&row.ShiftKind,
		&row.ServiceDate,
		&row.CachedTotalMinutes,
		&row.CreatedAt,
		&row.Version,
		&row.EntryID,
		&row.Name,
		&row.Duration,
		&row.DurationMinutes,
		&row.PatientReference,
		&row.Note,
	}
	if err := rows.Scan(dst...); err != nil {
		return nil, domain.ProcedureEntry{}, false, err
	}

	session := &domain.ShiftSession{
		ID:                 row.ID,
		StaffMemberID:      row.StaffMemberID,
		ServiceLine:        domain.ServiceLine(row.ServiceLine),
		ShiftKind:          domain.ShiftKind(row.ShiftKind),
		ServiceDate:        row.ServiceDate,
		CachedTotalMinutes: row.CachedTotalMinutes,
		CreatedAt:          row.CreatedAt,
		Version:            row.Version,
	}

	if !row.EntryID.Valid {
		return session, domain.ProcedureEntry{}, false, nil
	}

	entry := domain.ProcedureEntry{
		ID:        row.EntryID.Int64,
		SessionID: row.ID,
		Name:      row.Name.String,
		Duration:  row.Duration.String,
	}
	if row.PatientReference.Valid {
		entry.PatientReference = &row.PatientReference.String
	}
	if row.Note.Valid {
		entry.Note = &row.Note.String
	}

	return session, entry, true, nil
}

func (r *Repository) insertEntriesTx(ctx context.Context, tx *sql.Tx, sessionID int64, entries []domain.ProcedureEntry) error {
	query := `
		INSERT INTO procedure_entries (session_id, name, duration, duration_minutes, patient_reference, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	for i := range entries {
		entries[i].SessionID = sessionID
		minutes := timefmt.ParseDuration(entries[i].Duration)
		entries[i].Duration = timefmt.Canonical(minutes)

		params := []any{sessionID, entries[i].Name, entries[i].Duration, minutes, entries[i].PatientReference, entries[i].Note}
		if err := tx.QueryRowContext(ctx, query, params...).Scan(&entries[i].ID); err != nil {
			return err
		}
	}

	return nil
}

// recomputeTotalTx re-sums the live entry set and writes the cache in the
// same transaction. The total is always derived by full re-sum, never
// incremented, so a missed mutation cannot leave a permanently wrong cache.
func (r *Repository) recomputeTotalTx(ctx context.Context, tx *sql.Tx, sessionID int64) (int32, error) {
	query := `
		UPDATE shift_sessions
		SET cached_total_minutes = GREATEST(0, (
			SELECT COALESCE(SUM(duration_minutes), 0)
			FROM procedure_entries
			WHERE session_id = shift_sessions.id
		))
		WHERE id = $1
		RETURNING cached_total_minutes
	`

	var total int32
	if err := tx.QueryRowContext(ctx, query, sessionID).Scan(&total); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, &domain.NotFoundError{Resource: "shift session"}
		}
		return 0, err
	}

	return total, nil
}

// verifyCachedTotal compares the stored cache against a re-sum of the
// fetched entries. Divergence should never happen; when it does it is
// logged loudly and the recomputed value wins.
func (r *Repository) verifyCachedTotal(session *domain.ShiftSession) {
	var recomputed int32
	for _, entry := range session.Entries {
		recomputed += int32(timefmt.ParseDuration(entry.Duration))
	}

	if recomputed != session.CachedTotalMinutes {
		consistencyErr := &domain.ConsistencyError{
			SessionID:  session.ID,
			Cached:     session.CachedTotalMinutes,
			Recomputed: recomputed,
		}
		slog.Error("cached session total diverged, using recomputed value", "error", consistencyErr)
		session.CachedTotalMinutes = recomputed
	}
}

func (r *Repository) mapSessionConflict(err error, session *domain.ShiftSession) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.ConstraintName != sessionUniqueConstraint {
		return err
	}

	conflict := &domain.ConflictError{
		Message: "a session for this staff member, date and shift already exists",
	}

	// best effort: report when the existing session was registered
	existing, lookupErr := r.GetSessionByTuple(session.StaffMemberID, session.ServiceLine, session.ShiftKind, session.ServiceDate)
	if lookupErr == nil {
		conflict.ExistingAt = existing.CreatedAt
	}

	return conflict
}
