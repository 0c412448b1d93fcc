package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/config"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// newTestRepository connects to the database named by TEST_DATABASE_DSN and
// rebuilds the schema from the migration file. Tests are skipped when no
// test database is available.
func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("set TEST_DATABASE_DSN to run repository tests")
	}

	dbpool, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbpool.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, dbpool.PingContext(ctx))

	resetSchema(t, dbpool)

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 10

	return NewRepository(cfg, dbpool)
}

func resetSchema(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"burnout_answers", "burnout_submissions", "patient_categorizations",
		"procedure_entries", "shift_sessions", "patients", "staff_members",
	}
	for _, table := range tables {
		_, err := db.Exec("DROP TABLE IF EXISTS " + table + " CASCADE")
		require.NoError(t, err)
	}

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "0001_init.sql"))
	require.NoError(t, err)

	for _, stmt := range strings.Split(string(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}
}

func createTestStaff(t *testing.T, r *Repository, role domain.Role) *domain.StaffMember {
	t.Helper()

	username := fmt.Sprintf("staff%d", time.Now().UnixNano())
	member := &domain.StaffMember{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		FullName:     "Camila González",
		Email:        username + "@ucin.cl",
		Role:         role,
	}
	require.NoError(t, r.CreateStaffMember(member))

	return member
}

func TestCreateSessionStoresReSummedTotal(t *testing.T) {
	repo := newTestRepository(t)
	staff := createTestStaff(t, repo, domain.RoleNurse)

	session := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftDay,
		ServiceDate:   time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		Entries: []domain.ProcedureEntry{
			{Name: "shift handover", Duration: "01:00"},
			{Name: "administrative work", Duration: "00:45"},
			{Name: "equipment check", Duration: "00:30"},
		},
	}
	require.NoError(t, repo.CreateSession(session))

	assert.Equal(t, int32(135), session.CachedTotalMinutes)

	fetched, err := repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(135), fetched.CachedTotalMinutes)
	assert.Len(t, fetched.Entries, 3)
}

func TestCachedTotalTracksEntryMutations(t *testing.T) {
	repo := newTestRepository(t)
	staff := createTestStaff(t, repo, domain.RoleNurse)

	session := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftNight,
		ServiceDate:   time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		Entries: []domain.ProcedureEntry{
			{Name: "shift handover", Duration: "01:00"},
			{Name: "administrative work", Duration: "00:45"},
			{Name: "equipment check", Duration: "00:30"},
		},
	}
	require.NoError(t, repo.CreateSession(session))
	require.Equal(t, int32(135), session.CachedTotalMinutes)

	// the total is re-derived from the surviving rows, never decremented
	require.NoError(t, repo.RemoveEntry(session.ID, session.Entries[1].ID))

	fetched, err := repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(90), fetched.CachedTotalMinutes)
	assert.Len(t, fetched.Entries, 2)

	require.NoError(t, repo.AddEntries(session.ID, []domain.ProcedureEntry{
		{Name: "unit restocking", Duration: "00:15"},
	}))

	fetched, err = repo.GetSessionByID(session.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(105), fetched.CachedTotalMinutes)
	assert.Len(t, fetched.Entries, 3)
}

func TestCreateSessionLeavesNothingOnFailure(t *testing.T) {
	repo := newTestRepository(t)
	staff := createTestStaff(t, repo, domain.RoleNurse)
	date := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	// the second entry references a patient that does not exist, so the
	// batch insert fails after the session row was written
	unknown := "19876543-2"
	session := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftDay,
		ServiceDate:   date,
		Entries: []domain.ProcedureEntry{
			{Name: "shift handover", Duration: "01:00"},
			{Name: "wound care", Duration: "00:30", PatientReference: &unknown},
		},
	}
	require.Error(t, repo.CreateSession(session))

	_, err := repo.GetSessionByTuple(staff.ID, domain.ServiceLineNursing, domain.ShiftDay, date)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestCreateSessionDuplicateTupleConflict(t *testing.T) {
	repo := newTestRepository(t)
	staff := createTestStaff(t, repo, domain.RoleNurse)
	date := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	first := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftDay,
		ServiceDate:   date,
		Entries: []domain.ProcedureEntry{
			{Name: "shift handover", Duration: "00:30"},
		},
	}
	require.NoError(t, repo.CreateSession(first))

	duplicate := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftDay,
		ServiceDate:   date,
		Entries: []domain.ProcedureEntry{
			{Name: "equipment check", Duration: "00:15"},
		},
	}
	err := repo.CreateSession(duplicate)

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.WithinDuration(t, first.CreatedAt, conflict.ExistingAt, time.Second)
}

func TestSessionTupleIsScopedByServiceLine(t *testing.T) {
	repo := newTestRepository(t)
	staff := createTestStaff(t, repo, domain.RoleKinesiologist)
	date := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	nursing := &domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftFullDay,
		ServiceDate:   date,
		Entries: []domain.ProcedureEntry{
			{Name: "shift handover", Duration: "00:30"},
		},
	}
	require.NoError(t, repo.CreateSession(nursing))

	// both lines allow a 24h shift; resolving for kinesiology must not
	// hand back the nursing session
	resolved, err := repo.ResolveOrCreateSession(staff.ID, domain.ServiceLineKinesiology, domain.ShiftFullDay, date)
	require.NoError(t, err)
	assert.NotEqual(t, nursing.ID, resolved.ID)
	assert.Equal(t, domain.ServiceLineKinesiology, resolved.ServiceLine)

	again, err := repo.ResolveOrCreateSession(staff.ID, domain.ServiceLineKinesiology, domain.ShiftFullDay, date)
	require.NoError(t, err)
	assert.Equal(t, resolved.ID, again.ID)

	byTuple, err := repo.GetSessionByTuple(staff.ID, domain.ServiceLineNursing, domain.ShiftFullDay, date)
	require.NoError(t, err)
	assert.Equal(t, nursing.ID, byTuple.ID)

	// the duplicate guard still holds within a line
	err = repo.CreateSession(&domain.ShiftSession{
		StaffMemberID: staff.ID,
		ServiceLine:   domain.ServiceLineNursing,
		ShiftKind:     domain.ShiftFullDay,
		ServiceDate:   date,
		Entries: []domain.ProcedureEntry{
			{Name: "equipment check", Duration: "00:15"},
		},
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
}
