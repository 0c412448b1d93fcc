package seed

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/ucin-dev/workload-tracker/backend/internal/catalog"
	"github.com/ucin-dev/workload-tracker/backend/internal/config"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/repository"
	"github.com/ucin-dev/workload-tracker/backend/internal/scoring"
	"github.com/ucin-dev/workload-tracker/backend/internal/utils"
)

const emailDomain = "ucin.cl"

var samplePatientNames = []string{
	"Agustín Reyes", "Emilia Castro", "Gaspar Vidal", "Trinidad Bravo",
	"Lucas Paredes", "Amanda Salazar", "Renato Guzmán", "Josefa Carrasco",
}

// SeedDemoData fills an empty database with a small but coherent demo set:
// staff for both service lines, patients, a week of shift sessions with
// entries and a categorization per patient.
func SeedDemoData(cfg *config.Config, repo *repository.Repository) {
	staff := seedStaff(cfg, repo, 6)
	patients := seedPatients(repo, len(samplePatientNames))
	seedSessions(repo, staff, patients, 7)
	seedCategorizations(repo, staff, patients)
}

func seedStaff(cfg *config.Config, repo *repository.Repository, n int) []*domain.StaffMember {
	staff := []*domain.StaffMember{}
	for i := 0; i < n; i++ {
		member, err := utils.GenerateRandomStaffMember(cfg.Seed.Staff.Password, emailDomain)
		if err != nil {
			slog.Error("unable to generate staff member", slog.String("error", err.Error()))
			continue
		}
		if err := repo.CreateStaffMember(member); err != nil {
			slog.Error("unable to insert staff member", slog.String("error", err.Error()))
			continue
		}
		staff = append(staff, member)
	}

	slog.Info("staff members seeded", slog.Int("count", len(staff)))
	return staff
}

func seedPatients(repo *repository.Repository, n int) []*domain.Patient {
	patients := []*domain.Patient{}
	for i := 0; i < n; i++ {
		patient := &domain.Patient{
			Reference: utils.GenerateRandomPatientReference(),
			FullName:  samplePatientNames[i%len(samplePatientNames)],
			IsActive:  true,
		}
		if err := repo.CreatePatient(patient); err != nil {
			slog.Error("unable to insert patient", slog.String("error", err.Error()))
			continue
		}
		patients = append(patients, patient)
	}

	slog.Info("patients seeded", slog.Int("count", len(patients)))
	return patients
}

func lineForRole(role domain.Role) domain.ServiceLine {
	if role == domain.RoleKinesiologist {
		return domain.ServiceLineKinesiology
	}
	return domain.ServiceLineNursing
}

func seedSessions(repo *repository.Repository, staff []*domain.StaffMember, patients []*domain.Patient, days int) {
	count := 0
	today := time.Now()

	for _, member := range staff {
		line, _ := catalog.ForLine(lineForRole(member.Role))

		for day := 0; day < days; day++ {
			date := today.AddDate(0, 0, -day)
			kind := line.ShiftKinds[rand.Intn(len(line.ShiftKinds))]

			entries := []domain.ProcedureEntry{}
			for i := 0; i < rand.Intn(4)+2; i++ {
				procedure := line.Procedures[rand.Intn(len(line.Procedures))]
				duration := []string{"00:15", "00:30", "00:45", "01:00"}[rand.Intn(4)]
				entry := domain.ProcedureEntry{Name: procedure.Name, Duration: duration}
				if procedure.RequiresPatient {
					reference := patients[rand.Intn(len(patients))].Reference
					entry.PatientReference = &reference
				}
				entries = append(entries, entry)
			}

			session := &domain.ShiftSession{
				StaffMemberID: member.ID,
				ServiceLine:   line.ServiceLine,
				ShiftKind:     kind,
				ServiceDate:   date,
				Entries:       entries,
			}
			if err := repo.CreateSession(session); err != nil {
				slog.Error("unable to insert shift session", slog.String("error", err.Error()))
				continue
			}
			count++
		}
	}

	slog.Info("shift sessions seeded", slog.Int("count", count))
}

func seedCategorizations(repo *repository.Repository, staff []*domain.StaffMember, patients []*domain.Patient) {
	if len(staff) == 0 {
		return
	}

	count := 0
	allowed := []int32{1, 3, 5}

	for _, patient := range patients {
		items := make([]int32, scoring.NumCategorizationItems)
		for i := range items {
			items[i] = allowed[rand.Intn(len(allowed))]
		}

		result, err := scoring.ScoreCategorization(items)
		if err != nil {
			slog.Error("unable to score categorization", slog.String("error", err.Error()))
			continue
		}

		categorization := &domain.PatientCategorization{
			PatientReference: patient.Reference,
			StaffMemberID:    staff[rand.Intn(len(staff))].ID,
			AssessmentDate:   time.Now(),
			Items:            items,
			TotalScore:       result.TotalScore,
			Category:         result.Category,
			WorkloadLabel:    result.WorkloadLabel,
		}
		if err := repo.CreateCategorization(categorization); err != nil {
			slog.Error("unable to insert categorization", slog.String("error", err.Error()))
			continue
		}
		count++
	}

	slog.Info("categorizations seeded", slog.Int("count", count))
}
