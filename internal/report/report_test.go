package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(date(2025, time.March, 14))
	assert.Equal(t, date(2025, time.March, 1), w.From)
	assert.Equal(t, date(2025, time.April, 1), w.To)
}

func TestTrailingWindow(t *testing.T) {
	w := TrailingWindow(date(2025, time.March, 14), 7)
	assert.Equal(t, date(2025, time.March, 8), w.From)
	assert.Equal(t, date(2025, time.March, 15), w.To)
}

func TestProceduresPerSession(t *testing.T) {
	assert.Equal(t, 0.0, ProceduresPerSession(0, 0))
	assert.Equal(t, 0.0, ProceduresPerSession(12, 0))
	assert.Equal(t, 4.0, ProceduresPerSession(12, 3))
	assert.Equal(t, 3.3, ProceduresPerSession(10, 3))
	assert.Equal(t, 3.7, ProceduresPerSession(11, 3))
}

func TestStaffing(t *testing.T) {
	ratio := Staffing(16, 2)
	assert.Equal(t, 8.0, ratio.Ratio)
	assert.Equal(t, "optimal", ratio.Level)

	ratio = Staffing(19, 2)
	assert.Equal(t, 9.5, ratio.Ratio)
	assert.Equal(t, "acceptable", ratio.Level)

	ratio = Staffing(22, 2)
	assert.Equal(t, 11.0, ratio.Ratio)
	assert.Equal(t, "critical", ratio.Level)
}

func TestStaffingZeroStaff(t *testing.T) {
	// five waiting patients and nobody on shift must not divide by zero
	ratio := Staffing(5, 0)
	assert.Equal(t, 0.0, ratio.Ratio)
	assert.Equal(t, "optimal", ratio.Level)
}

func TestDistributionAlwaysHasAllBands(t *testing.T) {
	dist := Distribution(nil)
	assert.Equal(t, map[domain.CategoryBand]int{
		domain.BandLow:    0,
		domain.BandMedium: 0,
		domain.BandHigh:   0,
	}, dist)

	dist = Distribution([]domain.CategoryBand{domain.BandHigh, domain.BandHigh, domain.BandLow})
	assert.Equal(t, 1, dist[domain.BandLow])
	assert.Equal(t, 0, dist[domain.BandMedium])
	assert.Equal(t, 2, dist[domain.BandHigh])
}

func TestTrendZeroFillsEmptyDays(t *testing.T) {
	now := date(2025, time.March, 14)
	sessions := []SessionStat{
		{ServiceDate: date(2025, time.March, 14), EntryCount: 3, TotalMinutes: 120},
		{ServiceDate: date(2025, time.March, 14), EntryCount: 1, TotalMinutes: 30},
		{ServiceDate: date(2025, time.March, 12), EntryCount: 2, TotalMinutes: 60},
	}

	points := Trend(sessions, now, 7)
	require.Len(t, points, 7)

	// oldest first, every day present even without activity
	assert.Equal(t, "2025-03-08", points[0].Date)
	assert.Equal(t, "2025-03-14", points[6].Date)

	assert.Equal(t, TrendPoint{Date: "2025-03-13", Sessions: 0, Minutes: 0}, points[5])
	assert.Equal(t, TrendPoint{Date: "2025-03-12", Sessions: 1, Minutes: 60}, points[4])
	assert.Equal(t, TrendPoint{Date: "2025-03-14", Sessions: 2, Minutes: 150}, points[6])
}

func TestBuildOverview(t *testing.T) {
	now := date(2025, time.March, 14)
	in := Input{
		Sessions: []SessionStat{
			{ServiceDate: date(2025, time.March, 10), EntryCount: 4, TotalMinutes: 300},
			{ServiceDate: date(2025, time.March, 11), EntryCount: 3, TotalMinutes: 135},
		},
		Categories:     []domain.CategoryBand{domain.BandMedium, domain.BandHigh},
		ActivePatients: 9,
		ActiveStaff:    3,
	}

	overview := BuildOverview(in, MonthWindow(now), now, 30)

	assert.Equal(t, 2, overview.SessionCount)
	assert.Equal(t, 7, overview.ProcedureCount)
	assert.Equal(t, 3.5, overview.ProceduresPerSession)
	assert.Equal(t, 435, overview.Time.Minutes)
	assert.Equal(t, 7, overview.Time.Hours)
	assert.Equal(t, 15, overview.Time.Rest)
	assert.Equal(t, "7h 15m", overview.Time.Display)
	assert.Equal(t, 3.0, overview.Staffing.Ratio)
	assert.Equal(t, "optimal", overview.Staffing.Level)
	assert.Equal(t, 1, overview.Distribution[domain.BandHigh])
	assert.Len(t, overview.Trend, 30)
}

func TestBuildOverviewEmptyWindow(t *testing.T) {
	now := date(2025, time.March, 14)
	overview := BuildOverview(Input{}, MonthWindow(now), now, 7)

	assert.Equal(t, 0, overview.SessionCount)
	assert.Equal(t, 0.0, overview.ProceduresPerSession)
	assert.Equal(t, "0h 0m", overview.Time.Display)
	require.Len(t, overview.Trend, 7)
	for _, point := range overview.Trend {
		assert.Zero(t, point.Sessions)
		assert.Zero(t, point.Minutes)
	}
}
