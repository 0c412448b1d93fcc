// Package report folds stored sessions, entries and categorizations into
// the dashboard KPIs. Everything is recomputed per request from the record
// set the repository fetched for the window; no counters are kept between
// calls.
package report

import (
	"math"
	"time"

	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"github.com/ucin-dev/workload-tracker/backend/internal/timefmt"
)

const dateLayout = "2006-01-02"

// Window is a half-open time range [From, To).
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// MonthWindow covers the calendar month containing now.
func MonthWindow(now time.Time) Window {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Window{From: from, To: from.AddDate(0, 1, 0)}
}

// TrailingWindow covers the last days calendar days, ending after today.
func TrailingWindow(now time.Time, days int) Window {
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return Window{From: to.AddDate(0, 0, -days), To: to}
}

// SessionStat is the per-session aggregate the repository fetches for a
// window.
type SessionStat struct {
	ServiceDate  time.Time
	EntryCount   int
	TotalMinutes int
}

// Input is the record set an overview is computed from.
type Input struct {
	Sessions       []SessionStat
	Categories     []domain.CategoryBand
	ActivePatients int
	ActiveStaff    int
}

type TrendPoint struct {
	Date     string `json:"date"`
	Sessions int    `json:"sessions"`
	Minutes  int    `json:"minutes"`
}

type TimeTotals struct {
	Minutes int    `json:"minutes"`
	Hours   int    `json:"hours"`
	Rest    int    `json:"restMinutes"`
	Display string `json:"display"`
}

type StaffingRatio struct {
	ActivePatients int     `json:"activePatients"`
	ActiveStaff    int     `json:"activeStaff"`
	Ratio          float64 `json:"ratio"`
	Level          string  `json:"level"`
}

type Overview struct {
	Window               Window                       `json:"window"`
	SessionCount         int                          `json:"sessionCount"`
	ProcedureCount       int                          `json:"procedureCount"`
	ProceduresPerSession float64                      `json:"proceduresPerSession"`
	Time                 TimeTotals                   `json:"time"`
	Staffing             StaffingRatio                `json:"staffing"`
	Distribution         map[domain.CategoryBand]int  `json:"distribution"`
	Trend                []TrendPoint                 `json:"trend"`
}

// BuildOverview computes every KPI for the fetched record set. The trend
// covers the trendDays calendar days ending today; days without activity
// appear as explicit zero points so chart alignment never shifts.
func BuildOverview(in Input, window Window, now time.Time, trendDays int) Overview {
	procedures := 0
	minutes := 0
	for _, s := range in.Sessions {
		procedures += s.EntryCount
		minutes += s.TotalMinutes
	}

	return Overview{
		Window:               window,
		SessionCount:         len(in.Sessions),
		ProcedureCount:       procedures,
		ProceduresPerSession: ProceduresPerSession(procedures, len(in.Sessions)),
		Time: TimeTotals{
			Minutes: minutes,
			Hours:   minutes / 60,
			Rest:    minutes % 60,
			Display: timefmt.FormatMinutes(minutes),
		},
		Staffing:     Staffing(in.ActivePatients, in.ActiveStaff),
		Distribution: Distribution(in.Categories),
		Trend:        Trend(in.Sessions, now, trendDays),
	}
}

// ProceduresPerSession is the shift-average throughput, rounded to one
// decimal. Zero sessions yields 0, never a division by zero.
func ProceduresPerSession(procedures, sessions int) float64 {
	if sessions == 0 {
		return 0
	}
	return round1(float64(procedures) / float64(sessions))
}

// Staffing computes the caregiver-to-patient ratio with its band. Zero
// active staff reports a 0.0 ratio rather than an error.
func Staffing(activePatients, activeStaff int) StaffingRatio {
	ratio := 0.0
	if activeStaff > 0 {
		ratio = round1(float64(activePatients) / float64(activeStaff))
	}

	return StaffingRatio{
		ActivePatients: activePatients,
		ActiveStaff:    activeStaff,
		Ratio:          ratio,
		Level:          RatioLevel(ratio),
	}
}

// RatioLevel bands a patient-per-caregiver ratio.
func RatioLevel(ratio float64) string {
	switch {
	case ratio <= 8:
		return "optimal"
	case ratio <= 10:
		return "acceptable"
	default:
		return "critical"
	}
}

// Distribution counts categorizations per band by scanning the filtered
// record set. All three bands are always present, zero-valued when empty.
func Distribution(categories []domain.CategoryBand) map[domain.CategoryBand]int {
	dist := map[domain.CategoryBand]int{
		domain.BandLow:    0,
		domain.BandMedium: 0,
		domain.BandHigh:   0,
	}
	for _, c := range categories {
		dist[c]++
	}
	return dist
}

// Trend produces one point per calendar day over the last days days,
// including today, oldest first.
func Trend(sessions []SessionStat, now time.Time, days int) []TrendPoint {
	byDay := make(map[string]*TrendPoint, len(sessions))
	for _, s := range sessions {
		key := s.ServiceDate.Format(dateLayout)
		point, ok := byDay[key]
		if !ok {
			point = &TrendPoint{Date: key}
			byDay[key] = point
		}
		point.Sessions++
		point.Minutes += s.TotalMinutes
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	points := make([]TrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := today.AddDate(0, 0, -i).Format(dateLayout)
		if point, ok := byDay[key]; ok {
			points = append(points, *point)
		} else {
			points = append(points, TrendPoint{Date: key})
		}
	}

	return points
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
