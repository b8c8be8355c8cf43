package streaks

import (
	"math"
	"sort"
	"time"

	"github.com/clarahq/clara/internal/constants"
	"github.com/clarahq/clara/internal/models"
)

// LastResult is the outcome of the most recent check-in for a room.
type LastResult string

const (
	LastTidy    LastResult = "yes"
	LastNotTidy LastResult = "no"
	LastNone    LastResult = ""
)

// Result holds the derived streak values for one room.
type Result struct {
	Current int
	Best    int
	Last    LastResult
}

// RoomResult pairs a streak result with the room it belongs to.
type RoomResult struct {
	RoomID string
	Result
}

// DashboardStats aggregates streak results across all active rooms.
type DashboardStats struct {
	TotalCurrent   int
	TotalBest      int
	ActiveRooms    int
	CompletionRate int // percent of tidy check-ins in the trailing window
}

// Compute derives current streak, best streak, and last result from one
// room's check-in history. Pure function, any input order accepted.
//
// Duplicate entries for the same date collapse to a single logical day;
// the entry appearing last in input order for that date wins.
func Compute(checkins []models.Checkin) Result {
	days := collapseByDay(checkins)
	if len(days) == 0 {
		return Result{Last: LastNone}
	}

	// Best streak: chronological walk, run resets on a not-tidy day or
	// on a gap of more than one calendar day.
	best, run := 0, 0
	for i, day := range days {
		if !day.IsTidy {
			run = 0
			continue
		}
		if i > 0 && days[i-1].IsTidy && daysBetween(days[i-1].Date, day.Date) == 1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}

	// Current streak: consecutive tidy days ending at the most recent
	// check-in. A not-tidy final entry means no current streak.
	last := days[len(days)-1]
	current := 0
	if last.IsTidy {
		current = 1
		for i := len(days) - 2; i >= 0; i-- {
			if !days[i].IsTidy || daysBetween(days[i].Date, days[i+1].Date) != 1 {
				break
			}
			current++
		}
	}

	lastResult := LastNotTidy
	if last.IsTidy {
		lastResult = LastTidy
	}

	return Result{Current: current, Best: best, Last: lastResult}
}

// ComputeDashboard totals per-room results and the completion rate over
// the trailing window ending today (YYYY-MM-DD).
func ComputeDashboard(results []RoomResult, checkins []models.Checkin, today string) DashboardStats {
	stats := DashboardStats{ActiveRooms: len(results)}
	for _, r := range results {
		stats.TotalCurrent += r.Current
		stats.TotalBest += r.Best
	}

	cutoff := addDays(today, -constants.TrendWindowDays)
	total, tidy := 0, 0
	for _, c := range checkins {
		if c.Date >= cutoff {
			total++
			if c.IsTidy {
				tidy++
			}
		}
	}
	if total > 0 {
		stats.CompletionRate = int(math.Round(float64(tidy) / float64(total) * 100))
	}
	return stats
}

// collapseByDay sorts by date ascending and reduces same-day duplicates
// to the last entry in input order for that date.
func collapseByDay(checkins []models.Checkin) []models.Checkin {
	sorted := make([]models.Checkin, len(checkins))
	copy(sorted, checkins)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var days []models.Checkin
	for _, c := range sorted {
		if n := len(days); n > 0 && days[n-1].Date == c.Date {
			days[n-1] = c
			continue
		}
		days = append(days, c)
	}
	return days
}

// daysBetween returns the calendar-day difference between two YYYY-MM-DD
// dates. Dates are validated upstream by the ledger.
func daysBetween(from, to string) int {
	a, _ := time.Parse("2006-01-02", from)
	b, _ := time.Parse("2006-01-02", to)
	return int(b.Sub(a).Hours() / 24)
}

func addDays(date string, days int) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, days).Format("2006-01-02")
}
