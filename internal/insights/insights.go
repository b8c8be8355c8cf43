package insights

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/clarahq/clara/internal/constants"
	"github.com/clarahq/clara/internal/models"
	"github.com/clarahq/clara/internal/streaks"
)

// ReasonCount is one normalized not-tidy reason and how often it occurred.
type ReasonCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// RoomSummary is the per-room trend input for nudge generation.
type RoomSummary struct {
	RoomName      string
	Trend7        int // tidy days in the trailing window
	CurrentStreak int
	TopReason     string
}

// SummarizeReasons tallies the reasons given for not-tidy check-ins.
// Reasons are trimmed and lowercased before counting; tidy entries and
// empty reasons never contribute. The result is sorted by count
// descending, ties kept in first-encountered order.
func SummarizeReasons(checkins []models.Checkin) []ReasonCount {
	counts := make(map[string]int)
	var order []string

	for _, c := range checkins {
		if c.IsTidy {
			continue
		}
		reason := strings.ToLower(strings.TrimSpace(c.Reason))
		if reason == "" {
			continue
		}
		if _, ok := counts[reason]; !ok {
			order = append(order, reason)
		}
		counts[reason]++
	}

	result := make([]ReasonCount, 0, len(order))
	for _, reason := range order {
		result = append(result, ReasonCount{Reason: reason, Count: counts[reason]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

// TopReason returns the most frequent not-tidy reason, or "" when there
// is none.
func TopReason(checkins []models.Checkin) string {
	summary := SummarizeReasons(checkins)
	if len(summary) == 0 {
		return ""
	}
	return summary[0].Reason
}

// Trend7 counts distinct tidy days within the trailing window ending
// today. Same-day duplicates collapse to the last-written entry.
func Trend7(checkins []models.Checkin, today string) int {
	cutoff := addDays(today, -constants.TrendWindowDays)

	outcomeByDay := make(map[string]bool)
	for _, c := range checkins {
		if c.Date >= cutoff {
			outcomeByDay[c.Date] = c.IsTidy
		}
	}

	tidy := 0
	for _, isTidy := range outcomeByDay {
		if isTidy {
			tidy++
		}
	}
	return tidy
}

// SummarizeRoom builds the nudge input for one room from its history.
func SummarizeRoom(roomName string, checkins []models.Checkin, today string) RoomSummary {
	return RoomSummary{
		RoomName:      roomName,
		Trend7:        Trend7(checkins, today),
		CurrentStreak: streaks.Compute(checkins).Current,
		TopReason:     TopReason(checkins),
	}
}

// GenerateNudges produces short motivational messages, walking the rules
// per room: streak celebration, momentum, reason question. Every matching
// rule fires; the generic two-minute nudge fires only when no other rule
// produced a message for that room.
func GenerateNudges(summaries []RoomSummary) []string {
	var messages []string
	for _, s := range summaries {
		fired := false

		if s.CurrentStreak >= constants.StreakCelebrationMin {
			messages = append(messages, fmt.Sprintf(
				"You've kept %s tidy %d days straight. Nice momentum!", s.RoomName, s.CurrentStreak))
			fired = true
		}
		if s.Trend7 >= constants.MomentumTrendMin && s.CurrentStreak < constants.StreakCelebrationMin {
			messages = append(messages, fmt.Sprintf(
				"Strong week in %s. Let's lock in a streak today.", s.RoomName))
			fired = true
		}
		if s.TopReason != "" {
			messages = append(messages, fmt.Sprintf(
				"Last time in %s you said %q. What would make it easier today?", s.RoomName, s.TopReason))
			fired = true
		}
		if !fired {
			messages = append(messages, fmt.Sprintf(
				"Quick tidy in %s? Two minutes counts.", s.RoomName))
		}
	}
	return messages
}

func addDays(date string, days int) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.AddDate(0, 0, days).Format("2006-01-02")
}
