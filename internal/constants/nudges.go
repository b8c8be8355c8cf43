package constants

// Nudge rule thresholds:
//   - StreakCelebrationMin is the current streak length that triggers a
//     celebration message.
//   - MomentumTrendMin is the number of tidy days within the trend window
//     that triggers a momentum message (only below the celebration streak).
//   - TrendWindowDays is the size of the rolling window, in calendar days.
const (
	StreakCelebrationMin = 3
	MomentumTrendMin     = 5
	TrendWindowDays      = 7
)
