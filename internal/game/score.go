package game

import (
	"fmt"
	"time"
)

// KillScore is the base score of a kill plus the combo bonus. combo counts
// the kills chained before this one inside the combo window.
func KillScore(base, combo, bonus int) int {
	return base + combo*bonus
}

// FormatPlayTime formats the play time as HH:MM:SS, or MM:SS under an hour.
func FormatPlayTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
