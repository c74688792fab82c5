// Package scoring holds the point rules for the Janjetas economy: how pages,
// sessions, streaks, completions, ratings and podium finishes turn into points.
package scoring

import (
	"math"
)

const (
	// PageRate is the points earned per page read.
	PageRate = 0.01
	// CompletionBonusRate is the extra points per page awarded once, when a
	// book reaches 100%.
	CompletionBonusRate = 0.10
	// SessionBasePoints is the flat award for logging a reading session.
	SessionBasePoints = 5
	// StreakBonusPerDay and StreakBonusCap shape the consecutive-day bonus.
	StreakBonusPerDay = 3
	StreakBonusCap    = 15
	// FirstRatingBonus is granted once, when a user first rates a book.
	FirstRatingBonus = 3

	PodiumFirst  = 300.00
	PodiumSecond = 100.00
	PodiumThird  = 50.00
)

// Round2 rounds to two decimal places. Points and percentages are stored as
// numeric(_,2), so every computed value passes through here before persisting.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PercentComplete returns the completion percentage for a page position,
// capped at 100. Books with an unknown page count report 0.
func PercentComplete(page, pageCount int) float64 {
	if pageCount <= 0 {
		return 0
	}
	pct := Round2(float64(page) / float64(pageCount) * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// PagePoints is the full recomputation of page-derived points.
func PagePoints(page int) float64 {
	return Round2(float64(page) * PageRate)
}

// CompletionBonus is the one-time award for finishing a book.
func CompletionBonus(pageCount int) float64 {
	return Round2(float64(pageCount) * CompletionBonusRate)
}

// StreakBonus is the capped consecutive-day bonus for a session.
func StreakBonus(streakDays int) float64 {
	bonus := float64(streakDays * StreakBonusPerDay)
	if bonus > StreakBonusCap {
		bonus = StreakBonusCap
	}
	return bonus
}

// PodiumBonus maps a leaderboard rank to its completion-time award. The
// second return reports whether the rank is on the podium at all.
func PodiumBonus(rank int) (float64, bool) {
	switch rank {
	case 1:
		return PodiumFirst, true
	case 2:
		return PodiumSecond, true
	case 3:
		return PodiumThird, true
	default:
		return 0, false
	}
}
