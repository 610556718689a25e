package router

import (
	"strings"
	"time"

	"github.com/greenbier/ues-resolver/internal/domain"
)

// hasConflict runs the entity-specific adapter that forces GRAY_ZONE
// regardless of score (§4.3): country mismatch for team/competition,
// season-year delta > 1, DOB delta > 1 year, match-date delta > 2 days.
// Absent data on either side never itself constitutes a conflict.
func hasConflict(c domain.Candidate) bool {
	switch c.EntityType {
	case domain.EntityTeam, domain.EntityCompetition:
		return countryConflict(c.AlphaCountry, c.BetaCountry)
	case domain.EntitySeason:
		return yearConflict(c.StartYear, c.BetaStartYear, 1)
	case domain.EntityPlayer:
		return yearConflict(c.DOBYear, c.BirthYear, 1)
	case domain.EntityMatch:
		return dateConflict(c.MatchDate, c.BetaMatchDate, 2*24*time.Hour)
	default:
		return false
	}
}

func countryConflict(alpha, beta *string) bool {
	if alpha == nil || beta == nil || *alpha == "" || *beta == "" {
		return false
	}
	return !strings.EqualFold(*alpha, *beta)
}

func yearConflict(a, b *int, maxDelta int) bool {
	if a == nil || b == nil {
		return false
	}
	delta := *a - *b
	if delta < 0 {
		delta = -delta
	}
	return delta > maxDelta
}

func dateConflict(a, b *time.Time, maxDelta time.Duration) bool {
	if a == nil || b == nil {
		return false
	}
	delta := a.Sub(*b)
	if delta < 0 {
		delta = -delta
	}
	return delta > maxDelta
}
