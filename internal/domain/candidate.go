package domain

import "time"

// Candidate is the generic output of every matcher: an ALPHA/BETA id pair
// with a blended confidence, a per-signal breakdown, and enough
// entity-specific attributes for the router's conflict adapter and the
// downstream merger to work from without re-touching the source records.
type Candidate struct {
	EntityType EntityType
	AlphaID    int
	BetaID     int
	Confidence float64
	Breakdown  map[string]float64

	// Attributes carried through for conflict detection and merging.
	// Only the fields relevant to EntityType are populated by a given
	// matcher; the rest are left at zero value.
	Name          string  // team/competition: canonical name (ALPHA preferred)
	Country       *string // team/competition: merged country (ALPHA fallback BETA)
	AlphaCountry  *string // team/competition: raw ALPHA-side country, for conflict detection
	BetaCountry   *string // team/competition: raw BETA-side country/region, for conflict detection

	StartYear     *int // season: ALPHA-parsed start year
	EndYear       *int // season: ALPHA-parsed end year
	BetaStartYear *int // season: BETA-parsed start year, for conflict detection
	BetaEndYear   *int // season: BETA-parsed end year

	CanonicalName string  // player
	DOBYear       *int    // player: ALPHA dob year
	BirthYear     *int    // player: BETA birth year
	Nationality   *string // player
	HeightCM      *int    // player
	Foot          *string // player

	AlphaTeamID     int // player: ALPHA-side team id for conflict/lookup
	AlphaHomeTeamID int // match: ALPHA-side home team id
	AlphaAwayTeamID int // match: ALPHA-side away team id
	AlphaSeasonID   int // match: ALPHA-side season id
	CompetitionID   int // season/match: ALPHA competition id context
	BetaCompetitionID int // season/match: BETA competition id used for the match, for merger fallback

	MatchDate     *time.Time // match: ALPHA match date
	BetaMatchDate *time.Time // match: BETA match date, for conflict detection
}
