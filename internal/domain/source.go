// Package domain defines the typed record structures every stage of the
// resolution pipeline operates on: per-source (ALPHA/BETA) input records,
// canonical UES entities, and the candidate-pair representation the
// matchers produce. Concrete field names mirror the source-shape examples
// in spec.md §3 (ALPHA name/team_id vs BETA display_name/id).
package domain

import "time"

// Source identifies which side of the reconciliation a record came from.
type Source string

const (
	SourceAlpha Source = "ALPHA"
	SourceBeta  Source = "BETA"
)

// AlphaTeam is ALPHA's team record shape.
type AlphaTeam struct {
	TeamID  int
	Name    string
	Country string
}

// BetaTeam is BETA's team record shape.
type BetaTeam struct {
	ID          int
	DisplayName string
	Region      string
}

// AlphaCompetition is ALPHA's competition record shape.
type AlphaCompetition struct {
	CompetitionID int
	Name          string
	Country       string
}

// BetaCompetition is BETA's competition record shape.
type BetaCompetition struct {
	ID      int
	Name    string
	Country string
}

// AlphaSeason is ALPHA's season record shape, scoped to a competition.
type AlphaSeason struct {
	SeasonID      int
	CompetitionID int
	Label         string // raw season string, e.g. "2020/21"
}

// BetaSeason is BETA's season record shape, scoped to a competition.
type BetaSeason struct {
	ID            int
	CompetitionID int
	Label         string
}

// AlphaPlayer is ALPHA's player record shape.
type AlphaPlayer struct {
	PlayerID    int
	Name        string
	DOB         *time.Time
	TeamID      int
	Nationality string
	HeightCM    *int
}

// BetaPlayer is BETA's player record shape.
type BetaPlayer struct {
	ID          int
	FullName    string
	BirthYear   *int
	TeamName    string
	Footedness  string
	HeightCM    *int
	Nationality string
}

// AlphaMatch is ALPHA's match record shape.
type AlphaMatch struct {
	MatchID       int
	CompetitionID int
	SeasonID      int
	HomeTeamID    int
	AwayTeamID    int
	MatchDate     *time.Time
}

// BetaMatch is BETA's match record shape. HomeTeamID/AwayTeamID are
// optional: BETA matches may carry team names instead (§3), resolved via a
// name lookup index built from BetaTeam rows.
type BetaMatch struct {
	ID            int
	CompetitionID int
	SeasonID      int
	HomeTeamID    *int
	AwayTeamID    *int
	HomeTeamName  string
	AwayTeamName  string
	MatchDate     *time.Time
}
