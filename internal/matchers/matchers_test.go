package matchers

import (
	"testing"
	"time"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeams_ArgmaxAboveThreshold(t *testing.T) {
	alpha := []domain.AlphaTeam{{TeamID: 1, Name: "Man Utd", Country: "England"}}
	beta := []domain.BetaTeam{
		{ID: 10, DisplayName: "Manchester United FC", Region: "England"},
		{ID: 11, DisplayName: "Manchester City FC", Region: "England"},
	}

	candidates := Teams(alpha, beta, map[string]string{"utd": "united"}, 0.7)

	require.Len(t, candidates, 1)
	assert.Equal(t, 10, candidates[0].BetaID)
	assert.GreaterOrEqual(t, candidates[0].Confidence, 0.7)
}

func TestTeams_BelowThresholdYieldsNoCandidate(t *testing.T) {
	alpha := []domain.AlphaTeam{{TeamID: 1, Name: "Zzyzx Rovers"}}
	beta := []domain.BetaTeam{{ID: 10, DisplayName: "Manchester United FC"}}

	candidates := Teams(alpha, beta, nil, 0.7)

	assert.Empty(t, candidates)
}

func TestCompetitions_StripsSponsorBeforeScoring(t *testing.T) {
	alpha := []domain.AlphaCompetition{{CompetitionID: 1, Name: "Premier League", Country: "England"}}
	beta := []domain.BetaCompetition{{ID: 20, Name: "Barclays Premier League", Country: "England"}}

	candidates := Competitions(alpha, beta, []string{"barclays"}, nil, 0.75)

	require.Len(t, candidates, 1)
	assert.Equal(t, 20, candidates[0].BetaID)
}

func TestSeasons_EmitsAllQualifyingPairsNotArgmax(t *testing.T) {
	alpha := []domain.AlphaSeason{{SeasonID: 1, CompetitionID: 100, Label: "2020/21"}}
	beta := []domain.BetaSeason{
		{ID: 200, CompetitionID: 200, Label: "2020/2021"},
		{ID: 201, CompetitionID: 200, Label: "2021/2022"},
	}

	candidates := Seasons(alpha, beta, map[int]int{100: 200}, 0.6)

	require.Len(t, candidates, 2)
}

func TestSeasons_UnmappedCompetitionSkipped(t *testing.T) {
	alpha := []domain.AlphaSeason{{SeasonID: 1, CompetitionID: 999, Label: "2020/21"}}
	beta := []domain.BetaSeason{{ID: 200, CompetitionID: 200, Label: "2020/21"}}

	candidates := Seasons(alpha, beta, map[int]int{}, 0.6)

	assert.Empty(t, candidates)
}

func TestPlayers_HighConfidenceWhenNameDOBAndTeamAgree(t *testing.T) {
	dob := time.Date(1995, 4, 10, 0, 0, 0, 0, time.UTC)
	alpha := []domain.AlphaPlayer{{PlayerID: 1, Name: "John Doe", DOB: &dob, TeamID: 1}}
	birthYear := 1995
	beta := []domain.BetaPlayer{{ID: 50, FullName: "Jon Doe", BirthYear: &birthYear, TeamName: "City FC"}}
	betaTeams := []domain.BetaTeam{{ID: 60, DisplayName: "City FC"}}

	candidates := Players(alpha, beta, betaTeams, map[int]int{1: 60}, 0.6, 0.85)

	require.Len(t, candidates, 1)
	c := candidates[0]
	assert.GreaterOrEqual(t, c.Confidence, 0.85)
	assert.Greater(t, c.Breakdown["name_similarity"], 0.8)
	assert.Equal(t, 1.0, c.Breakdown["dob_similarity"])
	assert.Equal(t, 1.0, c.Breakdown["team_similarity"])
}

func TestPlayers_MissingDOBStillScoresOnNameAndTeam(t *testing.T) {
	alpha := []domain.AlphaPlayer{{PlayerID: 1, Name: "John Doe", TeamID: 1}}
	beta := []domain.BetaPlayer{{ID: 50, FullName: "John Doe", TeamName: "City FC"}}
	betaTeams := []domain.BetaTeam{{ID: 60, DisplayName: "City FC"}}

	candidates := Players(alpha, beta, betaTeams, map[int]int{1: 60}, 0.6, 0.65)

	require.Len(t, candidates, 1)
	assert.Equal(t, 0.0, candidates[0].Breakdown["dob_similarity"])
}

func TestPlayers_BelowAutopassYieldsNoCandidate(t *testing.T) {
	alpha := []domain.AlphaPlayer{{PlayerID: 1, Name: "John Doe", TeamID: 1}}
	beta := []domain.BetaPlayer{{ID: 50, FullName: "Someone Else"}}

	candidates := Players(alpha, beta, nil, nil, 0.6, 0.85)

	assert.Empty(t, candidates)
}

func TestMatches_AcceptsAlignedTeamsAndSameDayDate(t *testing.T) {
	date := time.Date(2021, 3, 1, 15, 0, 0, 0, time.UTC)
	alpha := []domain.AlphaMatch{{
		MatchID: 1, CompetitionID: 100, SeasonID: 10,
		HomeTeamID: 1, AwayTeamID: 2, MatchDate: &date,
	}}
	betaDate := date
	betaHome, betaAway := 60, 61
	beta := []domain.BetaMatch{{
		ID: 500, CompetitionID: 200, SeasonID: 20,
		HomeTeamID: &betaHome, AwayTeamID: &betaAway, MatchDate: &betaDate,
	}}

	candidates := Matches(
		alpha, beta,
		map[int]int{100: 200}, map[int]int{10: 20},
		map[int]int{1: 60, 2: 61},
		0.6,
	)

	require.Len(t, candidates, 1)
	assert.Equal(t, 1.0, candidates[0].Breakdown["date_similarity"])
}

func TestMatches_RejectsMisalignedTeamIDs(t *testing.T) {
	date := time.Date(2021, 3, 1, 15, 0, 0, 0, time.UTC)
	alpha := []domain.AlphaMatch{{
		MatchID: 1, CompetitionID: 100, SeasonID: 10,
		HomeTeamID: 1, AwayTeamID: 2, MatchDate: &date,
	}}
	betaHome, betaAway := 60, 99
	beta := []domain.BetaMatch{{
		ID: 500, CompetitionID: 200, SeasonID: 20,
		HomeTeamID: &betaHome, AwayTeamID: &betaAway, MatchDate: &date,
	}}

	candidates := Matches(
		alpha, beta,
		map[int]int{100: 200}, map[int]int{10: 20},
		map[int]int{1: 60, 2: 61},
		0.6,
	)

	assert.Empty(t, candidates)
}

func TestMatches_StrictFormIgnoresNameOnlyBetaRows(t *testing.T) {
	date := time.Date(2021, 3, 1, 15, 0, 0, 0, time.UTC)
	alpha := []domain.AlphaMatch{{
		MatchID: 1, CompetitionID: 100, SeasonID: 10,
		HomeTeamID: 1, AwayTeamID: 2, MatchDate: &date,
	}}
	beta := []domain.BetaMatch{{
		ID: 500, CompetitionID: 200, SeasonID: 20,
		HomeTeamName: "Home FC", AwayTeamName: "Away FC", MatchDate: &date,
	}}

	candidates := Matches(
		alpha, beta,
		map[int]int{100: 200}, map[int]int{10: 20},
		map[int]int{1: 60, 2: 61},
		0.6,
	)

	assert.Empty(t, candidates)
}

func TestTolerantMatches_ResolvesBetaTeamIDsByName(t *testing.T) {
	date := time.Date(2021, 3, 1, 15, 0, 0, 0, time.UTC)
	alpha := []domain.AlphaMatch{{
		MatchID: 1, CompetitionID: 100, SeasonID: 10,
		HomeTeamID: 1, AwayTeamID: 2, MatchDate: &date,
	}}
	beta := []domain.BetaMatch{{
		ID: 500, CompetitionID: 200, SeasonID: 20,
		HomeTeamName: "Home FC", AwayTeamName: "Away FC", MatchDate: &date,
	}}
	betaTeams := []domain.BetaTeam{
		{ID: 60, DisplayName: "Home FC"},
		{ID: 61, DisplayName: "Away FC"},
	}

	candidates := TolerantMatches(
		alpha, beta, betaTeams,
		map[int]int{100: 200}, map[int]int{10: 20},
		map[int]int{1: 60, 2: 61},
		0.6,
	)

	require.Len(t, candidates, 1)
	assert.Equal(t, 500, candidates[0].BetaID)
}
