package merge

import (
	"testing"
	"time"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCountryTable map[string]string

func (t staticCountryTable) NormalizeCountryLookup(input string) string {
	if canonical, ok := t[input]; ok {
		return canonical
	}
	return input
}

func TestTeams_ProducesLineageAndIDMaps(t *testing.T) {
	country := "England"
	approved := []domain.Candidate{
		{EntityType: domain.EntityTeam, AlphaID: 1, BetaID: 10, Confidence: 0.9, Name: "Manchester United", Country: &country, Breakdown: map[string]float64{"name_similarity": 0.9}},
	}

	entities, alphaToUES, betaToUES := Teams(approved)

	require.Len(t, entities, 1)
	e := entities[0]
	assert.Equal(t, "Manchester United", e.Name)
	require.Len(t, e.Lineage.Sources, 2)
	assert.Equal(t, alphaToUES[1], e.UESTeamID)
	assert.Equal(t, betaToUES[10], e.UESTeamID)
}

func TestSeasons_FallsBackToBetaCompetitionMap(t *testing.T) {
	startYear := 2020
	endYear := 2021
	approved := []domain.Candidate{
		{EntityType: domain.EntitySeason, AlphaID: 1, BetaID: 10, Confidence: 1.0, StartYear: &startYear, EndYear: &endYear, CompetitionID: 100, BetaCompetitionID: 200},
	}

	alphaCompetitionUES := map[int]string{}
	betaCompetitionUES := map[int]string{200: "UESC-deadbeef"}

	entities, _, _ := Seasons(approved, alphaCompetitionUES, betaCompetitionUES)

	require.Len(t, entities, 1)
	assert.Equal(t, "UESC-deadbeef", entities[0].CompetitionUESID)
}

func TestPlayers_PrefersAlphaHeightAndNormalizesNationality(t *testing.T) {
	alphaHeight := 180
	nationality := "england"
	approved := []domain.Candidate{
		{EntityType: domain.EntityPlayer, AlphaID: 1, BetaID: 10, Confidence: 0.9, CanonicalName: "John Doe", HeightCM: &alphaHeight, Nationality: &nationality, AlphaTeamID: 5},
	}
	alphaTeamUES := map[int]string{5: "UEST-abcd1234"}
	table := staticCountryTable{"england": "England"}

	entities, _, _ := Players(approved, alphaTeamUES, table)

	require.Len(t, entities, 1)
	e := entities[0]
	assert.Equal(t, 180, *e.HeightCM)
	assert.Equal(t, "England", *e.Nationality)
	assert.Equal(t, "UEST-abcd1234", *e.TeamUESID)
}

func TestMatches_SkipsWhenAnyRelationUnresolved(t *testing.T) {
	date := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	approved := []domain.Candidate{
		{EntityType: domain.EntityMatch, AlphaID: 1, BetaID: 10, Confidence: 0.9, AlphaHomeTeamID: 1, AlphaAwayTeamID: 2, AlphaSeasonID: 3, CompetitionID: 4, MatchDate: &date},
	}

	entities, _, _ := Matches(approved, map[int]string{1: "UEST-1", 2: "UEST-2"}, map[int]string{}, map[int]string{4: "UESC-4"})

	assert.Empty(t, entities)
}

func TestMatches_ResolvesAllFourRelations(t *testing.T) {
	date := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	approved := []domain.Candidate{
		{EntityType: domain.EntityMatch, AlphaID: 1, BetaID: 10, Confidence: 0.9, AlphaHomeTeamID: 1, AlphaAwayTeamID: 2, AlphaSeasonID: 3, CompetitionID: 4, MatchDate: &date},
	}

	entities, alphaToUES, _ := Matches(
		approved,
		map[int]string{1: "UEST-1", 2: "UEST-2"},
		map[int]string{3: "UESS-3"},
		map[int]string{4: "UESC-4"},
	)

	require.Len(t, entities, 1)
	e := entities[0]
	assert.Equal(t, "UEST-1", e.HomeTeamUESID)
	assert.Equal(t, "UEST-2", e.AwayTeamUESID)
	assert.Equal(t, "UESS-3", e.SeasonUESID)
	assert.Equal(t, "UESC-4", e.CompetitionUESID)
	assert.Equal(t, alphaToUES[1], e.UESMatchID)
}
