package domain

import "time"

// EntityType names one of the five resolvable entity kinds, used as a map
// key and as the `entity_type` column value across every run-scoped table.
type EntityType string

const (
	EntityTeam        EntityType = "team"
	EntityCompetition EntityType = "competition"
	EntitySeason      EntityType = "season"
	EntityPlayer      EntityType = "player"
	EntityMatch       EntityType = "match"
)

// IDPrefix returns the UES id prefix for an entity type (§3).
func (e EntityType) IDPrefix() string {
	switch e {
	case EntityTeam:
		return "UEST"
	case EntityCompetition:
		return "UESC"
	case EntitySeason:
		return "UESS"
	case EntityPlayer:
		return "UESP"
	case EntityMatch:
		return "UESM"
	default:
		return "UESX"
	}
}

// AllEntityTypes lists the entity types in pipeline stage order
// (§4.8: teams -> competitions -> seasons -> players -> matches).
var AllEntityTypes = []EntityType{EntityTeam, EntityCompetition, EntitySeason, EntityPlayer, EntityMatch}

// LineageSourceRef is one ALPHA or BETA pointer inside a Lineage record.
type LineageSourceRef struct {
	Source Source `json:"source"`
	ID     int    `json:"id"`
}

// Lineage is the per-entity provenance record persisted alongside every UES
// entity (§3): exactly one ALPHA and one BETA source ref, the merge
// confidence, and the per-signal breakdown that produced it.
type Lineage struct {
	Sources            []LineageSourceRef `json:"sources"`
	Confidence         float64            `json:"confidence"`
	ConfidenceBreakdown map[string]float64 `json:"confidence_breakdown"`
	EntityType         EntityType         `json:"entity_type"`
}

// UESTeam is the canonical Team entity.
type UESTeam struct {
	UESTeamID       string
	Name            string
	Country         *string
	MergeConfidence float64
	Lineage         Lineage
}

// UESCompetition is the canonical Competition entity.
type UESCompetition struct {
	UESCompetitionID string
	Name             string
	Country          *string
	MergeConfidence  float64
	Lineage          Lineage
}

// UESSeason is the canonical Season entity.
type UESSeason struct {
	UESSeasonID       string
	StartYear         *int
	EndYear           *int
	CompetitionUESID  string
	MergeConfidence   float64
	Lineage           Lineage
}

// UESPlayer is the canonical Player entity.
type UESPlayer struct {
	UESPlayerID     string
	CanonicalName   string
	DOB             *time.Time
	BirthYear       *int
	Nationality     *string
	HeightCM        *int
	Foot            *string
	TeamUESID       *string
	MergeConfidence float64
	Lineage         Lineage
}

// UESMatch is the canonical Match entity.
type UESMatch struct {
	UESMatchID        string
	HomeTeamUESID     string
	AwayTeamUESID     string
	SeasonUESID       string
	CompetitionUESID  string
	MatchDate         *time.Time
	MergeConfidence   float64
	Lineage           Lineage
}

// SourceLineageRow is one row of the flat source_lineage table: one row per
// (source_system, source_id, ues_entity_type, ues_entity_id) tuple (§3).
type SourceLineageRow struct {
	SourceSystem  Source
	SourceID      int
	UESEntityType EntityType
	UESEntityID   string
}
