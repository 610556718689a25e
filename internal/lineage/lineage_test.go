package lineage

import (
	"testing"

	"github.com/greenbier/ues-resolver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ExactlyOneAlphaOneBeta(t *testing.T) {
	l := Build(domain.EntityTeam, 10, 20, 0.9, map[string]float64{"name": 0.9})

	require.Len(t, l.Sources, 2)
	assert.Equal(t, domain.SourceAlpha, l.Sources[0].Source)
	assert.Equal(t, 10, l.Sources[0].ID)
	assert.Equal(t, domain.SourceBeta, l.Sources[1].Source)
	assert.Equal(t, 20, l.Sources[1].ID)
	assert.Equal(t, 0.9, l.Confidence)
}

func TestSourceLineageRows_Surjective(t *testing.T) {
	l := Build(domain.EntityTeam, 10, 20, 0.9, nil)
	rows := SourceLineageRows(l, "UEST-abc12345")

	require.Len(t, rows, 2)
	assert.Equal(t, domain.SourceAlpha, rows[0].SourceSystem)
	assert.Equal(t, domain.SourceBeta, rows[1].SourceSystem)
	for _, r := range rows {
		assert.Equal(t, "UEST-abc12345", r.UESEntityID)
		assert.Equal(t, domain.EntityTeam, r.UESEntityType)
	}
}
