package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio_EmptyOperandYieldsZero(t *testing.T) {
	assert.Equal(t, 0.0, Ratio("", "manchester united"))
	assert.Equal(t, 0.0, Ratio("manchester united", ""))
	assert.Equal(t, 0.0, Ratio("", ""))
}

func TestRatio_IdenticalStringsYieldOne(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("liverpool", "liverpool"))
}

func TestRatio_InRange(t *testing.T) {
	r := Ratio("liverpool", "liverpol")
	assert.GreaterOrEqual(t, r, 0.0)
	assert.LessOrEqual(t, r, 1.0)
	assert.Greater(t, r, 0.8)
}

func TestTokenSortRatio_IgnoresWordOrder(t *testing.T) {
	a := "real madrid club"
	b := "club real madrid"
	assert.Equal(t, 1.0, TokenSortRatio(a, b))
}

func TestTokenSortRatio_EmptyYieldsZero(t *testing.T) {
	assert.Equal(t, 0.0, TokenSortRatio("", "arsenal"))
}

func TestTokenSortRatio_PartialMatch(t *testing.T) {
	r := TokenSortRatio("manchester city football club", "city manchester fc")
	assert.Greater(t, r, 0.5)
}
