package uesid

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var idFormat = regexp.MustCompile(`^UEST-[0-9a-f]{8}$`)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate("UEST", 1, 2)
	b := Generate("UEST", 1, 2)
	assert.Equal(t, a, b)
}

func TestGenerate_DiffersByInput(t *testing.T) {
	a := Generate("UEST", 1, 2)
	b := Generate("UEST", 1, 3)
	c := Generate("UESC", 1, 2)
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestGenerate_FormatMatchesSpec(t *testing.T) {
	id := Generate("UEST", 42, 99)
	assert.Regexp(t, idFormat, id)
}
