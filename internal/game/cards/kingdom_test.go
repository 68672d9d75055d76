package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetKingdomsAreValid(t *testing.T) {
	for _, k := range Kingdoms() {
		t.Run(k.Name, func(t *testing.T) {
			_, err := NewKingdom(k.Name, k.Cards)
			assert.NoError(t, err)
		})
	}
}

func TestParseKingdom(t *testing.T) {
	k, err := ParseKingdom("firstgame")
	require.NoError(t, err)
	assert.Equal(t, FirstGame.Cards, k.Cards)

	_, err = ParseKingdom("Prosperity")
	assert.Error(t, err)
}

func TestNewKingdomValidation(t *testing.T) {
	_, err := NewKingdom("short", []Kind{Smithy})
	assert.Error(t, err)

	withBase := append([]Kind{Copper}, FirstGame.Cards[1:]...)
	_, err = NewKingdom("base", withBase)
	assert.Error(t, err)

	dup := append([]Kind{Market}, FirstGame.Cards[1:]...)
	_, err = NewKingdom("dup", dup)
	assert.Error(t, err)
}

func TestIsBase(t *testing.T) {
	for _, k := range BaseCards {
		assert.True(t, IsBase(k), k.String())
	}
	assert.False(t, IsBase(Cellar))
	assert.False(t, IsBase(KindUnknown))
}
