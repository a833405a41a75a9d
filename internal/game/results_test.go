package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateFloorsPercentage(t *testing.T) {
	results := []*Result{{0, true}, {1, false}, {0, true}}

	got, err := Aggregate(results, 3)
	require.NoError(t, err)
	assert.Equal(t, Summary{
		NumCorrect: 2,
		Total:      3,
		Percentage: 66,
		Message:    "You got 2 out of 3 quotes correct!",
	}, got)
}

func TestAggregateAllWrong(t *testing.T) {
	got, err := Aggregate([]*Result{{0, false}, {1, false}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, got.NumCorrect)
	assert.Equal(t, 0, got.Percentage)
}

func TestAggregateRejectsEmptySlots(t *testing.T) {
	_, err := Aggregate([]*Result{{0, true}, nil, {1, true}}, 3)
	assert.ErrorIs(t, err, ErrIncompleteResults)

	_, err = Aggregate([]*Result{{0, true}}, 3)
	assert.ErrorIs(t, err, ErrIncompleteResults)

	_, err = Aggregate(nil, 0)
	assert.Error(t, err)
}
