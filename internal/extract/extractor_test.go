package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelrag/internal/domain"
	"travelrag/internal/ner"
)

type failingRecognizer struct{}

func (failingRecognizer) Recognize(context.Context, string) ([]domain.Entity, error) {
	return nil, errors.New("recognizer unavailable")
}

func TestExtractFromToPattern(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "Travel from Rome to Madrid")

	require.NotNil(t, intent.Origin)
	require.NotNil(t, intent.Destination)
	assert.Equal(t, "Rome", *intent.Origin)
	assert.Equal(t, "Madrid", *intent.Destination)
}

func TestExtractCuisineAndDestination(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "Find Italian food in Florence")

	require.NotNil(t, intent.Cuisine)
	assert.Equal(t, "Italian", *intent.Cuisine)
	require.NotNil(t, intent.Destination)
	assert.Equal(t, "Florence", *intent.Destination)
	assert.Contains(t, intent.Activities, "food")
}

func TestExtractBudgetDigits(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "Plan a trip to Lisbon with a budget of $500")

	require.NotNil(t, intent.Budget)
	assert.Equal(t, 500, *intent.Budget)
}

func TestExtractBudgetNumberWords(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "I want to spend around five hundred dollars")

	require.NotNil(t, intent.Budget)
	assert.Equal(t, 500, *intent.Budget)
}

func TestExtractDurationWordForm(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "Suggest a two-day itinerary in Kyoto")

	require.NotNil(t, intent.Duration)
	assert.Equal(t, 2, *intent.Duration)
}

func TestExtractFullQuery(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	query := "Plan a trip from New York to Paris for five days with a budget of 2000 dollars and Italian food"
	intent := e.Extract(context.Background(), query)

	require.NotNil(t, intent.Origin)
	assert.Equal(t, "New York", *intent.Origin)
	require.NotNil(t, intent.Destination)
	assert.Equal(t, "Paris", *intent.Destination)
	require.NotNil(t, intent.Duration)
	assert.Equal(t, 5, *intent.Duration)
	require.NotNil(t, intent.Budget)
	assert.Equal(t, 2000, *intent.Budget)
	require.NotNil(t, intent.Cuisine)
	assert.Equal(t, "Italian", *intent.Cuisine)
}

func TestExtractActivities(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "beaches, museums and hiking in Bali")

	assert.Equal(t, []string{"beach", "museum", "hike"}, intent.Activities)
}

func TestExtractRecognizerFailureIsNotFatal(t *testing.T) {
	e := New(failingRecognizer{}, nil)
	intent := e.Extract(context.Background(), "Travel from Rome to Madrid")

	require.NotNil(t, intent.Origin)
	assert.Equal(t, "Rome", *intent.Origin)
	require.NotNil(t, intent.Destination)
	assert.Equal(t, "Madrid", *intent.Destination)
	assert.Nil(t, intent.Budget)
}

func TestExtractEmptyQuery(t *testing.T) {
	e := New(ner.NewHeuristic(), nil)
	intent := e.Extract(context.Background(), "")

	assert.Nil(t, intent.Origin)
	assert.Nil(t, intent.Destination)
	assert.Nil(t, intent.Cuisine)
	assert.Nil(t, intent.Budget)
	assert.Nil(t, intent.Duration)
	assert.Empty(t, intent.Activities)
}
