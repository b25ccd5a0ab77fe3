package scoring

import (
	"testing"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointsForWinner(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-1, 3},
		{0, 3},
		{1, 3},
		{2, 2},
		{3, 1},
		{4, 1},
		{100, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PointsForWinner(tt.count), "count %d", tt.count)
	}
}

// scenarioDocument: Ana opens T, Ben guesses twice, Cara once, Ana picks P1 and P3.
func scenarioDocument() domain.Document {
	doc := domain.NewDocument(nil)
	doc.PrependThread(domain.Thread{Id: "T", Question: "will it rain?", Creator: "Ana",
		IsOpen: false, WinningPredictionIds: []domain.PredictionId{"P1", "P3"}})
	doc.AddPrediction(domain.Prediction{Id: "P1", ThreadId: "T", Author: "Ben", Text: "yes"})
	doc.AddPrediction(domain.Prediction{Id: "P2", ThreadId: "T", Author: "Ben", Text: "no"})
	doc.AddPrediction(domain.Prediction{Id: "P3", ThreadId: "T", Author: "Cara", Text: "yes, at noon"})
	return doc
}

func TestLeaderboardScenario(t *testing.T) {
	doc := scenarioDocument()

	got := Leaderboard(&doc)

	assert.Equal(t, []Standing{
		{Position: 1, Name: "Cara", Points: 3},
		{Position: 2, Name: "Ben", Points: 2},
	}, got)
}

func TestLeaderboardIsPure(t *testing.T) {
	doc := scenarioDocument()

	first := Leaderboard(&doc)
	second := Leaderboard(&doc)

	assert.Equal(t, first, second)
	assert.Equal(t, scenarioDocument(), doc, "document must not be mutated")
}

func TestLeaderboardVoidClose(t *testing.T) {
	doc := scenarioDocument()
	doc.Threads[0].WinningPredictionIds = []domain.PredictionId{}

	assert.Empty(t, Leaderboard(&doc))
	assert.Empty(t, ThreadAwards(&doc, "T"))
}

func TestLeaderboardSkipsStaleWinner(t *testing.T) {
	doc := scenarioDocument()
	require.True(t, doc.RemovePrediction("P1"))

	var got []Standing
	assert.NotPanics(t, func() { got = Leaderboard(&doc) })
	assert.Equal(t, []Standing{{Position: 1, Name: "Cara", Points: 3}}, got)
}

func TestLeaderboardSkipsForeignWinner(t *testing.T) {
	doc := domain.NewDocument(nil)
	doc.PrependThread(domain.Thread{Id: "X", Question: "who scores first?", Creator: "Ana", IsOpen: true,
		WinningPredictionIds: []domain.PredictionId{}})
	doc.PrependThread(domain.Thread{Id: "T", Question: "will it rain?", Creator: "Ana", IsOpen: false,
		WinningPredictionIds: []domain.PredictionId{"px"}})
	doc.AddPrediction(domain.Prediction{Id: "px", ThreadId: "X", Author: "Dan", Text: "the keeper"})

	assert.Empty(t, Leaderboard(&doc))
	assert.Empty(t, ThreadAwards(&doc, "T"))
}

func TestLeaderboardIgnoresOpenThreads(t *testing.T) {
	doc := scenarioDocument()
	doc.Threads[0].IsOpen = true

	assert.Empty(t, Leaderboard(&doc))
}

func TestLeaderboardAccumulatesAcrossThreads(t *testing.T) {
	doc := domain.NewDocument(nil)
	doc.PrependThread(domain.Thread{Id: "A", Creator: "Ana", WinningPredictionIds: []domain.PredictionId{"a1", "a2"}})
	doc.PrependThread(domain.Thread{Id: "B", Creator: "Ana", WinningPredictionIds: []domain.PredictionId{"b1"}})
	// Ben wins two slots in A with three guesses there: 1 + 1
	doc.AddPrediction(domain.Prediction{Id: "a1", ThreadId: "A", Author: "Ben"})
	doc.AddPrediction(domain.Prediction{Id: "a2", ThreadId: "A", Author: "Ben"})
	doc.AddPrediction(domain.Prediction{Id: "a3", ThreadId: "A", Author: "Ben"})
	// and B with a single guess: 3
	doc.AddPrediction(domain.Prediction{Id: "b1", ThreadId: "B", Author: "Ben"})

	assert.Equal(t, []Standing{{Position: 1, Name: "Ben", Points: 5}}, Leaderboard(&doc))
}

func TestLeaderboardTieBreakIsCaseInsensitive(t *testing.T) {
	doc := domain.NewDocument(nil)
	doc.PrependThread(domain.Thread{Id: "T", Creator: "Ana", WinningPredictionIds: []domain.PredictionId{"1", "2", "3"}})
	doc.AddPrediction(domain.Prediction{Id: "1", ThreadId: "T", Author: "bruno"})
	doc.AddPrediction(domain.Prediction{Id: "2", ThreadId: "T", Author: "Carla"})
	doc.AddPrediction(domain.Prediction{Id: "3", ThreadId: "T", Author: "Alba"})

	got := Leaderboard(&doc)

	require.Len(t, got, 3)
	assert.Equal(t, "Alba", got[0].Name)
	assert.Equal(t, "bruno", got[1].Name)
	assert.Equal(t, "Carla", got[2].Name)
	for _, s := range got {
		assert.Equal(t, 3, s.Points)
	}
}

func TestThreadAwards(t *testing.T) {
	doc := scenarioDocument()

	awards := ThreadAwards(&doc, "T")

	require.Len(t, awards, 2)
	assert.Equal(t, "Ben", awards[0].Prediction.Author)
	assert.Equal(t, 2, awards[0].Points)
	assert.Equal(t, "Cara", awards[1].Prediction.Author)
	assert.Equal(t, 3, awards[1].Points)

	assert.Nil(t, ThreadAwards(&doc, "missing"))
}
