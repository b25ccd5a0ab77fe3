// Package scoring computes points and the leaderboard from a document snapshot.
// Everything here is a pure function of its input; nothing is cached or persisted.
package scoring

import (
	"sort"

	"github.com/adivinatobi/adivinatobi/shared/domain"
	"golang.org/x/text/cases"
)

// Standing is one leaderboard row.
type Standing struct {
	Position int             `json:"position"`
	Name     domain.UserName `json:"name"`
	Points   int             `json:"points"`
}

// PointsForWinner rewards committing to fewer guesses: 3 points for a single
// prediction on the thread, 2 for two, 1 for three or more.
func PointsForWinner(predictionsInThread int) int {
	switch {
	case predictionsInThread <= 1:
		return 3
	case predictionsInThread == 2:
		return 2
	default:
		return 1
	}
}

type threadAuthor struct {
	thread domain.ThreadId
	author domain.UserName
}

// index resolves predictions by id and counts them per (thread, author) in one pass.
type index struct {
	byId   map[domain.PredictionId]*domain.Prediction
	counts map[threadAuthor]int
}

func newIndex(doc *domain.Document) index {
	idx := index{
		byId:   make(map[domain.PredictionId]*domain.Prediction, len(doc.Predictions)),
		counts: make(map[threadAuthor]int),
	}
	for i := range doc.Predictions {
		p := &doc.Predictions[i]
		if _, dup := idx.byId[p.Id]; !dup {
			idx.byId[p.Id] = p
		}
		idx.counts[threadAuthor{p.ThreadId, p.Author}]++
	}
	return idx
}

// awards scores every winner of a closed thread. Stale ids and ids of
// predictions made on other threads are skipped.
func (idx index) awards(t *domain.Thread) []domain.Award {
	if t.IsOpen {
		return nil
	}
	var res []domain.Award
	for _, id := range t.WinningPredictionIds {
		p, ok := idx.byId[id]
		if !ok || p.ThreadId != t.Id {
			continue
		}
		n := idx.counts[threadAuthor{t.Id, p.Author}]
		res = append(res, domain.Award{Prediction: *p, Points: PointsForWinner(n)})
	}
	return res
}

// ThreadAwards returns the winners of a closed thread with the points each earned.
// Open threads and void closes yield no awards.
func ThreadAwards(doc *domain.Document, threadId domain.ThreadId) []domain.Award {
	t, ok := doc.Thread(threadId)
	if !ok {
		return nil
	}
	return newIndex(doc).awards(t)
}

// Leaderboard totals points per author over every closed thread, ranked by
// points descending and then by case-insensitive name.
func Leaderboard(doc *domain.Document) []Standing {
	idx := newIndex(doc)
	totals := make(map[domain.UserName]int)
	for i := range doc.Threads {
		for _, a := range idx.awards(&doc.Threads[i]) {
			totals[a.Prediction.Author] += a.Points
		}
	}

	res := make([]Standing, 0, len(totals))
	for name, points := range totals {
		res = append(res, Standing{Name: name, Points: points})
	}

	fold := cases.Fold()
	sort.Slice(res, func(i, j int) bool {
		if res[i].Points != res[j].Points {
			return res[i].Points > res[j].Points
		}
		fi, fj := fold.String(res[i].Name), fold.String(res[j].Name)
		if fi != fj {
			return fi < fj
		}
		return res[i].Name < res[j].Name
	})
	for i := range res {
		res[i].Position = i + 1
	}
	return res
}
