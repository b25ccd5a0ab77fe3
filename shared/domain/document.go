package domain

import "slices"

// Document is the whole persisted game state. Stores load and save it as a unit.
type Document struct {
	Threads     []Thread     `json:"threads"`
	Predictions []Prediction `json:"predictions"`
	Users       []UserName   `json:"users"`
}

// NewDocument returns an empty document seeded with the given user names.
func NewDocument(defaultUsers []UserName) Document {
	users := make([]UserName, 0, len(defaultUsers))
	for _, u := range defaultUsers {
		if u != "" && !slices.Contains(users, u) {
			users = append(users, u)
		}
	}
	return Document{
		Threads:     []Thread{},
		Predictions: []Prediction{},
		Users:       users,
	}
}

// Thread returns a pointer into the document, so callers can mutate it in place.
func (d *Document) Thread(id ThreadId) (*Thread, bool) {
	for i := range d.Threads {
		if d.Threads[i].Id == id {
			return &d.Threads[i], true
		}
	}
	return nil, false
}

func (d *Document) Prediction(id PredictionId) (*Prediction, bool) {
	for i := range d.Predictions {
		if d.Predictions[i].Id == id {
			return &d.Predictions[i], true
		}
	}
	return nil, false
}

// ThreadPredictions returns copies of the predictions made on a thread, in insertion order.
func (d *Document) ThreadPredictions(threadId ThreadId) []Prediction {
	var res []Prediction
	for _, p := range d.Predictions {
		if p.ThreadId == threadId {
			res = append(res, p)
		}
	}
	return res
}

// CountUserPredictions counts how many predictions author submitted on a thread.
func (d *Document) CountUserPredictions(threadId ThreadId, author UserName) int {
	n := 0
	for _, p := range d.Predictions {
		if p.ThreadId == threadId && p.Author == author {
			n++
		}
	}
	return n
}

func (d *Document) PrependThread(t Thread) {
	d.Threads = append([]Thread{t}, d.Threads...)
}

func (d *Document) AddPrediction(p Prediction) {
	d.Predictions = append(d.Predictions, p)
}

// RemovePrediction reports whether a prediction was removed.
func (d *Document) RemovePrediction(id PredictionId) bool {
	before := len(d.Predictions)
	d.Predictions = slices.DeleteFunc(d.Predictions, func(p Prediction) bool { return p.Id == id })
	return len(d.Predictions) != before
}

// RemoveThread deletes a thread together with every prediction that references it.
// Returns the number of predictions removed and whether the thread existed.
func (d *Document) RemoveThread(id ThreadId) (int, bool) {
	before := len(d.Threads)
	d.Threads = slices.DeleteFunc(d.Threads, func(t Thread) bool { return t.Id == id })
	if len(d.Threads) == before {
		return 0, false
	}
	predsBefore := len(d.Predictions)
	d.Predictions = slices.DeleteFunc(d.Predictions, func(p Prediction) bool { return p.ThreadId == id })
	return predsBefore - len(d.Predictions), true
}

func (d *Document) HasUser(name UserName) bool {
	return slices.Contains(d.Users, name)
}

// AddUser reports whether the name was new.
func (d *Document) AddUser(name UserName) bool {
	if d.HasUser(name) {
		return false
	}
	d.Users = append(d.Users, name)
	return true
}

func (d *Document) RemoveUser(name UserName) bool {
	before := len(d.Users)
	d.Users = slices.DeleteFunc(d.Users, func(u UserName) bool { return u == name })
	return len(d.Users) != before
}
