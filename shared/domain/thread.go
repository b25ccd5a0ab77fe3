package domain

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Creator     UserName
	Question    string
	Description string
}

type Thread struct {
	Id                   ThreadId       `json:"id"`
	Question             string         `json:"question"`
	Description          string         `json:"description"`
	Creator              UserName       `json:"creator"`
	IsOpen               bool           `json:"is_open"`
	WinningPredictionIds []PredictionId `json:"winning_prediction_ids"`
	CreatedAt            Timestamp      `json:"created_at"`
}

// ThreadSummary is a thread as listed on the index, with its prediction count.
type ThreadSummary struct {
	Thread
	NumPredictions int `json:"num_predictions"`
}

// ThreadStatus filters thread listings.
type ThreadStatus string

const (
	ThreadStatusAll    ThreadStatus = ""
	ThreadStatusOpen   ThreadStatus = "open"
	ThreadStatusClosed ThreadStatus = "closed"
)

func (s ThreadStatus) Matches(t *Thread) bool {
	switch s {
	case ThreadStatusOpen:
		return t.IsOpen
	case ThreadStatusClosed:
		return !t.IsOpen
	default:
		return true
	}
}

// Award is one declared winner of a closed thread and the points it earned.
type Award struct {
	Prediction Prediction `json:"prediction"`
	Points     int        `json:"points"`
}

// ThreadView is a thread with everything needed to display it.
type ThreadView struct {
	Thread
	Predictions []Prediction `json:"predictions"`
	Awards      []Award      `json:"awards"`
}
