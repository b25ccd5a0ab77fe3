package domain

type PredictionCreationData struct {
	ThreadId ThreadId
	Author   UserName
	Text     string
}

type Prediction struct {
	Id           PredictionId `json:"id"`
	ThreadId     ThreadId     `json:"thread_id"`
	Author       UserName     `json:"author"`
	Text         string       `json:"text"`
	CreatedAt    Timestamp    `json:"created_at"`
	LastEditedAt *Timestamp   `json:"last_edited_at"`
}
