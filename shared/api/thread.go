package api

import (
	"github.com/adivinatobi/adivinatobi/shared/domain"
)

// PredictionResponse adds the rendered text to a prediction.
type PredictionResponse struct {
	domain.Prediction
	TextHTML string `json:"text_html"`
}

// ThreadResponse is a thread page: the thread, its predictions newest first
// and, once closed, the winners with their points.
type ThreadResponse struct {
	domain.Thread
	DescriptionHTML string               `json:"description_html"`
	Predictions     []PredictionResponse `json:"predictions"`
	Awards          []domain.Award       `json:"awards"`
}
