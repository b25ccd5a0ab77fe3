package api

import "github.com/adivinatobi/adivinatobi/shared/domain"

// Request DTOs

type CreateThreadRequest struct {
	Creator     string `json:"creator" validate:"required"`
	Question    string `json:"question" validate:"required"`
	Description string `json:"description,omitempty"`
}

type CloseThreadRequest struct {
	Requester string                `json:"requester" validate:"required"`
	Winners   []domain.PredictionId `json:"winners" validate:"dive,required"`
}

// RequesterRequest carries the acting name for void and delete calls.
type RequesterRequest struct {
	Requester string `json:"requester" validate:"required"`
}

type CreatePredictionRequest struct {
	Author string `json:"author" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

type EditPredictionRequest struct {
	Requester string `json:"requester" validate:"required"`
	Text      string `json:"text" validate:"required"`
}

type RegisterUserRequest struct {
	Name string `json:"name" validate:"required"`
}

// Response DTOs

type CreatedResponse struct {
	Id string `json:"id"`
}
