package handler

import (
	"net/http"

	"github.com/adivinatobi/adivinatobi/shared/api"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/utils"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) CreatePrediction(w http.ResponseWriter, r *http.Request) {
	var body api.CreatePredictionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.prediction.Add(r.Context(), domain.PredictionCreationData{
		ThreadId: chi.URLParam(r, "thread"),
		Author:   body.Author,
		Text:     body.Text,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreatedResponse{Id: id})
}

func (h *Handler) EditPrediction(w http.ResponseWriter, r *http.Request) {
	var body api.EditPredictionRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.prediction.Edit(r.Context(), chi.URLParam(r, "prediction"), body.Text, body.Requester); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeletePrediction(w http.ResponseWriter, r *http.Request) {
	var body api.RequesterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.prediction.Delete(r.Context(), chi.URLParam(r, "prediction"), body.Requester); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
