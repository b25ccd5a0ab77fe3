package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/adivinatobi/adivinatobi/shared/api"
	"github.com/adivinatobi/adivinatobi/shared/domain"
	"github.com/adivinatobi/adivinatobi/shared/errors"
	"github.com/adivinatobi/adivinatobi/shared/utils"
	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	status := domain.ThreadStatus(r.URL.Query().Get("status"))
	switch status {
	case domain.ThreadStatusAll, domain.ThreadStatusOpen, domain.ThreadStatusClosed:
	default:
		utils.WriteErrorAndStatusCode(w, &errors.ValidationError{Message: "status must be open or closed"})
		return
	}

	threads, err := h.thread.List(r.Context(), status)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, threads)
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var body api.CreateThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	id, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Creator:     body.Creator,
		Question:    body.Question,
		Description: body.Description,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, api.CreatedResponse{Id: id})
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	view, err := h.thread.Get(r.Context(), chi.URLParam(r, "thread"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	predictions := make([]api.PredictionResponse, 0, len(view.Predictions))
	for _, p := range view.Predictions {
		predictions = append(predictions, api.PredictionResponse{Prediction: p, TextHTML: h.renderer.Render(p.Text)})
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadResponse{
		Thread:          view.Thread,
		DescriptionHTML: h.renderer.Render(view.Description),
		Predictions:     predictions,
		Awards:          view.Awards,
	})
}

func (h *Handler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	var body api.RequesterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.Delete(r.Context(), chi.URLParam(r, "thread"), body.Requester); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) CloseThread(w http.ResponseWriter, r *http.Request) {
	var body api.CloseThreadRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.CloseWithWinners(r.Context(), chi.URLParam(r, "thread"), body.Winners, body.Requester); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) VoidThread(w http.ResponseWriter, r *http.Request) {
	var body api.RequesterRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	if err := h.thread.CloseAsVoid(r.Context(), chi.URLParam(r, "thread"), body.Requester); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ThreadQR serves a PNG QR code pointing at the thread's share link.
func (h *Handler) ThreadQR(w http.ResponseWriter, r *http.Request) {
	view, err := h.thread.Get(r.Context(), chi.URLParam(r, "thread"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	png, err := qrcode.Encode(h.shareLink(view.Id), qrcode.Medium, qrSize)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, fmt.Errorf("failed to encode qr code: %w", err))
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func (h *Handler) shareLink(id domain.ThreadId) string {
	return strings.TrimRight(h.cfg.Public.Http.BaseURL, "/") + "/threads/" + id
}
