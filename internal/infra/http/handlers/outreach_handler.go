package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/usecase"
)

type OutreachService interface {
	SendToLeadByID(ctx context.Context, id string, sender entity.SenderConfig) (usecase.SendResult, error)
	SendBulk(ctx context.Context, leads []entity.Lead, sender entity.SenderConfig) (usecase.BulkResult, error)
	SendFollowUps(ctx context.Context, sender entity.SenderConfig) (usecase.BulkResult, error)
}

type FollowUpLister interface {
	UnconvertedContacts(ctx context.Context) ([]usecase.UnconvertedContact, error)
}

type OutreachHandler struct {
	Outreach OutreachService
	Selector FollowUpLister
}

func NewOutreachHandler(outreach OutreachService, selector FollowUpLister) *OutreachHandler {
	return &OutreachHandler{Outreach: outreach, Selector: selector}
}

// SendEmail handles POST /contacts/{id}/send-email. Delivery failures are a
// 200 with success=false; only an unknown lead or a store failure is an error status.
func (h *OutreachHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendEmailInput
	if err := decodeOptional(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if err := usecase.ValidateSendEmailInput(input); err != nil {
		writeError(w, err)
		return
	}

	// A started send runs to completion even if the client goes away.
	ctx := context.WithoutCancel(r.Context())
	res, err := h.Outreach.SendToLeadByID(ctx, chi.URLParam(r, "id"), input.SenderConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OutreachHandler) SendBulk(w http.ResponseWriter, r *http.Request) {
	var input usecase.BulkSendInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if err := usecase.ValidateBulkSendInput(input); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Outreach.SendBulk(context.WithoutCancel(r.Context()), input.Leads, input.SenderConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *OutreachHandler) ListFollowUps(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Selector.UnconvertedContacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *OutreachHandler) SendFollowUps(w http.ResponseWriter, r *http.Request) {
	var input usecase.SendEmailInput
	if err := decodeOptional(r, &input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON")
		return
	}
	if err := usecase.ValidateSendEmailInput(input); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.Outreach.SendFollowUps(context.WithoutCancel(r.Context()), input.SenderConfig)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
