package handlers

import (
	"net/http"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

const recentLogLimit = 100

type EmailLogHandler struct {
	Repo entity.EmailLogRepositoryInterface
}

func NewEmailLogHandler(repo entity.EmailLogRepositoryInterface) *EmailLogHandler {
	return &EmailLogHandler{Repo: repo}
}

func (h *EmailLogHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Repo.ListRecent(r.Context(), recentLogLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (h *EmailLogHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, err := h.Repo.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"total": total})
}
