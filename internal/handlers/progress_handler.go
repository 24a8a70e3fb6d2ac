package handlers

import (
	"net/http"

	"skilltrack/internal/middleware"
)

// ProgressHandler serves category progress
type ProgressHandler struct {
	progress ProgressService
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(progress ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// AllProgress returns the caller's progress in every category
// @Summary Get progress for all categories
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Success 200 {array} progression.Progress
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /progress [get]
func (h *ProgressHandler) AllProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	progress, err := h.progress.AllProgress(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}

// CategoryProgress returns the caller's progress in one category
// @Summary Get category progress
// @Tags Progress
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category ID"
// @Success 200 {object} progression.Progress
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /progress/{categoryId} [get]
func (h *ProgressHandler) CategoryProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress, err := h.progress.CategoryProgress(r.Context(), userID, categoryID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, progress)
}
