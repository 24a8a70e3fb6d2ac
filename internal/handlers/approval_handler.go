package handlers

import (
	"net/http"

	"skilltrack/internal/middleware"
	"skilltrack/pkg/validator"
)

// ApprovalHandler handles the reviewer side of the workflow
type ApprovalHandler struct {
	approvals ApprovalService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvals ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals}
}

// ApproveRequest carries an optional reviewer comment
type ApproveRequest struct {
	Comment *string `json:"comment,omitempty" validate:"max=2000"`
}

// RejectRequest requires a reviewer comment
type RejectRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

// ListPending returns submitted ratings awaiting review
// @Summary List pending approvals
// @Description Submitted ratings of all users. Tech leads do not see their own.
// @Tags Approvals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmployeeRatingWithDetails
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Reviewer role required"
// @Router /approvals/pending [get]
func (h *ApprovalHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	pending, err := h.approvals.PendingApprovals(r.Context(), user)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, pending)
}

// Approve approves a submitted rating
// @Summary Approve a rating
// @Tags Approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param request body ApproveRequest false "Optional comment"
// @Success 200 {object} models.EmployeeRating
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Not allowed to review this rating"
// @Failure 404 {object} map[string]string "Rating not found"
// @Failure 409 {object} map[string]string "Rating is not submitted"
// @Router /approvals/{id}/approve [post]
func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req ApproveRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	rating, err := h.approvals.Approve(r.Context(), id, user.ID, validator.SanitizeOptional(req.Comment))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}

// Reject rejects a submitted rating with a comment
// @Summary Reject a rating
// @Tags Approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Param request body RejectRequest true "Rejection comment"
// @Success 200 {object} models.EmployeeRating
// @Failure 400 {object} map[string]string "Comment required"
// @Failure 403 {object} map[string]string "Not allowed to review this rating"
// @Failure 404 {object} map[string]string "Rating not found"
// @Failure 409 {object} map[string]string "Rating is not submitted"
// @Router /approvals/{id}/reject [post]
func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req RejectRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	rating, err := h.approvals.Reject(r.Context(), id, user.ID, validator.SanitizeString(req.Comment))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}
