package handlers

import (
	"net/http"

	"skilltrack/internal/middleware"
)

// AdminHandler handles administrative rating changes
type AdminHandler struct {
	ratings RatingService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(ratings RatingService) *AdminHandler {
	return &AdminHandler{ratings: ratings}
}

// NotApplicableRequest toggles the not-applicable flag of a skill
type NotApplicableRequest struct {
	NAStatus *bool `json:"na_status" validate:"required"`
}

// SetNotApplicable marks a skill as not applicable for a user, or clears the mark
// @Summary Set skill not applicable
// @Description Excluded skills do not count towards the user's progress and cannot be rated.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param skillId path int true "Skill ID"
// @Param request body NotApplicableRequest true "Flag"
// @Success 200 {object} models.EmployeeRating
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "User or skill not found"
// @Router /admin/users/{userId}/skills/{skillId}/na [put]
func (h *AdminHandler) SetNotApplicable(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	userID, err := pathID(r, "userId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	skillID, err := pathID(r, "skillId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req NotApplicableRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	rating, err := h.ratings.SetNotApplicable(r.Context(), actor, userID, skillID, *req.NAStatus)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}
