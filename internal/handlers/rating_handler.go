package handlers

import (
	"net/http"

	"skilltrack/internal/middleware"
	"skilltrack/internal/progression"
	"skilltrack/internal/service"
	"skilltrack/pkg/validator"
)

// RatingHandler handles an employee's own ratings
type RatingHandler struct {
	ratings RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratings RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// RateRequest is the body of a rate call
type RateRequest struct {
	SkillID     uint               `json:"skill_id" validate:"required"`
	SubskillID  *uint              `json:"subskill_id,omitempty"`
	Rating      progression.Level  `json:"rating" validate:"required"`
	Status      progression.Status `json:"status,omitempty"`
	SelfComment *string            `json:"self_comment,omitempty" validate:"max=2000"`
}

// ListMyRatings returns the caller's ratings
// @Summary List my ratings
// @Description Get the current user's ratings, optionally for one category
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param category_id query int false "Category ID"
// @Success 200 {array} models.EmployeeRating
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /ratings [get]
func (h *RatingHandler) ListMyRatings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	categoryID, err := queryID(r, "category_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratings, err := h.ratings.ListMine(r.Context(), user.ID, categoryID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, ratings)
}

// Rate creates or updates the caller's rating of an item
// @Summary Rate a skill or subskill
// @Description Save a draft or submit a rating. Upgrades are subject to the cool-down.
// @Tags Ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RateRequest true "Rating"
// @Success 200 {object} models.EmployeeRating
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Rating changed concurrently or skill not applicable"
// @Failure 422 {object} upgradeDeniedResponse "Upgrade not allowed"
// @Router /ratings [put]
func (h *RatingHandler) Rate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	var req RateRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		respondWithDecodeError(w, err)
		return
	}

	rating, err := h.ratings.RateItem(r.Context(), user, service.RateInput{
		SkillID:     req.SkillID,
		SubskillID:  req.SubskillID,
		Rating:      req.Rating,
		Status:      req.Status,
		SelfComment: validator.SanitizeOptional(req.SelfComment),
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}

// Submit sends a draft or rejected rating to the reviewers
// @Summary Submit a rating
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {object} models.EmployeeRating
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rating not found"
// @Failure 409 {object} map[string]string "Rating cannot be submitted"
// @Router /ratings/{id}/submit [post]
func (h *RatingHandler) Submit(w http.ResponseWriter, r *http.Request) {
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

	rating, err := h.ratings.Submit(r.Context(), user, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, rating)
}

// Options lists the levels the caller may pick for an item
// @Summary Get rating options
// @Description Levels selectable for a skill or subskill, with the reason for each disabled one
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param skill_id query int true "Skill ID"
// @Param subskill_id query int false "Subskill ID"
// @Success 200 {object} service.RatingOptions
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /ratings/options [get]
func (h *RatingHandler) Options(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	skillID, err := queryID(r, "skill_id")
	if err != nil || skillID == 0 {
		respondWithError(w, http.StatusBadRequest, "invalid skill_id")
		return
	}
	subskillID, err := queryID(r, "subskill_id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	var sub *uint
	if subskillID != 0 {
		sub = &subskillID
	}

	opts, err := h.ratings.Options(r.Context(), user.ID, skillID, sub)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, opts)
}

// History lists the approved snapshots of a rating
// @Summary Get rating history
// @Tags Ratings
// @Produce json
// @Security BearerAuth
// @Param id path int true "Rating ID"
// @Success 200 {array} models.SkillRatingHistory
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Rating not found"
// @Router /ratings/{id}/history [get]
func (h *RatingHandler) History(w http.ResponseWriter, r *http.Request) {
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

	history, err := h.ratings.History(r.Context(), user, id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, history)
}
