package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"skilltrack/internal/middleware"
	"skilltrack/internal/progression"
	"skilltrack/internal/service"
)

// upgradeDeniedResponse is the body of a 422 answer
type upgradeDeniedResponse struct {
	Error    string `json:"error"`
	Reason   string `json:"reason"`
	DaysLeft int    `json:"days_left,omitempty"`
}

// respondWithServiceError maps domain errors to HTTP status codes
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var denied *service.UpgradeDeniedError
	switch {
	case errors.As(err, &denied):
		respondWithJSON(w, http.StatusUnprocessableEntity, upgradeDeniedResponse{
			Error:    ErrMsgUpgradeDenied,
			Reason:   denied.Decision.Reason,
			DaysLeft: denied.Decision.DaysLeft,
		})

	case errors.Is(err, progression.ErrInvalidRatingLevel),
		errors.Is(err, progression.ErrInvalidStatus),
		errors.Is(err, progression.ErrCommentRequired),
		errors.Is(err, service.ErrRateSubskills):
		respondWithError(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, progression.ErrSelfApprovalForbidden),
		errors.Is(err, service.ErrForbidden):
		respondWithError(w, http.StatusForbidden, err.Error())

	case errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())

	case errors.Is(err, progression.ErrInvalidTransition),
		errors.Is(err, service.ErrNotApplicable):
		respondWithError(w, http.StatusConflict, err.Error())

	default:
		slog.Error("Request failed", "path", r.URL.Path, "error", err, "request_id", middleware.GetRequestID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, ErrMsgInternal)
	}
}
