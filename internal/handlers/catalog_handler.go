package handlers

import (
	"net/http"
)

// CatalogHandler serves the read-only skill catalog
type CatalogHandler struct {
	catalog CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories lists all skill categories
// @Summary List skill categories
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.SkillCategory
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, categories)
}

// CategorySkills lists the skills of a category with their subskills
// @Summary List skills of a category
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param categoryId path int true "Category ID"
// @Success 200 {array} models.SkillWithSubskills
// @Failure 400 {object} map[string]string "Invalid category ID"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{categoryId}/skills [get]
func (h *CatalogHandler) CategorySkills(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "categoryId")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	skills, err := h.catalog.CategorySkills(r.Context(), categoryID)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, skills)
}
