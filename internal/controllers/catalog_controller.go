package controllers

import (
	"net/http"

	"github.com/PatchLore/living-cards/internal/catalog"
	"github.com/PatchLore/living-cards/internal/utils"
)

type CatalogController struct{}

func NewCatalogController() *CatalogController {
	return &CatalogController{}
}

// ListCatalogHandler -> GET /api/v1/catalog
func (c *CatalogController) ListCatalogHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, catalog.All())
}
