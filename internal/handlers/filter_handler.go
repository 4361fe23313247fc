package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/utils"
)

type FilterHandler struct {
	Repo repository.ProductRepository
}

func NewFilterHandler(repo repository.ProductRepository) *FilterHandler {
	return &FilterHandler{Repo: repo}
}

// GetFilters returns the storefront filter facet: active categories with
// their sub-categories, distinct sizes and colors, and the catalog price
// range.
func (h *FilterHandler) GetFilters(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filters, err := h.Repo.CatalogFilters(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching filters"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Filters fetched successfully!", gin.H{"filters": filters}))
}
