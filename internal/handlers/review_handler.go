package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/models"
	"github.com/clothique/ecommerce-backend/utils"
)

type ReviewHandler struct {
	Repo repository.ReviewRepository
}

func NewReviewHandler(repo repository.ReviewRepository) *ReviewHandler {
	return &ReviewHandler{Repo: repo}
}

// AddReview posts a review for a product. A user can review a product at
// most once; a second attempt is rejected with a conflict.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	var input models.AddReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Rating between 1 and 5 and review content are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	review, err := h.Repo.AddReview(ctx, userID, productID, input.Rating, input.Content)
	if err != nil {
		switch err {
		case repository.ErrProductNotFound:
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Product not found"))
		case repository.ErrAlreadyReviewed:
			c.JSON(http.StatusConflict, utils.ErrorResponse(http.StatusConflict, "You have already reviewed this product"))
		default:
			c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while adding the review"))
		}
		return
	}

	c.JSON(http.StatusCreated, utils.SuccessResponse(http.StatusCreated, "Review added successfully!", gin.H{"review": review}))
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse(http.StatusUnauthorized, "Unauthorized request"))
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid review id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if err := h.Repo.DeleteReview(ctx, userID, reviewID); err != nil {
		if err == repository.ErrReviewNotFound {
			c.JSON(http.StatusNotFound, utils.ErrorResponse(http.StatusNotFound, "Review not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while deleting the review"))
		return
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Review deleted successfully!", nil))
}

func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(http.StatusBadRequest, "Invalid product id"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	reviews, err := h.Repo.GetByProduct(ctx, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching reviews"))
		return
	}
	if reviews == nil {
		reviews = []models.PopulatedReview{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Reviews fetched successfully!", gin.H{"reviews": reviews}))
}

// GetAllReviews lists every review for the admin dashboard.
func (h *ReviewHandler) GetAllReviews(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	reviews, err := h.Repo.ListAll(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.ErrorResponse(http.StatusInternalServerError, "Something went wrong while fetching reviews"))
		return
	}
	if reviews == nil {
		reviews = []models.PopulatedReview{}
	}

	c.JSON(http.StatusOK, utils.SuccessResponse(http.StatusOK, "Reviews fetched successfully!", gin.H{"reviews": reviews}))
}
