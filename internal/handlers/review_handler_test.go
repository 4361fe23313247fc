package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/adapters/repository"
	"github.com/clothique/ecommerce-backend/internal/models"
)

type fakeReviewRepo struct {
	addErr    error
	deleteErr error
	added     *models.Review
}

func (f *fakeReviewRepo) AddReview(ctx context.Context, userID, productID primitive.ObjectID, rating float64, content string) (models.Review, error) {
	if f.addErr != nil {
		return models.Review{}, f.addErr
	}
	review := models.Review{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		ProductID:     productID,
		Rating:        rating,
		ReviewContent: content,
	}
	f.added = &review
	return review, nil
}

func (f *fakeReviewRepo) DeleteReview(ctx context.Context, userID, reviewID primitive.ObjectID) error {
	return f.deleteErr
}

func (f *fakeReviewRepo) GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.PopulatedReview, error) {
	return nil, nil
}

func (f *fakeReviewRepo) ListAll(ctx context.Context) ([]models.PopulatedReview, error) {
	return nil, nil
}

// fakeUserSession injects an authenticated principal the way the auth
// middleware would.
func fakeUserSession(userID primitive.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID.Hex())
		c.Next()
	}
}

func reviewRouter(repo repository.ReviewRepository, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewReviewHandler(repo)
	router := gin.New()
	router.POST("/reviews/add/:productId", fakeUserSession(userID), handler.AddReview)
	router.DELETE("/reviews/delete/:reviewId", fakeUserSession(userID), handler.DeleteReview)
	router.GET("/reviews/product/:productId", handler.GetProductReviews)
	return router
}

func TestAddReviewSucceeds(t *testing.T) {
	repo := &fakeReviewRepo{}
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()
	router := reviewRouter(repo, userID)

	w := postJSON(router, http.MethodPost, "/reviews/add/"+productID.Hex(),
		map[string]interface{}{"rating": 4, "content": "Fits true to size"})

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.added)
	assert.Equal(t, userID, repo.added.UserID)
	assert.Equal(t, productID, repo.added.ProductID)
	assert.Equal(t, 4.0, repo.added.Rating)
}

func TestAddReviewDuplicateIsConflict(t *testing.T) {
	repo := &fakeReviewRepo{addErr: repository.ErrAlreadyReviewed}
	router := reviewRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/reviews/add/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"rating": 5, "content": "Great jacket"})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAddReviewUnknownProductIs404(t *testing.T) {
	repo := &fakeReviewRepo{addErr: repository.ErrProductNotFound}
	router := reviewRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/reviews/add/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"rating": 5, "content": "Great jacket"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddReviewRejectsRatingOutOfRange(t *testing.T) {
	repo := &fakeReviewRepo{}
	router := reviewRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/reviews/add/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"rating": 6, "content": "Too good"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.added)
}

func TestAddReviewRejectsMissingContent(t *testing.T) {
	router := reviewRouter(&fakeReviewRepo{}, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/reviews/add/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"rating": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReviewNotOwnedIs404(t *testing.T) {
	repo := &fakeReviewRepo{deleteErr: repository.ErrReviewNotFound}
	router := reviewRouter(repo, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodDelete, "/reviews/delete/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetProductReviewsEmptyIsOK(t *testing.T) {
	router := reviewRouter(&fakeReviewRepo{}, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodGet, "/reviews/product/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reviews":[]`)
}
