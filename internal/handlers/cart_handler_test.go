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

type fakeCartRepo struct {
	addedProduct  primitive.ObjectID
	addedQuantity int
	removeErr     error
	updateErr     error
	view          models.CartView
}

func (f *fakeCartRepo) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error) {
	f.addedProduct = productID
	f.addedQuantity = quantity
	return models.Cart{UserID: userID, Items: repository.MergeCartItem(nil, productID, quantity)}, nil
}

func (f *fakeCartRepo) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	return f.removeErr
}

func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (models.Cart, error) {
	if f.updateErr != nil {
		return models.Cart{}, f.updateErr
	}
	return models.Cart{UserID: userID}, nil
}

func (f *fakeCartRepo) GetPopulated(ctx context.Context, userID primitive.ObjectID) (models.CartView, error) {
	return f.view, nil
}

func (f *fakeCartRepo) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return nil
}

func cartRouter(repo repository.CartRepository, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewCartHandler(repo)
	router := gin.New()
	router.POST("/cart/add", fakeUserSession(userID), handler.AddToCart)
	router.GET("/cart", fakeUserSession(userID), handler.GetCart)
	router.PATCH("/cart/update/:itemId", fakeUserSession(userID), handler.UpdateCartItem)
	router.DELETE("/cart/remove/:itemId", fakeUserSession(userID), handler.RemoveFromCart)
	return router
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	repo := &fakeCartRepo{}
	productID := primitive.NewObjectID()
	router := cartRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/cart/add",
		map[string]interface{}{"productId": productID.Hex()})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, productID, repo.addedProduct)
	assert.Equal(t, 1, repo.addedQuantity)
}

func TestAddToCartRejectsInvalidProductID(t *testing.T) {
	repo := &fakeCartRepo{}
	router := cartRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPost, "/cart/add",
		map[string]interface{}{"productId": "nope"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, repo.addedProduct.IsZero())
}

func TestUpdateCartItemRejectsZeroQuantity(t *testing.T) {
	router := cartRouter(&fakeCartRepo{}, primitive.NewObjectID())

	w := postJSON(router, http.MethodPatch, "/cart/update/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"quantity": 0})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCartItemUnknownLineIs404(t *testing.T) {
	repo := &fakeCartRepo{updateErr: repository.ErrCartItemNotFound}
	router := cartRouter(repo, primitive.NewObjectID())

	w := postJSON(router, http.MethodPatch, "/cart/update/"+primitive.NewObjectID().Hex(),
		map[string]interface{}{"quantity": 2})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveFromCartUnknownLineIs404(t *testing.T) {
	repo := &fakeCartRepo{removeErr: repository.ErrCartItemNotFound}
	router := cartRouter(repo, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodDelete, "/cart/remove/"+primitive.NewObjectID().Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCartReturnsTotal(t *testing.T) {
	userID := primitive.NewObjectID()
	repo := &fakeCartRepo{view: models.CartView{
		CartItems: models.PopulatedCart{UserID: userID, Items: []models.PopulatedCartItem{}},
		CartTotal: 74.5,
	}}
	router := cartRouter(repo, userID)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cartTotal":74.5`)
}
