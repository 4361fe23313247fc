package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/clothique/ecommerce-backend/internal/models"
)

func TestMergeCartItemIncrementsExistingLine(t *testing.T) {
	productID := primitive.NewObjectID()
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), ProductID: productID, Quantity: 2},
	}

	merged := MergeCartItem(items, productID, 3)

	require.Len(t, merged, 1)
	assert.Equal(t, 5, merged[0].Quantity)
}

func TestMergeCartItemAppendsNewLine(t *testing.T) {
	existing := primitive.NewObjectID()
	incoming := primitive.NewObjectID()
	items := []models.CartItem{
		{ID: primitive.NewObjectID(), ProductID: existing, Quantity: 1},
	}

	merged := MergeCartItem(items, incoming, 2)

	require.Len(t, merged, 2)
	assert.Equal(t, incoming, merged[1].ProductID)
	assert.Equal(t, 2, merged[1].Quantity)
	assert.False(t, merged[1].ID.IsZero())
}

func TestMergeCartItemOnEmptyCart(t *testing.T) {
	productID := primitive.NewObjectID()

	merged := MergeCartItem(nil, productID, 1)

	require.Len(t, merged, 1)
	assert.Equal(t, productID, merged[0].ProductID)
	assert.Equal(t, 1, merged[0].Quantity)
}

func TestAppendWishlistItemIsNoOpOnDuplicate(t *testing.T) {
	productID := primitive.NewObjectID()
	items := []models.WishlistItem{
		{ID: primitive.NewObjectID(), ProductID: productID},
	}

	appended := AppendWishlistItem(items, productID)

	assert.Len(t, appended, 1)
}

func TestAppendWishlistItemAddsNewProduct(t *testing.T) {
	items := []models.WishlistItem{
		{ID: primitive.NewObjectID(), ProductID: primitive.NewObjectID()},
	}
	incoming := primitive.NewObjectID()

	appended := AppendWishlistItem(items, incoming)

	require.Len(t, appended, 2)
	assert.Equal(t, incoming, appended[1].ProductID)
	assert.False(t, appended[1].ID.IsZero())
}

func TestAverageRatingOfEmptySetIsZero(t *testing.T) {
	assert.Zero(t, AverageRating(nil))
	assert.Zero(t, AverageRating([]models.Review{}))
}

func TestAverageRatingSingleReview(t *testing.T) {
	reviews := []models.Review{{Rating: 4}}
	assert.Equal(t, 4.0, AverageRating(reviews))
}

func TestAverageRatingIsArithmeticMean(t *testing.T) {
	reviews := []models.Review{
		{Rating: 5},
		{Rating: 3},
		{Rating: 4},
	}
	assert.InDelta(t, 4.0, AverageRating(reviews), 1e-9)
}
