package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
}

type Wishlist struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"userId"`
	Items  []WishlistItem     `bson:"items" json:"items"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AddToWishlistInput struct {
	ProductID string `json:"productId" binding:"required"`
}

type PopulatedWishlistItem struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Product PopulatedProduct   `bson:"product" json:"product"`
}

type PopulatedWishlist struct {
	ID     primitive.ObjectID      `bson:"_id" json:"id"`
	UserID primitive.ObjectID      `bson:"user" json:"userId"`
	Items  []PopulatedWishlistItem `bson:"items" json:"items"`
}
