package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem carries its own id so a single line item can be removed or
// updated without matching on the product.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user" json:"userId"`
	Items  []CartItem         `bson:"items" json:"items"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartItemInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type PopulatedCartItem struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Product  PopulatedProduct   `bson:"product" json:"product"`
}

type PopulatedCart struct {
	ID     primitive.ObjectID  `bson:"_id" json:"id"`
	UserID primitive.ObjectID  `bson:"user" json:"userId"`
	Items  []PopulatedCartItem `bson:"items" json:"items"`
}

// CartView pairs the populated cart with its derived total.
type CartView struct {
	CartItems PopulatedCart `json:"cartItems"`
	CartTotal float64       `json:"cartTotal"`
}
