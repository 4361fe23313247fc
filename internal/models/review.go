package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"user" json:"userId"`
	ProductID     primitive.ObjectID `bson:"product" json:"productId"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewContent string             `bson:"reviewContent" json:"reviewContent"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AddReviewInput struct {
	Rating  float64 `json:"rating" binding:"required,min=1,max=5"`
	Content string  `json:"content" binding:"required"`
}

// ReviewAuthor is the contact slice of a user joined onto a review.
type ReviewAuthor struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Username  string             `bson:"username" json:"username"`
	FirstName string             `bson:"firstName" json:"firstName"`
	LastName  string             `bson:"lastName" json:"lastName"`
	Email     string             `bson:"email" json:"email"`
}

type PopulatedReview struct {
	ID            primitive.ObjectID `bson:"_id" json:"id"`
	User          ReviewAuthor       `bson:"user" json:"user"`
	ProductID     primitive.ObjectID `bson:"product" json:"productId"`
	Rating        float64            `bson:"rating" json:"rating"`
	ReviewContent string             `bson:"reviewContent" json:"reviewContent"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
