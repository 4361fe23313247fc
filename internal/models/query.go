package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Query is a customer support message. Reply stays empty until an admin
// answers it.
type Query struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName string             `bson:"fullName" json:"fullName"`
	Email    string             `bson:"email" json:"email"`
	Subject  string             `bson:"subject" json:"subject"`
	Message  string             `bson:"message" json:"message"`
	Reply    string             `bson:"reply,omitempty" json:"reply,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type AddQueryInput struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Subject  string `json:"subject" binding:"required"`
	Message  string `json:"message" binding:"required"`
}

type ReplyQueryInput struct {
	Reply string `json:"reply" binding:"required"`
}
