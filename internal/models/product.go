package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Image       string             `bson:"image" json:"image"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`

	CategoryID    primitive.ObjectID `bson:"category" json:"categoryId"`
	SubCategoryID primitive.ObjectID `bson:"subCategory" json:"subCategoryId"`

	Sizes    []string `bson:"sizes" json:"sizes"`
	Colors   []string `bson:"colors" json:"colors"`
	Material string   `bson:"material" json:"material" validate:"required"`
	Style    string   `bson:"style" json:"style" validate:"required"`
	Tags     []string `bson:"tags" json:"tags"`

	// Rating is the arithmetic mean of this product's reviews; 0 when none.
	Rating   float64              `bson:"rating" json:"rating"`
	Reviews  []primitive.ObjectID `bson:"reviews" json:"reviews"`
	IsActive bool                 `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type UpdateProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Stock         *int     `json:"stock"`
	CategoryID    string   `json:"categoryId"`
	SubCategoryID string   `json:"subCategoryId"`
	Sizes         []string `json:"sizes"`
	Colors        []string `json:"colors"`
	Material      string   `json:"material"`
	Style         string   `json:"style"`
	Tags          []string `json:"tags"`
}

// PopulatedProduct is a product projection with its category and sub-category
// references expanded to plain name strings. Cart, wishlist and order reads
// all share this shape.
type PopulatedProduct struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Stock       int                `bson:"stock" json:"stock"`
	Category    string             `bson:"category" json:"category"`
	SubCategory string             `bson:"subCategory" json:"subCategory"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Colors      []string           `bson:"colors" json:"colors"`
	Material    string             `bson:"material" json:"material"`
	Style       string             `bson:"style" json:"style"`
	Tags        []string           `bson:"tags" json:"tags"`
	Rating      float64            `bson:"rating" json:"rating"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
}

// ProductDetails is the admin detail view: category names inlined plus the
// product's reviews joined with their authors.
type ProductDetails struct {
	PopulatedProduct `bson:",inline"`
	Reviews          []PopulatedReview `bson:"reviewDetails" json:"reviews"`
}

// ProductListing is a paginated catalog page.
type ProductListing struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	Page       int64     `json:"page"`
	Limit      int64     `json:"limit"`
	TotalPages int64     `json:"totalPages"`
}
