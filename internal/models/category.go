package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Category struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name" validate:"required"`
	IsActive bool               `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type SubCategory struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name" validate:"required"`
	CategoryID primitive.ObjectID `bson:"category" json:"categoryId"`
	IsActive   bool               `bson:"isActive" json:"isActive"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type FilterSubCategory struct {
	ID   primitive.ObjectID `bson:"_id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// FilterCategory is the facet shape returned by /api/filters: an active
// category with its active sub-categories inlined.
type FilterCategory struct {
	ID            primitive.ObjectID  `bson:"_id" json:"id"`
	Name          string              `bson:"name" json:"name"`
	SubCategories []FilterSubCategory `bson:"subcategories" json:"subcategories"`
}

type CatalogFilters struct {
	Categories   []FilterCategory `json:"categories"`
	Sizes        []string         `json:"sizes"`
	Colors       []string         `json:"colors"`
	LowestPrice  float64          `json:"lowestPrice"`
	HighestPrice float64          `json:"highestPrice"`
}
