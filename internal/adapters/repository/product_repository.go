package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clothique/ecommerce-backend/internal/models"
)

type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	Update(ctx context.Context, productID primitive.ObjectID, input models.UpdateProductInput) (models.Product, error)
	UpdateImage(ctx context.Context, productID primitive.ObjectID, imageURL string) (models.Product, error)
	ToggleActive(ctx context.Context, productID primitive.ObjectID) (models.Product, error)
	Delete(ctx context.Context, productID primitive.ObjectID) error
	Find(ctx context.Context, filter bson.M) (models.Product, error)
	List(ctx context.Context, filter bson.M, sort bson.D, page, limit int64) ([]models.Product, int64, error)
	DetailWithReviews(ctx context.Context, productID primitive.ObjectID) (models.ProductDetails, error)
	CatalogFilters(ctx context.Context) (models.CatalogFilters, error)
}

type MongoProductRepository struct {
	DB *mongo.Database
}

func NewProductRepository(db *mongo.Database) ProductRepository {
	return &MongoProductRepository{DB: db}
}

func (r *MongoProductRepository) Create(ctx context.Context, product models.Product) (models.Product, error) {
	collection := r.DB.Collection("products")

	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	if product.Reviews == nil {
		product.Reviews = []primitive.ObjectID{}
	}

	res, err := collection.InsertOne(ctx, product)
	if err != nil {
		return models.Product{}, err
	}
	product.ID = res.InsertedID.(primitive.ObjectID)
	return product, nil
}

func (r *MongoProductRepository) Update(ctx context.Context, productID primitive.ObjectID, input models.UpdateProductInput) (models.Product, error) {
	collection := r.DB.Collection("products")

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != "" {
		set["name"] = input.Name
	}
	if input.Description != "" {
		set["description"] = input.Description
	}
	if input.Price > 0 {
		set["price"] = input.Price
	}
	if input.Stock != nil {
		set["stock"] = *input.Stock
	}
	if input.CategoryID != "" {
		categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			return models.Product{}, err
		}
		set["category"] = categoryID
	}
	if input.SubCategoryID != "" {
		subCategoryID, err := primitive.ObjectIDFromHex(input.SubCategoryID)
		if err != nil {
			return models.Product{}, err
		}
		set["subCategory"] = subCategoryID
	}
	if input.Sizes != nil {
		set["sizes"] = input.Sizes
	}
	if input.Colors != nil {
		set["colors"] = input.Colors
	}
	if input.Material != "" {
		set["material"] = input.Material
	}
	if input.Style != "" {
		set["style"] = input.Style
	}
	if input.Tags != nil {
		set["tags"] = input.Tags
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	if err := collection.FindOneAndUpdate(ctx, bson.M{"_id": productID}, bson.M{"$set": set}, opts).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) UpdateImage(ctx context.Context, productID primitive.ObjectID, imageURL string) (models.Product, error) {
	collection := r.DB.Collection("products")

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{"image": imageURL, "updatedAt": time.Now()}}

	var product models.Product
	if err := collection.FindOneAndUpdate(ctx, bson.M{"_id": productID}, update, opts).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) ToggleActive(ctx context.Context, productID primitive.ObjectID) (models.Product, error) {
	collection := r.DB.Collection("products")

	var product models.Product
	if err := collection.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}

	product.IsActive = !product.IsActive
	product.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{"isActive": product.IsActive, "updatedAt": product.UpdatedAt}}
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": productID}, update); err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) Delete(ctx context.Context, productID primitive.ObjectID) error {
	collection := r.DB.Collection("products")

	res, err := collection.DeleteOne(ctx, bson.M{"_id": productID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *MongoProductRepository) Find(ctx context.Context, filter bson.M) (models.Product, error) {
	collection := r.DB.Collection("products")

	var product models.Product
	if err := collection.FindOne(ctx, filter).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (r *MongoProductRepository) List(ctx context.Context, filter bson.M, sort bson.D, page, limit int64) ([]models.Product, int64, error) {
	collection := r.DB.Collection("products")

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	opts := options.Find().
		SetSkip((page - 1) * limit).
		SetLimit(limit).
		SetSort(sort)

	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}

	total, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// DetailWithReviews is the admin product detail: category names inlined and
// the review documents joined with their authors.
func (r *MongoProductRepository) DetailWithReviews(ctx context.Context, productID primitive.ObjectID) (models.ProductDetails, error) {
	collection := r.DB.Collection("products")

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": productID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "category",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"name": 1}}},
		}}},
		bson.D{{Key: "$unwind", Value: "$category"}},
		bson.D{{Key: "$addFields", Value: bson.M{"category": "$category.name"}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "subcategories",
			"localField":   "subCategory",
			"foreignField": "_id",
			"as":           "subCategory",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"name": 1}}},
		}}},
		bson.D{{Key: "$unwind", Value: "$subCategory"}},
		bson.D{{Key: "$addFields", Value: bson.M{"subCategory": "$subCategory.name"}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "reviews",
			"localField":   "reviews",
			"foreignField": "_id",
			"as":           "reviewDetails",
			"pipeline": bson.A{
				bson.M{"$lookup": bson.M{
					"from":         "users",
					"localField":   "user",
					"foreignField": "_id",
					"as":           "user",
					"pipeline": bson.A{bson.M{"$project": bson.M{
						"username":  1,
						"firstName": 1,
						"lastName":  1,
						"email":     1,
					}}},
				}},
				bson.M{"$unwind": "$user"},
			},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.ProductDetails{}, err
	}
	defer cursor.Close(ctx)

	var results []models.ProductDetails
	if err := cursor.All(ctx, &results); err != nil {
		return models.ProductDetails{}, err
	}
	if len(results) == 0 {
		return models.ProductDetails{}, ErrProductNotFound
	}
	return results[0], nil
}

// CatalogFilters assembles the storefront filter facet: active categories
// with their active sub-categories, distinct sizes and colors, and the
// price range across the whole catalog.
func (r *MongoProductRepository) CatalogFilters(ctx context.Context) (models.CatalogFilters, error) {
	categoryColl := r.DB.Collection("categories")
	productColl := r.DB.Collection("products")

	categoryPipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"isActive": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "subcategories",
			"localField":   "_id",
			"foreignField": "category",
			"as":           "subcategories",
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"isActive": true}},
				bson.M{"$project": bson.M{"name": 1}},
			},
		}}},
		bson.D{{Key: "$project", Value: bson.M{"name": 1, "subcategories": 1}}},
	}

	cursor, err := categoryColl.Aggregate(ctx, categoryPipeline)
	if err != nil {
		return models.CatalogFilters{}, err
	}
	defer cursor.Close(ctx)

	filters := models.CatalogFilters{
		Categories: []models.FilterCategory{},
		Sizes:      []string{},
		Colors:     []string{},
	}
	if err := cursor.All(ctx, &filters.Categories); err != nil {
		return models.CatalogFilters{}, err
	}

	sizes, err := productColl.Distinct(ctx, "sizes", bson.M{})
	if err != nil {
		return models.CatalogFilters{}, err
	}
	for _, s := range sizes {
		if size, ok := s.(string); ok {
			filters.Sizes = append(filters.Sizes, size)
		}
	}

	colors, err := productColl.Distinct(ctx, "colors", bson.M{})
	if err != nil {
		return models.CatalogFilters{}, err
	}
	for _, c := range colors {
		if color, ok := c.(string); ok {
			filters.Colors = append(filters.Colors, color)
		}
	}

	pricePipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          nil,
			"highestPrice": bson.M{"$max": "$price"},
			"lowestPrice":  bson.M{"$min": "$price"},
		}}},
	}
	priceCursor, err := productColl.Aggregate(ctx, pricePipeline)
	if err != nil {
		return models.CatalogFilters{}, err
	}
	defer priceCursor.Close(ctx)

	var prices []struct {
		HighestPrice float64 `bson:"highestPrice"`
		LowestPrice  float64 `bson:"lowestPrice"`
	}
	if err := priceCursor.All(ctx, &prices); err != nil {
		return models.CatalogFilters{}, err
	}
	if len(prices) > 0 {
		filters.HighestPrice = prices[0].HighestPrice
		filters.LowestPrice = prices[0].LowestPrice
	}

	return filters, nil
}
