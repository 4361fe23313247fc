package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clothique/ecommerce-backend/internal/models"
)

type WishlistRepository interface {
	AddItem(ctx context.Context, userID, productID primitive.ObjectID) (models.Wishlist, error)
	RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) error
	GetPopulated(ctx context.Context, userID primitive.ObjectID) (models.PopulatedWishlist, error)
}

type MongoWishlistRepository struct {
	DB *mongo.Database
}

func NewWishlistRepository(db *mongo.Database) WishlistRepository {
	return &MongoWishlistRepository{DB: db}
}

// AppendWishlistItem applies the wishlist upsert rule: re-adding a product
// already on the list is a no-op.
func AppendWishlistItem(items []models.WishlistItem, productID primitive.ObjectID) []models.WishlistItem {
	for i := range items {
		if items[i].ProductID == productID {
			return items
		}
	}
	return append(items, models.WishlistItem{
		ID:        primitive.NewObjectID(),
		ProductID: productID,
	})
}

func (r *MongoWishlistRepository) AddItem(ctx context.Context, userID, productID primitive.ObjectID) (models.Wishlist, error) {
	collection := r.DB.Collection("wishlists")
	filter := bson.M{"user": userID}

	var wishlist models.Wishlist
	err := collection.FindOne(ctx, filter).Decode(&wishlist)
	if err == mongo.ErrNoDocuments {
		wishlist = models.Wishlist{
			UserID:    userID,
			Items:     AppendWishlistItem(nil, productID),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		res, err := collection.InsertOne(ctx, wishlist)
		if err != nil {
			return models.Wishlist{}, err
		}
		wishlist.ID = res.InsertedID.(primitive.ObjectID)
		return wishlist, nil
	} else if err != nil {
		return models.Wishlist{}, err
	}

	wishlist.Items = AppendWishlistItem(wishlist.Items, productID)
	wishlist.UpdatedAt = time.Now()
	if _, err := collection.ReplaceOne(ctx, filter, wishlist); err != nil {
		return models.Wishlist{}, err
	}
	return wishlist, nil
}

func (r *MongoWishlistRepository) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	collection := r.DB.Collection("wishlists")

	filter := bson.M{"user": userID, "items._id": itemID}
	var wishlist models.Wishlist
	if err := collection.FindOne(ctx, filter).Decode(&wishlist); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrWishlistItemNotFound
		}
		return err
	}

	update := bson.M{
		"$pull": bson.M{"items": bson.M{"_id": itemID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	_, err := collection.UpdateOne(ctx, bson.M{"user": userID}, update)
	return err
}

func (r *MongoWishlistRepository) GetPopulated(ctx context.Context, userID primitive.ObjectID) (models.PopulatedWishlist, error) {
	collection := r.DB.Collection("wishlists")

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"user": userID}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "items.productId",
			"foreignField": "_id",
			"as":           "items.product",
			"pipeline":     populatedProductPipeline(),
		}}},
		bson.D{{Key: "$unwind", Value: "$items.product"}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":  "$_id",
			"user": bson.M{"$first": "$user"},
			"items": bson.M{"$push": bson.M{
				"_id":     "$items._id",
				"product": "$items.product",
			}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.PopulatedWishlist{}, err
	}
	defer cursor.Close(ctx)

	var results []models.PopulatedWishlist
	if err := cursor.All(ctx, &results); err != nil {
		return models.PopulatedWishlist{}, err
	}

	if len(results) == 0 {
		return models.PopulatedWishlist{UserID: userID, Items: []models.PopulatedWishlistItem{}}, nil
	}
	return results[0], nil
}
