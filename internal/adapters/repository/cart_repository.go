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

type CartRepository interface {
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) error
	UpdateItemQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (models.Cart, error)
	GetPopulated(ctx context.Context, userID primitive.ObjectID) (models.CartView, error)
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type MongoCartRepository struct {
	DB *mongo.Database
}

func NewCartRepository(db *mongo.Database) CartRepository {
	return &MongoCartRepository{DB: db}
}

// MergeCartItem applies the cart upsert rule: an existing line item for the
// product has its quantity incremented, otherwise a new line item is
// appended with a fresh id.
func MergeCartItem(items []models.CartItem, productID primitive.ObjectID, quantity int) []models.CartItem {
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += quantity
			return items
		}
	}
	return append(items, models.CartItem{
		ID:        primitive.NewObjectID(),
		ProductID: productID,
		Quantity:  quantity,
	})
}

func (r *MongoCartRepository) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (models.Cart, error) {
	collection := r.DB.Collection("carts")
	filter := bson.M{"user": userID}

	var cart models.Cart
	err := collection.FindOne(ctx, filter).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{
			UserID:    userID,
			Items:     MergeCartItem(nil, productID, quantity),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		res, err := collection.InsertOne(ctx, cart)
		if err != nil {
			return models.Cart{}, err
		}
		cart.ID = res.InsertedID.(primitive.ObjectID)
		return cart, nil
	} else if err != nil {
		return models.Cart{}, err
	}

	cart.Items = MergeCartItem(cart.Items, productID, quantity)
	cart.UpdatedAt = time.Now()
	if _, err := collection.ReplaceOne(ctx, filter, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *MongoCartRepository) RemoveItem(ctx context.Context, userID, itemID primitive.ObjectID) error {
	collection := r.DB.Collection("carts")

	// The line item is located by its own id, scoped to the owning user.
	filter := bson.M{"user": userID, "items._id": itemID}
	var cart models.Cart
	if err := collection.FindOne(ctx, filter).Decode(&cart); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrCartItemNotFound
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

func (r *MongoCartRepository) UpdateItemQuantity(ctx context.Context, userID, itemID primitive.ObjectID, quantity int) (models.Cart, error) {
	collection := r.DB.Collection("carts")
	filter := bson.M{"user": userID, "items._id": itemID}
	update := bson.M{
		"$set": bson.M{
			"items.$.quantity": quantity,
			"updatedAt":        time.Now(),
		},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var cart models.Cart
	if err := collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Cart{}, ErrCartItemNotFound
		}
		return models.Cart{}, err
	}
	return cart, nil
}

func (r *MongoCartRepository) GetPopulated(ctx context.Context, userID primitive.ObjectID) (models.CartView, error) {
	collection := r.DB.Collection("carts")

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
				"_id":      "$items._id",
				"quantity": "$items.quantity",
				"product":  "$items.product",
			}},
		}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return models.CartView{}, err
	}
	defer cursor.Close(ctx)

	var results []models.PopulatedCart
	if err := cursor.All(ctx, &results); err != nil {
		return models.CartView{}, err
	}

	if len(results) == 0 {
		return models.CartView{
			CartItems: models.PopulatedCart{UserID: userID, Items: []models.PopulatedCartItem{}},
		}, nil
	}

	view := models.CartView{CartItems: results[0]}
	for _, item := range results[0].Items {
		view.CartTotal += item.Product.Price * float64(item.Quantity)
	}
	return view, nil
}

func (r *MongoCartRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	collection := r.DB.Collection("carts")
	res, err := collection.DeleteOne(ctx, bson.M{"user": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCartNotFound
	}
	return nil
}
