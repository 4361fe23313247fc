package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clothique/ecommerce-backend/internal/models"
)

type ReviewRepository interface {
	AddReview(ctx context.Context, userID, productID primitive.ObjectID, rating float64, content string) (models.Review, error)
	DeleteReview(ctx context.Context, userID, reviewID primitive.ObjectID) error
	GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.PopulatedReview, error)
	ListAll(ctx context.Context) ([]models.PopulatedReview, error)
}

type MongoReviewRepository struct {
	DB *mongo.Database
}

func NewReviewRepository(db *mongo.Database) ReviewRepository {
	return &MongoReviewRepository{DB: db}
}

// AverageRating is the arithmetic mean of the given reviews' ratings. An
// empty set is defined as 0, never NaN.
func AverageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var total float64
	for _, r := range reviews {
		total += r.Rating
	}
	return total / float64(len(reviews))
}

func (r *MongoReviewRepository) AddReview(ctx context.Context, userID, productID primitive.ObjectID, rating float64, content string) (models.Review, error) {
	reviewColl := r.DB.Collection("reviews")
	productColl := r.DB.Collection("products")

	var product models.Product
	if err := productColl.FindOne(ctx, bson.M{"_id": productID}).Decode(&product); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Review{}, ErrProductNotFound
		}
		return models.Review{}, err
	}

	// One review per (user, product) pair.
	count, err := reviewColl.CountDocuments(ctx, bson.M{"user": userID, "product": productID})
	if err != nil {
		return models.Review{}, err
	}
	if count > 0 {
		return models.Review{}, ErrAlreadyReviewed
	}

	review := models.Review{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		ProductID:     productID,
		Rating:        rating,
		ReviewContent: content,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := reviewColl.InsertOne(ctx, review); err != nil {
		return models.Review{}, err
	}

	if _, err := productColl.UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$push": bson.M{"reviews": review.ID}}); err != nil {
		return models.Review{}, err
	}

	if err := r.recalculateRating(ctx, productID); err != nil {
		return models.Review{}, err
	}

	return review, nil
}

func (r *MongoReviewRepository) DeleteReview(ctx context.Context, userID, reviewID primitive.ObjectID) error {
	reviewColl := r.DB.Collection("reviews")
	productColl := r.DB.Collection("products")

	var review models.Review
	if err := reviewColl.FindOne(ctx, bson.M{"_id": reviewID, "user": userID}).Decode(&review); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrReviewNotFound
		}
		return err
	}

	if _, err := productColl.UpdateOne(ctx,
		bson.M{"_id": review.ProductID},
		bson.M{"$pull": bson.M{"reviews": review.ID}}); err != nil {
		return err
	}

	if _, err := reviewColl.DeleteOne(ctx, bson.M{"_id": reviewID}); err != nil {
		return err
	}

	return r.recalculateRating(ctx, review.ProductID)
}

// recalculateRating recomputes the product's rating from its remaining
// reviews after every insert or delete.
func (r *MongoReviewRepository) recalculateRating(ctx context.Context, productID primitive.ObjectID) error {
	reviewColl := r.DB.Collection("reviews")

	cursor, err := reviewColl.Find(ctx, bson.M{"product": productID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return err
	}

	_, err = r.DB.Collection("products").UpdateOne(ctx,
		bson.M{"_id": productID},
		bson.M{"$set": bson.M{"rating": AverageRating(reviews), "updatedAt": time.Now()}})
	return err
}

func (r *MongoReviewRepository) GetByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.PopulatedReview, error) {
	return r.aggregateReviews(ctx, bson.M{"product": productID})
}

func (r *MongoReviewRepository) ListAll(ctx context.Context) ([]models.PopulatedReview, error) {
	return r.aggregateReviews(ctx, bson.M{})
}

func (r *MongoReviewRepository) aggregateReviews(ctx context.Context, match bson.M) ([]models.PopulatedReview, error) {
	collection := r.DB.Collection("reviews")

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
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
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}

	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.PopulatedReview
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
