package repository

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// populatedProductPipeline is the sub-pipeline that expands a product
// reference into a product document whose category and subCategory refs are
// flattened to plain name strings. Cart, wishlist and order reads all join
// products through this same shape.
func populatedProductPipeline() bson.A {
	return bson.A{
		bson.M{"$lookup": bson.M{
			"from":         "categories",
			"localField":   "category",
			"foreignField": "_id",
			"as":           "category",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"name": 1}}},
		}},
		bson.M{"$unwind": "$category"},
		bson.M{"$addFields": bson.M{"category": "$category.name"}},
		bson.M{"$lookup": bson.M{
			"from":         "subcategories",
			"localField":   "subCategory",
			"foreignField": "_id",
			"as":           "subCategory",
			"pipeline":     bson.A{bson.M{"$project": bson.M{"name": 1}}},
		}},
		bson.M{"$unwind": "$subCategory"},
		bson.M{"$addFields": bson.M{"subCategory": "$subCategory.name"}},
		bson.M{"$project": bson.M{"createdAt": 0, "updatedAt": 0, "reviews": 0}},
	}
}

// orderDetailPipeline builds the denormalized order projection for any match
// filter: user expanded to a contact block, each line item's product
// expanded through populatedProductPipeline, payment inlined, and the
// unwound items re-grouped into a single array per order (first-wins for
// scalars, push for items).
func orderDetailPipeline(match bson.M) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user",
			"foreignField": "_id",
			"as":           "user",
			"pipeline": bson.A{bson.M{"$project": bson.M{
				"firstName":   1,
				"lastName":    1,
				"email":       1,
				"phoneNumber": 1,
			}}},
		}}},
		// Guest orders carry no user ref, keep them.
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$user",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "products",
			"localField":   "items.productId",
			"foreignField": "_id",
			"as":           "items.product",
			"pipeline":     populatedProductPipeline(),
		}}},
		bson.D{{Key: "$unwind", Value: "$items.product"}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "payments",
			"localField":   "_id",
			"foreignField": "order",
			"as":           "paymentDetails",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{
			"path":                       "$paymentDetails",
			"preserveNullAndEmptyArrays": true,
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":       "$_id",
			"user":      bson.M{"$first": "$user"},
			"guestUser": bson.M{"$first": "$guestUser"},
			"items": bson.M{"$push": bson.M{
				"_id":      "$items._id",
				"quantity": "$items.quantity",
				"price":    "$items.price",
				"product":  "$items.product",
			}},
			"shippingAddress":     bson.M{"$first": "$shippingAddress"},
			"billingAddress":      bson.M{"$first": "$billingAddress"},
			"totalAmount":         bson.M{"$first": "$totalAmount"},
			"status":              bson.M{"$first": "$status"},
			"cancellationMessage": bson.M{"$first": "$cancellationMessage"},
			"paymentDetails":      bson.M{"$first": "$paymentDetails"},
			"createdAt":           bson.M{"$first": "$createdAt"},
			"updatedAt":           bson.M{"$first": "$updatedAt"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"createdAt": -1}}},
	}
}
