package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Run this script once to create database indexes
// Usage: go run scripts/create_indexes.go
func main() {
	// Increase timeout for cloud connection (Atlas is slower than localhost)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	clientOptions := options.Client().ApplyURI(mongoURI).SetServerSelectionTimeout(30 * time.Second)

	log.Println("🔄 Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("❌ Failed to create client: %v", err)
	}
	defer client.Disconnect(ctx)

	log.Println("🔄 Verifying connection...")
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v\nCheck your connection string and network access", err)
	}
	log.Println("✅ Connected to MongoDB successfully!")

	dbName := os.Getenv("MONGODB_DATABASE")
	if dbName == "" {
		dbName = "clothique"
	}
	db := client.Database(dbName)

	createIndex(ctx, db, "users", mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("idx_username").SetUnique(true),
	})
	createIndex(ctx, db, "users", mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_email").SetUnique(true),
	})

	createIndex(ctx, db, "admins", mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("idx_admin_username").SetUnique(true),
	})
	createIndex(ctx, db, "admins", mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("idx_admin_email").SetUnique(true),
	})

	// Storefront listing filters on the active flag plus category fields.
	createIndex(ctx, db, "products", mongo.IndexModel{
		Keys: bson.D{
			{Key: "isActive", Value: 1},
			{Key: "category", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("idx_active_category_date"),
	})
	createIndex(ctx, db, "products", mongo.IndexModel{
		Keys:    bson.D{{Key: "subCategory", Value: 1}},
		Options: options.Index().SetName("idx_subCategory"),
	})
	createIndex(ctx, db, "products", mongo.IndexModel{
		Keys:    bson.D{{Key: "price", Value: 1}},
		Options: options.Index().SetName("idx_price"),
	})

	createIndex(ctx, db, "subcategories", mongo.IndexModel{
		Keys:    bson.D{{Key: "category", Value: 1}},
		Options: options.Index().SetName("idx_parent_category"),
	})

	createIndex(ctx, db, "carts", mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("idx_cart_user").SetUnique(true),
	})
	createIndex(ctx, db, "wishlists", mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("idx_wishlist_user").SetUnique(true),
	})

	// One review per (user, product) pair.
	createIndex(ctx, db, "reviews", mongo.IndexModel{
		Keys: bson.D{
			{Key: "user", Value: 1},
			{Key: "product", Value: 1},
		},
		Options: options.Index().SetName("idx_user_product").SetUnique(true),
	})
	createIndex(ctx, db, "reviews", mongo.IndexModel{
		Keys:    bson.D{{Key: "product", Value: 1}},
		Options: options.Index().SetName("idx_review_product"),
	})

	createIndex(ctx, db, "orders", mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("idx_order_user"),
	})
	createIndex(ctx, db, "orders", mongo.IndexModel{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_order_status"),
	})

	createIndex(ctx, db, "payments", mongo.IndexModel{
		Keys:    bson.D{{Key: "order", Value: 1}},
		Options: options.Index().SetName("idx_payment_order"),
	})

	log.Println("\n🎉 All indexes created successfully!")
}

func createIndex(ctx context.Context, db *mongo.Database, collection string, model mongo.IndexModel) {
	name := "unnamed"
	if model.Options != nil && model.Options.Name != nil {
		name = *model.Options.Name
	}
	if _, err := db.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		log.Printf("Failed to create %s index on %s: %v", name, collection, err)
		return
	}
	log.Printf("✅ Created index: %s on %s", name, collection)
}
