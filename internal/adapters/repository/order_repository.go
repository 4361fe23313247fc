package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clothique/ecommerce-backend/internal/models"
)

type OrderRepository interface {
	CreateOrder(ctx context.Context, input models.CreateOrderInput) (models.Order, models.Payment, error)
	GetOrderDetails(ctx context.Context, orderID primitive.ObjectID) (models.PopulatedOrder, error)
	GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error)
	GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.PopulatedOrder, error)
	UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, message string) (models.Order, error)
	CreatePayment(ctx context.Context, orderID primitive.ObjectID, amount float64, method models.PaymentMethod, token string) (models.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID primitive.ObjectID) (models.Payment, error)
}

type MongoOrderRepository struct {
	DB *mongo.Database
}

func NewOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoOrderRepository{DB: db}
}

// CreateOrder persists the order and its paired payment record. The two
// writes are sequential; if the payment insert fails the order is deleted
// again so no orphaned order survives a partial failure.
func (r *MongoOrderRepository) CreateOrder(ctx context.Context, input models.CreateOrderInput) (models.Order, models.Payment, error) {
	orderColl := r.DB.Collection("orders")
	paymentColl := r.DB.Collection("payments")

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return models.Order{}, models.Payment{}, fmt.Errorf("invalid product id %q", item.ProductID)
		}
		items = append(items, models.OrderItem{
			ID:        primitive.NewObjectID(),
			ProductID: productID,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	order := models.Order{
		ID:              primitive.NewObjectID(),
		GuestUser:       input.GuestUser,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
		TotalAmount:     input.TotalAmount,
		Status:          models.StatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if input.User != "" {
		userID, err := primitive.ObjectIDFromHex(input.User)
		if err != nil {
			return models.Order{}, models.Payment{}, fmt.Errorf("invalid user id %q", input.User)
		}
		order.UserID = &userID
		order.GuestUser = nil
	}

	if _, err := orderColl.InsertOne(ctx, order); err != nil {
		return models.Order{}, models.Payment{}, fmt.Errorf("failed to create order: %w", err)
	}

	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		OrderID:       order.ID,
		Amount:        input.TotalAmount,
		PaymentMethod: input.PaymentMethod,
		PaymentToken:  input.PaymentToken,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := paymentColl.InsertOne(ctx, payment); err != nil {
		// Compensating delete so the checkout can be retried cleanly.
		if _, delErr := orderColl.DeleteOne(context.Background(), bson.M{"_id": order.ID}); delErr != nil {
			logrus.WithError(delErr).WithField("orderId", order.ID.Hex()).
				Error("Failed to roll back order after payment insert failure")
		}
		return models.Order{}, models.Payment{}, fmt.Errorf("failed to create payment record: %w", err)
	}

	return order, payment, nil
}

func (r *MongoOrderRepository) GetOrderDetails(ctx context.Context, orderID primitive.ObjectID) (models.PopulatedOrder, error) {
	orders, err := r.aggregateOrders(ctx, bson.M{"_id": orderID})
	if err != nil {
		return models.PopulatedOrder{}, err
	}
	if len(orders) == 0 {
		return models.PopulatedOrder{}, ErrOrderNotFound
	}
	return orders[0], nil
}

func (r *MongoOrderRepository) GetUserOrders(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedOrder, error) {
	return r.aggregateOrders(ctx, bson.M{"user": userID})
}

func (r *MongoOrderRepository) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.PopulatedOrder, error) {
	return r.aggregateOrders(ctx, bson.M{"status": status})
}

// aggregateOrders runs the shared denormalized projection for any match
// filter.
func (r *MongoOrderRepository) aggregateOrders(ctx context.Context, match bson.M) ([]models.PopulatedOrder, error) {
	collection := r.DB.Collection("orders")

	cursor, err := collection.Aggregate(ctx, orderDetailPipeline(match))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.PopulatedOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus overwrites the order's status and cancellation message. There
// is deliberately no transition-graph guard; the admin surface is trusted.
func (r *MongoOrderRepository) UpdateStatus(ctx context.Context, orderID primitive.ObjectID, status models.OrderStatus, message string) (models.Order, error) {
	collection := r.DB.Collection("orders")

	update := bson.M{"$set": bson.M{
		"status":              status,
		"cancellationMessage": message,
		"updatedAt":           time.Now(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	if err := collection.FindOneAndUpdate(ctx, bson.M{"_id": orderID}, update, opts).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

// CreatePayment records a payment for an existing order. Amount is always
// the order's total; the token is stored verbatim.
func (r *MongoOrderRepository) CreatePayment(ctx context.Context, orderID primitive.ObjectID, amount float64, method models.PaymentMethod, token string) (models.Payment, error) {
	orderColl := r.DB.Collection("orders")
	paymentColl := r.DB.Collection("payments")

	var order models.Order
	if err := orderColl.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Payment{}, ErrOrderNotFound
		}
		return models.Payment{}, err
	}

	payment := models.Payment{
		ID:            primitive.NewObjectID(),
		OrderID:       orderID,
		Amount:        amount,
		PaymentMethod: method,
		PaymentToken:  token,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if _, err := paymentColl.InsertOne(ctx, payment); err != nil {
		return models.Payment{}, err
	}
	return payment, nil
}

func (r *MongoOrderRepository) GetPaymentByOrder(ctx context.Context, orderID primitive.ObjectID) (models.Payment, error) {
	collection := r.DB.Collection("payments")

	var payment models.Payment
	if err := collection.FindOne(ctx, bson.M{"order": orderID}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Payment{}, ErrPaymentNotFound
		}
		return models.Payment{}, err
	}
	return payment, nil
}
