package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusProcessing OrderStatus = "PROCESSING"
	StatusShipped    OrderStatus = "SHIPPED"
	StatusDelivered  OrderStatus = "DELIVERED"
	StatusCancelled  OrderStatus = "CANCELLED"
)

// ValidStatus reports whether s is one of the known order states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// GuestUser is the inline contact block carried by orders placed without a
// registered account.
type GuestUser struct {
	FirstName   string `bson:"firstName" json:"firstName"`
	LastName    string `bson:"lastName" json:"lastName"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
}

// OrderItem snapshots the unit price at submission time. Prices are never
// re-read from the catalog.
type OrderItem struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Order struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Exactly one of UserID and GuestUser is set.
	UserID    *primitive.ObjectID `bson:"user,omitempty" json:"userId,omitempty"`
	GuestUser *GuestUser          `bson:"guestUser,omitempty" json:"guestUser,omitempty"`

	Items           []OrderItem `bson:"items" json:"items"`
	ShippingAddress string      `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress  string      `bson:"billingAddress" json:"billingAddress"`
	TotalAmount     float64     `bson:"totalAmount" json:"totalAmount"`

	Status              OrderStatus `bson:"status" json:"status"`
	CancellationMessage string      `bson:"cancellationMessage,omitempty" json:"cancellationMessage,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreateOrderItem struct {
	ProductID string  `json:"productId"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type CreateOrderInput struct {
	User            string            `json:"user"`
	GuestUser       *GuestUser        `json:"guestUser"`
	TotalAmount     float64           `json:"totalAmount"`
	Items           []CreateOrderItem `json:"items"`
	ShippingAddress string            `json:"shippingAddress"`
	BillingAddress  string            `json:"billingAddress"`
	PaymentMethod   PaymentMethod     `json:"paymentMethod"`
	PaymentToken    string            `json:"paymentToken"`
}

type UpdateOrderStatusInput struct {
	Status  OrderStatus `json:"status" binding:"required"`
	Message string      `json:"message"`
}

// OrderContact is the user slice exposed on denormalized order reads.
type OrderContact struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	FirstName   string             `bson:"firstName" json:"firstName"`
	LastName    string             `bson:"lastName" json:"lastName"`
	Email       string             `bson:"email" json:"email"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
}

type PopulatedOrderItem struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Quantity int                `bson:"quantity" json:"quantity"`
	Price    float64            `bson:"price" json:"price"`
	Product  PopulatedProduct   `bson:"product" json:"product"`
}

// PopulatedOrder is the flattened projection described in the order read
// model: user expanded to a contact block, items expanded to products with
// category names inlined, payment expanded inline.
type PopulatedOrder struct {
	ID                  primitive.ObjectID   `bson:"_id" json:"id"`
	User                *OrderContact        `bson:"user,omitempty" json:"user,omitempty"`
	GuestUser           *GuestUser           `bson:"guestUser,omitempty" json:"guestUser,omitempty"`
	Items               []PopulatedOrderItem `bson:"items" json:"items"`
	ShippingAddress     string               `bson:"shippingAddress" json:"shippingAddress"`
	BillingAddress      string               `bson:"billingAddress" json:"billingAddress"`
	TotalAmount         float64              `bson:"totalAmount" json:"totalAmount"`
	Status              OrderStatus          `bson:"status" json:"status"`
	CancellationMessage string               `bson:"cancellationMessage,omitempty" json:"cancellationMessage,omitempty"`
	Payment             *Payment             `bson:"paymentDetails,omitempty" json:"paymentDetails,omitempty"`
	CreatedAt           time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// Email returns the notification address for the order's registered or
// guest customer.
func (o PopulatedOrder) Email() string {
	if o.User != nil && o.User.Email != "" {
		return o.User.Email
	}
	if o.GuestUser != nil {
		return o.GuestUser.Email
	}
	return ""
}
