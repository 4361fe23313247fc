package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDITCARD"
	PaymentPaypal     PaymentMethod = "PAYPAL"
	PaymentCOD        PaymentMethod = "COD"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCreditCard, PaymentPaypal, PaymentCOD:
		return true
	}
	return false
}

// Payment is created together with its order and immutable afterwards. The
// token is stored verbatim; this system never talks to a processor.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID       primitive.ObjectID `bson:"order" json:"orderId"`
	Amount        float64            `bson:"amount" json:"amount"`
	PaymentMethod PaymentMethod      `bson:"paymentMethod" json:"paymentMethod"`
	PaymentToken  string             `bson:"paymentToken" json:"paymentToken"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

type CreatePaymentInput struct {
	OrderID       string        `json:"orderId" binding:"required"`
	PaymentMethod PaymentMethod `json:"paymentMethod" binding:"required"`
	PaymentToken  string        `json:"paymentToken" binding:"required"`
}
