package repository

import "errors"

// Sentinel errors let handlers map repository failures onto the response
// taxonomy (400/404/409) without string matching.
var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrCartNotFound         = errors.New("cart not found")
	ErrCartItemNotFound     = errors.New("cart item not found")
	ErrWishlistItemNotFound = errors.New("wishlist item not found")
	ErrAlreadyReviewed      = errors.New("you already gave your feedback on this product")
	ErrReviewNotFound       = errors.New("review not found or does not belong to you")
)
