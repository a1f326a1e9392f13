package dto

import (
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/shopspring/decimal"
)

type OrderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest address 與 address_id 擇一
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Address       *model.Address     `json:"address,omitempty"`
	AddressID     string             `json:"address_id,omitempty"`
	Amount        decimal.Decimal    `json:"amount" swaggertype:"string"`
	PaymentMethod string             `json:"payment_method" example:"cod"`
}

type CreateOrderResponse struct {
	Order       model.Order `json:"order"`
	RedirectURL string      `json:"redirect_url,omitempty"`
}

type CreateReviewRequest struct {
	ArtworkID string `json:"artwork_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

type WishlistToggleResponse struct {
	ArtworkID  string `json:"artwork_id"`
	InWishlist bool   `json:"in_wishlist"`
}

// UpdateArtworkStatusRequest partial update, 只接受 status
type UpdateArtworkStatusRequest struct {
	Status string `json:"status" example:"published"`
}
