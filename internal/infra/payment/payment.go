package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
)

var ErrGatewayDisabled = errors.New("online payment is not configured")

type LineItem struct {
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type CheckoutRequest struct {
	OrderID    string
	CustomerID string
	Email      string
	Items      []LineItem
	Tax        decimal.Decimal
}

type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// Gateway 線上付款, 回傳外部付款頁 URL
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type StripeGateway struct {
	client     *session.Client
	successURL string
	cancelURL  string
	currency   string
}

type Option func(*StripeGateway)

// WithBackend 測試時指向 httptest server
func WithBackend(b stripe.Backend) Option {
	return func(g *StripeGateway) {
		g.client.B = b
	}
}

func WithCurrency(currency string) Option {
	return func(g *StripeGateway) {
		g.currency = currency
	}
}

func NewStripeGateway(secretKey, successURL, cancelURL string, opts ...Option) *StripeGateway {
	g := &StripeGateway{
		client: &session.Client{
			B:   stripe.GetBackend(stripe.APIBackend),
			Key: secretKey,
		},
		successURL: successURL,
		cancelURL:  cancelURL,
		currency:   string(stripe.CurrencyUSD),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var _ Gateway = (*StripeGateway)(nil)

func toMinorUnits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (g *StripeGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("checkout for order %s has no items", req.OrderID)
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items)+1)
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(toMinorUnits(item.UnitPrice)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}
	// 2% 稅額以獨立品項呈現
	if req.Tax.IsPositive() {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Tax"),
				},
				UnitAmount: stripe.Int64(toMinorUnits(req.Tax)),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
	}
	if req.Email != "" {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("user_id", req.CustomerID)

	sess, err := g.client.New(params)
	if err != nil {
		return nil, fmt.Errorf("create stripe checkout session: %w", err)
	}
	return &CheckoutSession{ID: sess.ID, RedirectURL: sess.URL}, nil
}

// DisabledGateway STRIPE_SECRET_KEY 未設定時使用
type DisabledGateway struct{}

func (DisabledGateway) CreateCheckout(context.Context, CheckoutRequest) (*CheckoutSession, error) {
	return nil, ErrGatewayDisabled
}
