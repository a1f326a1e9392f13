package checkout

import (
	"context"
	"sort"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/cart"
	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const OrdersPath = "/orders"

// OrderAPI *client.Client 實作
type OrderAPI interface {
	CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error)
}

type PlaceRequest struct {
	Address *model.Address
	Method  model.PaymentMethod
	// Amount 畫面上顯示的總額, 零值由 server 計算
	Amount decimal.Decimal
}

type Result struct {
	Order       model.Order
	RedirectURL string
}

// Flow 把購物車 + 地址 + 付款方式轉成一張訂單
type Flow struct {
	api    OrderAPI
	cart   *cart.Cart
	bus    *event.Bus
	logger *zerolog.Logger
}

func NewFlow(api OrderAPI, c *cart.Cart, bus *event.Bus, logger *zerolog.Logger) *Flow {
	if api == nil || c == nil || bus == nil {
		panic("checkout dependencies cannot be nil")
	}
	return &Flow{api: api, cart: c, bus: bus, logger: logger}
}

/*
Place 送出一次 create order
  - 沒選地址: ValidationError, 不發任何 request
  - cod: 成功後清空購物車, 通知 cartUpdated, 導向 /orders
  - server 已建立訂單後, 清空失敗或 ctx 取消都只記 log, 照樣回傳 Result
  - online: 導向付款頁, 購物車保留到付款確認
  - 失敗: 回傳 server 訊息, 購物車不變
*/
func (f *Flow) Place(ctx context.Context, req PlaceRequest) (*Result, error) {
	if req.Address == nil {
		return nil, client.NewValidationError("address", "Please select a shipping address")
	}
	if _, err := model.ParsePaymentMethod(string(req.Method)); err != nil {
		return nil, client.NewValidationError("payment_method", "Please choose a payment method")
	}
	entries, err := f.cart.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, client.NewValidationError("items", "Your cart is empty")
	}

	body := dto.CreateOrderRequest{
		Items:         itemsOf(entries),
		Address:       req.Address,
		Amount:        req.Amount,
		PaymentMethod: string(req.Method),
	}
	if req.Address.ID != uuid.Nil {
		body.AddressID = req.Address.ID.String()
	}

	resp, err := f.api.CreateOrder(ctx, body)
	if err != nil {
		if !client.IsAborted(err) {
			f.logger.Error().Err(err).Str("payment_method", string(req.Method)).Msg("place order")
		}
		return nil, err
	}
	// 訂單已成立: 之後不再回傳錯誤, 避免呼叫端重送
	// 呼叫端已離開 (ctx 取消) 時仍清空購物車, 只是不導向
	aborted := ctx.Err() != nil

	switch req.Method {
	case model.PaymentCOD:
		if err := f.cart.Clear(context.WithoutCancel(ctx)); err != nil {
			f.logger.Error().Err(err).Str("order_id", resp.Order.ID.String()).Msg("clear cart after order")
		}
		if !aborted {
			f.bus.Publish(event.NavigateTo{Path: OrdersPath})
		}
		return &Result{Order: resp.Order}, nil
	case model.PaymentOnline:
		if resp.RedirectURL == "" {
			return nil, &client.BusinessError{Message: "Payment session could not be started"}
		}
		if !aborted {
			f.bus.Publish(event.NavigateTo{Path: resp.RedirectURL, External: true})
		}
		return &Result{Order: resp.Order, RedirectURL: resp.RedirectURL}, nil
	}
	panic("unreachable")
}

func itemsOf(entries model.CartEntries) []dto.OrderItemRequest {
	items := make([]dto.OrderItemRequest, 0, len(entries))
	for id, qty := range entries {
		items = append(items, dto.OrderItemRequest{Product: id, Quantity: qty})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Product < items[j].Product })
	return items
}
