package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/payment"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

type OrderItemParams struct {
	ProductID uuid.UUID
	Quantity  int
}

type CreateOrderParams struct {
	Items         []OrderItemParams
	Address       model.Address
	AddressID     *uuid.UUID
	Amount        decimal.Decimal
	PaymentMethod model.PaymentMethod
}

type CreateOrderResult struct {
	Order       *model.Order
	RedirectURL string
}

type IOrderService interface {
	// CreateOrder 以伺服器端價格重新計算金額
	// COD: 作品立即標為 sold
	// online: 建立付款 session, 回傳 RedirectURL
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: items/地址/金額不合法
	//   - er.InvalidOperationCode: 作品已下架或售出
	CreateOrder(ctx context.Context, user *model.User, params CreateOrderParams) (*CreateOrderResult, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
	// ExportXLSX 所有訂單匯出成 xlsx
	ExportXLSX(ctx context.Context, w io.Writer) error
}

type OrderService struct {
	dbDao    db.UnifiedDB
	gateway  payment.Gateway
	producer producer.EventProducer
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewOrderService(dbDao db.UnifiedDB, gateway payment.Gateway, p producer.EventProducer, logger *zerolog.Logger) *OrderService {
	return &OrderService{
		dbDao:    dbDao,
		gateway:  gateway,
		producer: p,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ IOrderService = (*OrderService)(nil)

// mergeItems 同一作品合併數量, 並依 id 排序確保鎖定順序一致
func mergeItems(items []OrderItemParams) ([]OrderItemParams, error) {
	if len(items) == 0 {
		return nil, er.New(er.InvalidArgumentCode, "order has no items")
	}
	qty := make(map[uuid.UUID]int, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, er.New(er.InvalidArgumentCode, "item product is required")
		}
		qty[item.ProductID] += item.Quantity
	}
	merged := make([]OrderItemParams, 0, len(qty))
	for id, q := range qty {
		if !model.ValidCartQty(q) {
			return nil, er.New(er.InvalidArgumentCode, fmt.Sprintf("quantity for %s must be between %d and %d", id, model.MinCartQty, model.MaxCartQty))
		}
		merged = append(merged, OrderItemParams{ProductID: id, Quantity: q})
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ProductID.String() < merged[j].ProductID.String() })
	return merged, nil
}

func (s *OrderService) resolveAddress(ctx context.Context, userID uuid.UUID, params CreateOrderParams) (model.Address, error) {
	if params.AddressID != nil {
		addr, err := s.dbDao.GetAddressByID(ctx, *params.AddressID)
		if err != nil {
			if errors.Is(err, db.ErrRecordNotFound) {
				return model.Address{}, er.New(er.InvalidArgumentCode, "address not found")
			}
			return model.Address{}, er.New(er.InternalErrorCode, err.Error())
		}
		if addr.UserID != userID {
			return model.Address{}, er.New(er.InvalidArgumentCode, "address not found")
		}
		return *addr, nil
	}
	if missing := params.Address.MissingFields(); len(missing) > 0 {
		return model.Address{}, er.New(er.InvalidArgumentCode, fmt.Sprintf("address is missing %v", missing))
	}
	addr := params.Address
	addr.UserID = userID
	return addr, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, user *model.User, params CreateOrderParams) (*CreateOrderResult, error) {
	switch params.PaymentMethod {
	case model.PaymentCOD, model.PaymentOnline:
	default:
		return nil, er.New(er.InvalidArgumentCode, "payment method must be cod or online")
	}
	items, err := mergeItems(params.Items)
	if err != nil {
		return nil, err
	}
	address, err := s.resolveAddress(ctx, user.ID, params)
	if err != nil {
		return nil, err
	}

	var (
		order       *model.Order
		redirectURL string
		artistSales = map[uuid.UUID]int{}
	)
	err = s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		ids := make([]uuid.UUID, len(items))
		for i, item := range items {
			ids[i] = item.ProductID
		}
		artworks, err := tx.GetArtworksByIDs(ctx, ids)
		if err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		byID := make(map[uuid.UUID]model.Artwork, len(artworks))
		for _, a := range artworks {
			byID[a.ID] = a
		}

		subtotal := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(items))
		lineItems := make([]payment.LineItem, 0, len(items))
		for _, item := range items {
			artwork, ok := byID[item.ProductID]
			if !ok || artwork.Status != model.ArtworkPublished {
				return er.New(er.InvalidOperationCode, fmt.Sprintf("artwork %s is not available", item.ProductID))
			}
			subtotal = subtotal.Add(artwork.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			orderItems = append(orderItems, model.OrderItem{
				ProductID: artwork.ID,
				Quantity:  item.Quantity,
				Price:     artwork.Price,
			})
			lineItems = append(lineItems, payment.LineItem{Name: artwork.Title, UnitPrice: artwork.Price, Quantity: item.Quantity})
			artistSales[artwork.ArtistID] += item.Quantity
		}
		totals := model.ComputeTotals(subtotal)
		// 客戶端金額為 0 代表未提供
		if !params.Amount.IsZero() && !params.Amount.Equal(totals.GrandTotal) {
			return er.New(er.InvalidArgumentCode, "order amount does not match current prices")
		}

		grand := totals.GrandTotal
		order = &model.Order{
			ID:            uuid.New(),
			UserID:        user.ID,
			Items:         orderItems,
			Address:       address,
			Amount:        grand,
			TotalAmount:   &grand,
			PaymentMethod: params.PaymentMethod,
			Status:        model.OrderPending,
			OrderDate:     s.now(),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}

		switch params.PaymentMethod {
		case model.PaymentCOD:
			for _, item := range orderItems {
				if err := tx.UpdateArtworkStatus(ctx, item.ProductID, model.ArtworkPublished, model.ArtworkSold); err != nil {
					if errors.Is(err, db.ErrStaleStatus) {
						return er.New(er.InvalidOperationCode, fmt.Sprintf("artwork %s is not available", item.ProductID))
					}
					return er.New(er.InternalErrorCode, err.Error())
				}
			}
			for artistID, count := range artistSales {
				if err := tx.AddArtistSales(ctx, artistID, count); err != nil {
					return er.New(er.InternalErrorCode, err.Error())
				}
			}
		case model.PaymentOnline:
			// 付款 session 建立失敗則整筆訂單 rollback
			sess, err := s.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
				OrderID:    order.ID.String(),
				CustomerID: user.ID.String(),
				Email:      user.Email,
				Items:      lineItems,
				Tax:        totals.Tax,
			})
			if err != nil {
				s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create checkout session")
				return er.New(er.InternalErrorCode, "online payment is unavailable, please try again later")
			}
			if err := tx.SetOrderPaymentRef(ctx, order.ID, sess.ID); err != nil {
				return er.New(er.InternalErrorCode, err.Error())
			}
			order.PaymentRef = sess.ID
			redirectURL = sess.RedirectURL
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	artworkIDs := make([]string, len(order.Items))
	for i, item := range order.Items {
		artworkIDs[i] = item.ProductID.String()
	}
	publish(ctx, s.producer, s.logger, producer.OrderCreatedEvent, order.ID.String(), producer.OrderCreatedPayload{
		OrderID:       order.ID.String(),
		UserID:        user.ID.String(),
		Amount:        order.Amount.String(),
		PaymentMethod: string(order.PaymentMethod),
		ArtworkIDs:    artworkIDs,
	})
	return &CreateOrderResult{Order: order, RedirectURL: redirectURL}, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.dbDao.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.dbDao.ListOrders(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return orders, nil
}

var exportHeader = []string{"Order ID", "User ID", "Order Date", "Status", "Payment", "Items", "Amount", "Recipient", "City", "Country"}

func (s *OrderService) ExportXLSX(ctx context.Context, w io.Writer) error {
	orders, err := s.ListAll(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	header := sheet.AddRow()
	for _, h := range exportHeader {
		header.AddCell().SetValue(h)
	}
	for _, o := range orders {
		qty := 0
		for _, item := range o.Items {
			qty += item.Quantity
		}
		amount, _ := o.Amount.Float64()
		if o.TotalAmount != nil {
			amount, _ = o.TotalAmount.Float64()
		}
		row := sheet.AddRow()
		row.AddCell().SetValue(o.ID.String())
		row.AddCell().SetValue(o.UserID.String())
		row.AddCell().SetValue(o.OrderDate.Format(time.RFC3339))
		row.AddCell().SetValue(string(o.Status))
		row.AddCell().SetValue(string(o.PaymentMethod))
		row.AddCell().SetValue(qty)
		row.AddCell().SetValue(amount)
		row.AddCell().SetValue(o.Address.FirstName + " " + o.Address.LastName)
		row.AddCell().SetValue(o.Address.City)
		row.AddCell().SetValue(o.Address.Country)
	}
	if err := file.Write(w); err != nil {
		return er.New(er.InternalErrorCode, err.Error())
	}
	return nil
}
