package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/payment"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/tealeg/xlsx"
)

type fakeGateway struct {
	calls []payment.CheckoutRequest
	err   error
}

func (f *fakeGateway) CreateCheckout(_ context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &payment.CheckoutSession{ID: "cs_" + req.OrderID, RedirectURL: "https://pay.example/" + req.OrderID}, nil
}

type OrderServiceTestSuite struct {
	suite.Suite
	db       *memDB
	gateway  *fakeGateway
	producer *recordingProducer
	service  *OrderService
	buyer    *model.User
	artist   *model.User
	a1       *model.Artwork
	a2       *model.Artwork
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = newMemDB()
	suite.gateway = &fakeGateway{}
	suite.producer = &recordingProducer{}
	suite.service = NewOrderService(suite.db, suite.gateway, suite.producer, nopLogger())

	suite.buyer = seedUser(suite.T(), suite.db, model.RoleUser)
	suite.artist = seedUser(suite.T(), suite.db, model.RoleArtist)
	require.NoError(suite.T(), suite.db.UpsertArtistProfile(context.Background(), &model.ArtistProfile{UserID: suite.artist.ID, ArtistName: "Studio"}))
	suite.a1 = seedArtwork(suite.T(), suite.db, suite.artist.ID, "Sunset", 500, model.ArtworkPublished)
	suite.a2 = seedArtwork(suite.T(), suite.db, suite.artist.ID, "Harbor", 1250, model.ArtworkPublished)
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) TestCreateCODOrder() {
	ctx := context.Background()
	res, err := suite.service.CreateOrder(ctx, suite.buyer, CreateOrderParams{
		Items: []OrderItemParams{
			{ProductID: suite.a1.ID, Quantity: 2},
			{ProductID: suite.a2.ID, Quantity: 1},
		},
		Address:       testAddress(),
		Amount:        decimal.NewFromInt(2295),
		PaymentMethod: model.PaymentCOD,
	})
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), res.RedirectURL)

	order := res.Order
	// 500*2 + 1250 = 2250, tax 45
	assert.True(suite.T(), order.Amount.Equal(decimal.NewFromInt(2295)))
	require.NotNil(suite.T(), order.TotalAmount)
	assert.Len(suite.T(), order.Items, 2)
	assert.Equal(suite.T(), model.OrderPending, order.Status)
	assert.Equal(suite.T(), suite.buyer.ID, order.Address.UserID)

	a1, _ := suite.db.GetArtworkByID(ctx, suite.a1.ID)
	assert.Equal(suite.T(), model.ArtworkSold, a1.Status)
	profile, _ := suite.db.GetArtistProfile(ctx, suite.artist.ID)
	assert.Equal(suite.T(), 3, profile.TotalSales)
	assert.Empty(suite.T(), suite.gateway.calls)
	assert.Equal(suite.T(), []producer.EventType{producer.OrderCreatedEvent}, suite.producer.types())

	mine, err := suite.service.ListMine(ctx, suite.buyer.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), mine, 1)
}

func (suite *OrderServiceTestSuite) TestCreateOnlineOrder() {
	ctx := context.Background()
	res, err := suite.service.CreateOrder(ctx, suite.buyer, CreateOrderParams{
		Items:         []OrderItemParams{{ProductID: suite.a1.ID, Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: model.PaymentOnline,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "https://pay.example/"+res.Order.ID.String(), res.RedirectURL)
	require.Len(suite.T(), suite.gateway.calls, 1)
	assert.True(suite.T(), suite.gateway.calls[0].Tax.Equal(decimal.NewFromInt(10)))

	stored, err := suite.db.GetOrderByID(ctx, res.Order.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), "cs_"+res.Order.ID.String(), stored.PaymentRef)

	// 線上付款未完成前作品維持 published
	a1, _ := suite.db.GetArtworkByID(ctx, suite.a1.ID)
	assert.Equal(suite.T(), model.ArtworkPublished, a1.Status)
}

func (suite *OrderServiceTestSuite) TestOnlineGatewayFailureRollsBack() {
	ctx := context.Background()
	suite.gateway.err = errors.New("stripe down")
	_, err := suite.service.CreateOrder(ctx, suite.buyer, CreateOrderParams{
		Items:         []OrderItemParams{{ProductID: suite.a1.ID, Quantity: 1}},
		Address:       testAddress(),
		PaymentMethod: model.PaymentOnline,
	})
	requireCode(suite.T(), er.New(er.InternalErrorCode, ""), err)

	orders, _ := suite.db.ListOrders(ctx)
	assert.Empty(suite.T(), orders)
	assert.Empty(suite.T(), suite.producer.types())
}

func (suite *OrderServiceTestSuite) TestCreateOrderValidation() {
	ctx := context.Background()
	base := func() CreateOrderParams {
		return CreateOrderParams{
			Items:         []OrderItemParams{{ProductID: suite.a1.ID, Quantity: 1}},
			Address:       testAddress(),
			PaymentMethod: model.PaymentCOD,
		}
	}

	p := base()
	p.Items = nil
	_, err := suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)

	p = base()
	p.Items[0].Quantity = 100
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)

	p = base()
	p.Address = model.Address{}
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)

	p = base()
	p.PaymentMethod = "barter"
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)

	p = base()
	p.Amount = decimal.NewFromInt(1)
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)

	pending := seedArtwork(suite.T(), suite.db, suite.artist.ID, "Draft", 100, model.ArtworkPending)
	p = base()
	p.Items = []OrderItemParams{{ProductID: pending.ID, Quantity: 1}}
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidOperationCode, ""), err)

	p = base()
	p.Items = []OrderItemParams{{ProductID: uuid.New(), Quantity: 1}}
	_, err = suite.service.CreateOrder(ctx, suite.buyer, p)
	requireCode(suite.T(), er.New(er.InvalidOperationCode, ""), err)

	orders, _ := suite.db.ListOrders(ctx)
	assert.Empty(suite.T(), orders)
}

func (suite *OrderServiceTestSuite) TestCreateOrderWithSavedAddress() {
	ctx := context.Background()
	addr := testAddress()
	addr.ID = uuid.New()
	addr.UserID = suite.buyer.ID
	require.NoError(suite.T(), suite.db.CreateAddress(ctx, &addr))

	res, err := suite.service.CreateOrder(ctx, suite.buyer, CreateOrderParams{
		Items:         []OrderItemParams{{ProductID: suite.a2.ID, Quantity: 1}},
		AddressID:     &addr.ID,
		PaymentMethod: model.PaymentCOD,
	})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), addr.ID, res.Order.Address.ID)

	other := seedUser(suite.T(), suite.db, model.RoleUser)
	_, err = suite.service.CreateOrder(ctx, other, CreateOrderParams{
		Items:         []OrderItemParams{{ProductID: suite.a1.ID, Quantity: 1}},
		AddressID:     &addr.ID,
		PaymentMethod: model.PaymentCOD,
	})
	requireCode(suite.T(), er.New(er.InvalidArgumentCode, ""), err)
}

func (suite *OrderServiceTestSuite) TestExportXLSX() {
	ctx := context.Background()
	_, err := suite.service.CreateOrder(ctx, suite.buyer, CreateOrderParams{
		Items:         []OrderItemParams{{ProductID: suite.a1.ID, Quantity: 3}},
		Address:       testAddress(),
		PaymentMethod: model.PaymentCOD,
	})
	require.NoError(suite.T(), err)

	var buf bytes.Buffer
	require.NoError(suite.T(), suite.service.ExportXLSX(ctx, &buf))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(suite.T(), err)
	require.Len(suite.T(), file.Sheets, 1)
	rows := file.Sheets[0].Rows
	require.Len(suite.T(), rows, 2)
	assert.Equal(suite.T(), "Order ID", rows[0].Cells[0].Value)
	assert.Equal(suite.T(), "cod", rows[1].Cells[4].Value)
	assert.Equal(suite.T(), "London", rows[1].Cells[8].Value)
}
