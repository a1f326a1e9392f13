package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
)

// 訂單建立後只會更新 payment_ref 與 status
type OrderRepo struct {
	dbDao *DbDao
}

func NewOrderRepo(dbDao *DbDao) *OrderRepo {
	return &OrderRepo{dbDao: dbDao}
}

// CreateOrder 連同 items 一起寫入
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.dbDao.ctx(ctx).Create(order).Error
}

func (s *OrderRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var order model.Order
	err := s.dbDao.ctx(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderRepo) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	var orders []model.Order
	err := s.dbDao.ctx(ctx).Preload("Items").Where("user_id = ?", userID).Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) ListOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := s.dbDao.ctx(ctx).Preload("Items").Order("order_date DESC").Find(&orders).Error
	return orders, err
}

func (s *OrderRepo) SetOrderPaymentRef(ctx context.Context, id uuid.UUID, ref string) error {
	return s.dbDao.ctx(ctx).Model(&model.Order{}).Where("id = ?", id).Update("payment_ref", ref).Error
}
