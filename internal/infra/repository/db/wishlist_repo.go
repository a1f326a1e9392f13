package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
)

type WishlistRepo struct {
	dbDao *DbDao
}

func NewWishlistRepo(dbDao *DbDao) *WishlistRepo {
	return &WishlistRepo{dbDao: dbDao}
}

func (s *WishlistRepo) ToggleWishlist(ctx context.Context, item model.WishlistItem) (bool, error) {
	res := s.dbDao.ctx(ctx).Where("user_id = ? AND artwork_id = ?", item.UserID, item.ArtworkID).Delete(&model.WishlistItem{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	if err := s.dbDao.ctx(ctx).Create(&item).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *WishlistRepo) ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := s.dbDao.ctx(ctx).Where("user_id = ?", userID).Find(&items).Error
	return items, err
}
