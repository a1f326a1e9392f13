package service

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

type IWishlistService interface {
	// Toggle 回傳切換後是否在清單內
	Toggle(ctx context.Context, userID, artworkID uuid.UUID) (bool, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error)
}

type WishlistService struct {
	dbDao db.UnifiedDB
}

func NewWishlistService(dbDao db.UnifiedDB) *WishlistService {
	return &WishlistService{dbDao: dbDao}
}

var _ IWishlistService = (*WishlistService)(nil)

func (s *WishlistService) Toggle(ctx context.Context, userID, artworkID uuid.UUID) (bool, error) {
	if _, err := s.dbDao.GetArtworkByID(ctx, artworkID); err != nil {
		return false, dbErr(err, "artwork not found")
	}
	in, err := s.dbDao.ToggleWishlist(ctx, model.WishlistItem{UserID: userID, ArtworkID: artworkID})
	if err != nil {
		return false, er.New(er.InternalErrorCode, err.Error())
	}
	return in, nil
}

func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	items, err := s.dbDao.ListWishlist(ctx, userID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return items, nil
}
