package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
)

type ReviewRepo struct {
	dbDao *DbDao
}

func NewReviewRepo(dbDao *DbDao) *ReviewRepo {
	return &ReviewRepo{dbDao: dbDao}
}

func (s *ReviewRepo) CreateReview(ctx context.Context, review *model.Review) error {
	return s.dbDao.ctx(ctx).Create(review).Error
}

func (s *ReviewRepo) ListReviews(ctx context.Context) ([]model.Review, error) {
	var reviews []model.Review
	err := s.dbDao.ctx(ctx).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (s *ReviewRepo) ListReviewsByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Review, error) {
	var reviews []model.Review
	err := s.dbDao.ctx(ctx).Where("artist_id = ?", artistID).Order("created_at DESC").Find(&reviews).Error
	return reviews, err
}

func (s *ReviewRepo) AverageRating(ctx context.Context, artistID uuid.UUID) (float64, error) {
	var avg *float64
	err := s.dbDao.ctx(ctx).Model(&model.Review{}).
		Select("AVG(rating)").
		Where("artist_id = ?", artistID).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
