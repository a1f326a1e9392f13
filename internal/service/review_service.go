package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

type CreateReviewParams struct {
	ArtworkID uuid.UUID
	Rating    int
	Comment   string
}

type IReviewService interface {
	// Create artist 由作品推得, 建立後重新計算 artist 平均評分
	Create(ctx context.Context, userID uuid.UUID, params CreateReviewParams) (*model.Review, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Review, error)
	ListAll(ctx context.Context) ([]model.Review, error)
}

type ReviewService struct {
	dbDao db.UnifiedDB
}

func NewReviewService(dbDao db.UnifiedDB) *ReviewService {
	return &ReviewService{dbDao: dbDao}
}

var _ IReviewService = (*ReviewService)(nil)

func (s *ReviewService) Create(ctx context.Context, userID uuid.UUID, params CreateReviewParams) (*model.Review, error) {
	if params.Rating < model.MinRating || params.Rating > model.MaxRating {
		return nil, er.New(er.InvalidArgumentCode, "rating must be between 1 and 5")
	}
	var review *model.Review
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		artwork, err := tx.GetArtworkByID(ctx, params.ArtworkID)
		if err != nil {
			return dbErr(err, "artwork not found")
		}
		if artwork.ArtistID == userID {
			return er.New(er.InvalidOperationCode, "cannot review your own artwork")
		}
		review = &model.Review{
			ID:        uuid.New(),
			UserID:    userID,
			ArtistID:  artwork.ArtistID,
			ArtworkID: artwork.ID,
			Rating:    params.Rating,
			Comment:   strings.TrimSpace(params.Comment),
		}
		if err := tx.CreateReview(ctx, review); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		avg, err := tx.AverageRating(ctx, artwork.ArtistID)
		if err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		if err := tx.SetArtistRating(ctx, artwork.ArtistID, avg); err != nil {
			return er.New(er.InternalErrorCode, err.Error())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.dbDao.ListReviewsByArtist(ctx, artistID)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return reviews, nil
}

func (s *ReviewService) ListAll(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.dbDao.ListReviews(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return reviews, nil
}
