package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
)

type ArtworkRepo struct {
	dbDao *DbDao
}

func NewArtworkRepo(dbDao *DbDao) *ArtworkRepo {
	return &ArtworkRepo{dbDao: dbDao}
}

func (s *ArtworkRepo) CreateArtwork(ctx context.Context, artwork *model.Artwork) error {
	return s.dbDao.ctx(ctx).Create(artwork).Error
}

func (s *ArtworkRepo) GetArtworkByID(ctx context.Context, id uuid.UUID) (*model.Artwork, error) {
	var artwork model.Artwork
	err := s.dbDao.ctx(ctx).First(&artwork, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &artwork, nil
}

func (s *ArtworkRepo) GetArtworksByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Artwork, error) {
	var artworks []model.Artwork
	if len(ids) == 0 {
		return artworks, nil
	}
	err := s.dbDao.ctx(ctx).Where("id IN ?", ids).Find(&artworks).Error
	return artworks, err
}

func (s *ArtworkRepo) ListArtworks(ctx context.Context, filter ArtworkFilter) ([]model.Artwork, error) {
	var artworks []model.Artwork
	q := s.dbDao.ctx(ctx).Model(&model.Artwork{})
	if len(filter.Statuses) > 0 {
		q = q.Where("status IN ?", filter.Statuses)
	}
	if filter.ArtistID != nil {
		q = q.Where("artist_id = ?", *filter.ArtistID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	err := q.Order("created_at DESC").Find(&artworks).Error
	return artworks, err
}

func (s *ArtworkRepo) UpdateArtworkStatus(ctx context.Context, id uuid.UUID, from, to model.ArtworkStatus) error {
	res := s.dbDao.ctx(ctx).Model(&model.Artwork{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}
