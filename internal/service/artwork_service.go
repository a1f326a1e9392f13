package service

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type UploadArtworkParams struct {
	Title       string
	Description string
	Category    string
	Price       decimal.Decimal
	ImageURL    string
}

type IArtworkService interface {
	// ListPublished 公開目錄, 只含 published
	ListPublished(ctx context.Context, category string) ([]model.Artwork, error)
	// Get 非擁有者且非 admin 只能看到 published
	Get(ctx context.Context, id uuid.UUID, viewer *model.Profile) (*model.Artwork, error)
	ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error)
	ListAll(ctx context.Context) ([]model.Artwork, error)
	Upload(ctx context.Context, artistID uuid.UUID, params UploadArtworkParams) (*model.Artwork, error)
	// UpdateStatus admin 審核, 只允許合法轉換
	UpdateStatus(ctx context.Context, id uuid.UUID, to model.ArtworkStatus) (*model.Artwork, error)
}

// CategoryChecker 由 seed 檔提供可用分類
type CategoryChecker interface {
	HasCategory(category string) bool
}

type ArtworkService struct {
	dbDao      db.IArtworkRepository
	producer   producer.EventProducer
	categories CategoryChecker
	logger     *zerolog.Logger
}

func NewArtworkService(dbDao db.IArtworkRepository, p producer.EventProducer, categories CategoryChecker, logger *zerolog.Logger) *ArtworkService {
	return &ArtworkService{dbDao: dbDao, producer: p, categories: categories, logger: logger}
}

var _ IArtworkService = (*ArtworkService)(nil)

func (s *ArtworkService) ListPublished(ctx context.Context, category string) ([]model.Artwork, error) {
	artworks, err := s.dbDao.ListArtworks(ctx, db.ArtworkFilter{
		Statuses: []model.ArtworkStatus{model.ArtworkPublished},
		Category: category,
	})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return artworks, nil
}

func (s *ArtworkService) Get(ctx context.Context, id uuid.UUID, viewer *model.Profile) (*model.Artwork, error) {
	artwork, err := s.dbDao.GetArtworkByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, "artwork not found")
	}
	if artwork.Status == model.ArtworkPublished || artwork.Status == model.ArtworkSold {
		return artwork, nil
	}
	if viewer != nil && (viewer.Role() == model.RoleAdmin || viewer.User.ID == artwork.ArtistID) {
		return artwork, nil
	}
	return nil, er.New(er.NotFoundCode, "artwork not found")
}

func (s *ArtworkService) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Artwork, error) {
	artworks, err := s.dbDao.ListArtworks(ctx, db.ArtworkFilter{ArtistID: &artistID})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return artworks, nil
}

func (s *ArtworkService) ListAll(ctx context.Context) ([]model.Artwork, error) {
	artworks, err := s.dbDao.ListArtworks(ctx, db.ArtworkFilter{})
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return artworks, nil
}

func (s *ArtworkService) Upload(ctx context.Context, artistID uuid.UUID, params UploadArtworkParams) (*model.Artwork, error) {
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return nil, er.New(er.InvalidArgumentCode, "title is required")
	}
	category := strings.ToLower(strings.TrimSpace(params.Category))
	if category == "" || (s.categories != nil && !s.categories.HasCategory(category)) {
		return nil, er.New(er.InvalidArgumentCode, "unknown category")
	}
	if !params.Price.IsPositive() {
		return nil, er.New(er.InvalidArgumentCode, "price must be positive")
	}
	if params.ImageURL == "" {
		return nil, er.New(er.InvalidArgumentCode, "image is required")
	}

	artwork := &model.Artwork{
		ID:          uuid.New(),
		ArtistID:    artistID,
		Title:       title,
		Description: params.Description,
		Category:    category,
		Price:       params.Price.Round(2),
		ImageURL:    params.ImageURL,
		Status:      model.ArtworkPending,
	}
	if err := s.dbDao.CreateArtwork(ctx, artwork); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return artwork, nil
}

func (s *ArtworkService) UpdateStatus(ctx context.Context, id uuid.UUID, to model.ArtworkStatus) (*model.Artwork, error) {
	artwork, err := s.dbDao.GetArtworkByID(ctx, id)
	if err != nil {
		return nil, dbErr(err, "artwork not found")
	}
	// sold 只能由下單產生
	if to == model.ArtworkSold || !artwork.Status.CanTransitionTo(to) {
		return nil, er.New(er.InvalidOperationCode, "cannot change artwork status from "+string(artwork.Status)+" to "+string(to))
	}
	from := artwork.Status
	if err := s.dbDao.UpdateArtworkStatus(ctx, id, from, to); err != nil {
		if err == db.ErrStaleStatus {
			return nil, er.New(er.InvalidOperationCode, err.Error())
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	artwork.Status = to
	publish(ctx, s.producer, s.logger, producer.ArtworkStatusChangedEvent, id.String(), producer.ArtworkStatusChangedPayload{
		ArtworkID: id.String(),
		From:      string(from),
		To:        string(to),
	})
	return artwork, nil
}
