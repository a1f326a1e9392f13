package db

import (
	"context"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo struct {
	dbDao *DbDao
}

func NewUserRepo(dbDao *DbDao) *UserRepo {
	return &UserRepo{dbDao: dbDao}
}

func (s *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return s.dbDao.ctx(ctx).Create(user).Error
}

func (s *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := s.dbDao.ctx(ctx).Preload("Artist").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.dbDao.ctx(ctx).Preload("Artist").Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserRepo) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.dbDao.ctx(ctx).Order("created_at").Find(&users).Error
	return users, err
}

func (s *UserRepo) SetUserSuspended(ctx context.Context, id uuid.UUID, suspended bool) error {
	res := s.dbDao.ctx(ctx).Model(&model.User{}).Where("id = ?", id).Update("suspended", suspended)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// UpsertArtistProfile 首次儲存時建立, 之後覆寫可編輯欄位, 統計欄位不動
func (s *UserRepo) UpsertArtistProfile(ctx context.Context, profile *model.ArtistProfile) error {
	return s.dbDao.ctx(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"artist_name", "bio", "portfolio_link", "social_links",
			"years_experience", "exhibitions", "awards_won", "updated_at",
		}),
	}).Create(profile).Error
}

func (s *UserRepo) GetArtistProfile(ctx context.Context, userID uuid.UUID) (*model.ArtistProfile, error) {
	var profile model.ArtistProfile
	err := s.dbDao.ctx(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *UserRepo) AddArtistSales(ctx context.Context, userID uuid.UUID, count int) error {
	return s.dbDao.ctx(ctx).Model(&model.ArtistProfile{}).
		Where("user_id = ?", userID).
		Update("total_sales", gorm.Expr("total_sales + ?", count)).Error
}

func (s *UserRepo) SetArtistRating(ctx context.Context, userID uuid.UUID, avg float64) error {
	return s.dbDao.ctx(ctx).Model(&model.ArtistProfile{}).
		Where("user_id = ?", userID).
		Update("avg_rating", avg).Error
}
