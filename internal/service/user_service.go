package service

import (
	"context"
	"errors"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/config"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ArtistProfileParams struct {
	ArtistName      string
	Bio             string
	PortfolioLink   string
	SocialLinks     []string
	YearsExperience int
	Exhibitions     int
	AwardsWon       int
}

type IUserService interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	// SetSuspended admin 停權/復權, admin 不能停權自己
	SetSuspended(ctx context.Context, actorID, userID uuid.UUID, suspended bool) error
	// SaveArtistProfile 第一次呼叫時建立 ArtistProfile
	SaveArtistProfile(ctx context.Context, userID uuid.UUID, params ArtistProfileParams) (*model.ArtistProfile, error)
	// SeedAdmins 開機時依 seed 檔建立 admin, 已存在則略過
	SeedAdmins(ctx context.Context, admins []config.SeedAdmin) error
}

type UserService struct {
	dbDao    db.IUserRepository
	producer producer.EventProducer
	logger   *zerolog.Logger
}

func NewUserService(dbDao db.IUserRepository, p producer.EventProducer, logger *zerolog.Logger) *UserService {
	return &UserService{dbDao: dbDao, producer: p, logger: logger}
}

var _ IUserService = (*UserService)(nil)

func (u *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := u.dbDao.ListUsers(ctx)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return users, nil
}

func (u *UserService) SetSuspended(ctx context.Context, actorID, userID uuid.UUID, suspended bool) error {
	if actorID == userID {
		return er.New(er.InvalidOperationCode, "cannot change suspension of your own account")
	}
	if err := u.dbDao.SetUserSuspended(ctx, userID, suspended); err != nil {
		return dbErr(err, "user not found")
	}
	publish(ctx, u.producer, u.logger, producer.UserSuspendedEvent, userID.String(), producer.UserSuspendedPayload{
		UserID:    userID.String(),
		Suspended: suspended,
	})
	return nil
}

func (u *UserService) SaveArtistProfile(ctx context.Context, userID uuid.UUID, params ArtistProfileParams) (*model.ArtistProfile, error) {
	if strings.TrimSpace(params.ArtistName) == "" {
		return nil, er.New(er.InvalidArgumentCode, "artist name is required")
	}
	if params.YearsExperience < 0 || params.Exhibitions < 0 || params.AwardsWon < 0 {
		return nil, er.New(er.InvalidArgumentCode, "counters cannot be negative")
	}
	user, err := u.dbDao.GetUserByID(ctx, userID)
	if err != nil {
		return nil, dbErr(err, "user not found")
	}
	if user.UserType != model.RoleArtist {
		return nil, er.New(er.UnauthorizedCode, "only artists have an artist profile")
	}

	profile := &model.ArtistProfile{
		UserID:          userID,
		ArtistName:      strings.TrimSpace(params.ArtistName),
		Bio:             params.Bio,
		PortfolioLink:   params.PortfolioLink,
		SocialLinks:     params.SocialLinks,
		YearsExperience: params.YearsExperience,
		Exhibitions:     params.Exhibitions,
		AwardsWon:       params.AwardsWon,
	}
	if profile.SocialLinks == nil {
		profile.SocialLinks = []string{}
	}
	if err := u.dbDao.UpsertArtistProfile(ctx, profile); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	saved, err := u.dbDao.GetArtistProfile(ctx, userID)
	if err != nil {
		return nil, dbErr(err, "artist profile not found")
	}
	return saved, nil
}

func (u *UserService) SeedAdmins(ctx context.Context, admins []config.SeedAdmin) error {
	for _, admin := range admins {
		email := normalizeEmail(admin.Email)
		_, err := u.dbDao.GetUserByEmail(ctx, email)
		if err == nil {
			continue
		}
		if !errors.Is(err, db.ErrRecordNotFound) {
			return err
		}
		hash, err := HashPassword(admin.Password)
		if err != nil {
			return err
		}
		err = u.dbDao.CreateUser(ctx, &model.User{
			ID:           uuid.New(),
			Email:        email,
			FullName:     admin.FullName,
			UserType:     model.RoleAdmin,
			HashPassword: hash,
		})
		if err != nil {
			return err
		}
		u.logger.Info().Str("email", email).Msg("seeded admin account")
	}
	return nil
}
