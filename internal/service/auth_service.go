package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/rj/api/token"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

type RegisterParams struct {
	Email    string
	Password string
	FullName string
	Phone    string
	Address  string
	UserType model.Role
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Profile     *model.Profile
}

type IAuthService interface {
	// Register 建立 user 或 artist 帳號, admin 只能由 seed 建立
	//
	// 錯誤:
	//   - er.InvalidArgumentCode: email/密碼/角色不合法
	//   - er.InvalidOperationCode: email 已被註冊
	Register(ctx context.Context, params RegisterParams) (*LoginResult, error)
	// Login 帳號密碼登入
	//
	// 錯誤:
	//   - er.UnauthenticatedCode: 帳號或密碼錯誤
	//   - er.UserDisabledCode: 帳號已停權
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	// Me 取得 token 對應的 profile
	Me(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

type AuthService struct {
	dbDao      db.IUserRepository
	tokenMaker token.Maker[uuid.UUID]
	tokenTTL   time.Duration
}

func NewAuthService(dbDao db.IUserRepository, tokenMaker token.Maker[uuid.UUID]) *AuthService {
	if dbDao == nil || tokenMaker == nil {
		panic("auth service dependencies cannot be nil")
	}
	return &AuthService{
		dbDao:      dbDao,
		tokenMaker: tokenMaker,
		tokenTTL:   constants.AccessTokenDuration,
	}
}

var _ IAuthService = (*AuthService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (a *AuthService) Register(ctx context.Context, params RegisterParams) (*LoginResult, error) {
	email := normalizeEmail(params.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, er.New(er.InvalidArgumentCode, "invalid email")
	}
	if len(params.Password) < minPasswordLen {
		return nil, er.New(er.InvalidArgumentCode, "password must be at least 8 characters")
	}
	if strings.TrimSpace(params.FullName) == "" {
		return nil, er.New(er.InvalidArgumentCode, "full name is required")
	}
	role := params.UserType
	if role == "" {
		role = model.RoleUser
	}
	switch role {
	case model.RoleUser, model.RoleArtist:
	default:
		return nil, er.New(er.InvalidArgumentCode, "user type must be user or artist")
	}

	if _, err := a.dbDao.GetUserByEmail(ctx, email); err == nil {
		return nil, er.New(er.InvalidOperationCode, "email already registered")
	} else if !errors.Is(err, db.ErrRecordNotFound) {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}

	hash, err := HashPassword(params.Password)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		FullName:     strings.TrimSpace(params.FullName),
		Phone:        params.Phone,
		Address:      params.Address,
		UserType:     role,
		HashPassword: hash,
	}
	if err := a.dbDao.CreateUser(ctx, user); err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return a.issue(user)
}

func (a *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := a.dbDao.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashPassword), []byte(password)); err != nil {
		return nil, er.New(er.UnauthenticatedCode, "invalid email or password")
	}
	if user.Suspended {
		return nil, er.New(er.UserDisabledCode, "account is suspended")
	}
	return a.issue(user)
}

func (a *AuthService) issue(user *model.User) (*LoginResult, error) {
	accessToken, _, err := a.tokenMaker.CreateToken(user.Email, user.ID, a.tokenTTL)
	if err != nil {
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	return &LoginResult{
		AccessToken: accessToken,
		ExpiresAt:   time.Now().Add(a.tokenTTL),
		Profile:     toProfile(user),
	}, nil
}

func (a *AuthService) Me(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	user, err := a.dbDao.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrRecordNotFound) {
			return nil, er.New(er.UnauthenticatedCode, "user no longer exists")
		}
		return nil, er.New(er.InternalErrorCode, err.Error())
	}
	if user.Suspended {
		return nil, er.New(er.UserDisabledCode, "account is suspended")
	}
	return toProfile(user), nil
}

func toProfile(user *model.User) *model.Profile {
	p := &model.Profile{User: *user, Artist: user.Artist}
	p.User.Artist = nil
	return p
}
