package db

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrStaleStatus 狀態已被其他請求改變
	ErrStaleStatus = errors.New("artwork status changed concurrently")
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// ExecTx 在同一個 transaction 內執行 fn, fn 回傳錯誤即 rollback
	ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error

	IUserRepository
	IArtworkRepository
	IOrderRepository
	IAddressRepository
	IReviewRepository
	IWishlistRepository
}

type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	SetUserSuspended(ctx context.Context, id uuid.UUID, suspended bool) error
	UpsertArtistProfile(ctx context.Context, profile *model.ArtistProfile) error
	GetArtistProfile(ctx context.Context, userID uuid.UUID) (*model.ArtistProfile, error)
	AddArtistSales(ctx context.Context, userID uuid.UUID, count int) error
	SetArtistRating(ctx context.Context, userID uuid.UUID, avg float64) error
}

type ArtworkFilter struct {
	Statuses []model.ArtworkStatus
	ArtistID *uuid.UUID
	Category string
}

type IArtworkRepository interface {
	CreateArtwork(ctx context.Context, artwork *model.Artwork) error
	GetArtworkByID(ctx context.Context, id uuid.UUID) (*model.Artwork, error)
	GetArtworksByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Artwork, error)
	ListArtworks(ctx context.Context, filter ArtworkFilter) ([]model.Artwork, error)
	// UpdateArtworkStatus 只有目前狀態為 from 才更新, 否則回傳 ErrStaleStatus
	UpdateArtworkStatus(ctx context.Context, id uuid.UUID, from, to model.ArtworkStatus) error
}

type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	SetOrderPaymentRef(ctx context.Context, id uuid.UUID, ref string) error
}

type IAddressRepository interface {
	CreateAddress(ctx context.Context, address *model.Address) error
	GetAddressByID(ctx context.Context, id uuid.UUID) (*model.Address, error)
	ListAddressesByUser(ctx context.Context, userID uuid.UUID) ([]model.Address, error)
}

type IReviewRepository interface {
	CreateReview(ctx context.Context, review *model.Review) error
	ListReviews(ctx context.Context) ([]model.Review, error)
	ListReviewsByArtist(ctx context.Context, artistID uuid.UUID) ([]model.Review, error)
	AverageRating(ctx context.Context, artistID uuid.UUID) (float64, error)
}

type IWishlistRepository interface {
	// ToggleWishlist 回傳切換後是否在清單內
	ToggleWishlist(ctx context.Context, item model.WishlistItem) (bool, error)
	ListWishlist(ctx context.Context, userID uuid.UUID) ([]model.WishlistItem, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db *gorm.DB
	*UserRepo
	*ArtworkRepo
	*OrderRepo
	*AddressRepo
	*ReviewRepo
	*WishlistRepo
}

func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:           db,
		UserRepo:     NewUserRepo(dbDao),
		ArtworkRepo:  NewArtworkRepo(dbDao),
		OrderRepo:    NewOrderRepo(dbDao),
		AddressRepo:  NewAddressRepo(dbDao),
		ReviewRepo:   NewReviewRepo(dbDao),
		WishlistRepo: NewWishlistRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

var (
	_ UnifiedDB           = (*UnifiedDBImpl)(nil)
	_ IUserRepository     = (*UserRepo)(nil)
	_ IArtworkRepository  = (*ArtworkRepo)(nil)
	_ IOrderRepository    = (*OrderRepo)(nil)
	_ IAddressRepository  = (*AddressRepo)(nil)
	_ IReviewRepository   = (*ReviewRepo)(nil)
	_ IWishlistRepository = (*WishlistRepo)(nil)
)
