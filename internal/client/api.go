package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
)

// auth

func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*model.Profile, error) {
	var out model.Profile
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// artworks

func (c *Client) ListArtworks(ctx context.Context, category string) ([]model.Artwork, error) {
	path := "/artworks"
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	var out []model.Artwork
	if err := c.Do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetArtwork(ctx context.Context, id string) (*model.Artwork, error) {
	var out model.Artwork
	if err := c.Do(ctx, http.MethodGet, "/artworks/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArtworkUpload multipart 欄位, 圖片放在 image
type ArtworkUpload struct {
	Title       string
	Description string
	Category    string
	Price       string
	Filename    string
	Image       io.Reader
}

func (c *Client) UploadArtwork(ctx context.Context, up ArtworkUpload) (*model.Artwork, error) {
	fields := map[string]string{
		"title":       up.Title,
		"description": up.Description,
		"category":    up.Category,
		"price":       up.Price,
	}
	var out model.Artwork
	err := c.Upload(ctx, "/artworks", fields, FilePart{Field: "image", Filename: up.Filename, Content: up.Image}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// artist

func (c *Client) SaveArtistProfile(ctx context.Context, req dto.ArtistProfileRequest) (*model.ArtistProfile, error) {
	var out model.ArtistProfile
	if err := c.Do(ctx, http.MethodPut, "/artist/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyArtworks(ctx context.Context) ([]model.Artwork, error) {
	var out []model.Artwork
	if err := c.Do(ctx, http.MethodGet, "/artist/artworks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListArtistReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	if err := c.Do(ctx, http.MethodGet, "/artist/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// buyer

func (c *Client) ListAddresses(ctx context.Context) ([]model.Address, error) {
	var out []model.Address
	if err := c.Do(ctx, http.MethodGet, "/addresses", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateAddress(ctx context.Context, addr model.Address) (*model.Address, error) {
	var out model.Address
	if err := c.Do(ctx, http.MethodPost, "/addresses", addr, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, req dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	var out dto.CreateOrderResponse
	if err := c.Do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := c.Do(ctx, http.MethodGet, "/orders/mine", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ToggleWishlist(ctx context.Context, artworkID string) (*dto.WishlistToggleResponse, error) {
	var out dto.WishlistToggleResponse
	if err := c.Do(ctx, http.MethodPost, "/wishlist/"+url.PathEscape(artworkID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListWishlist(ctx context.Context) ([]model.WishlistItem, error) {
	var out []model.WishlistItem
	if err := c.Do(ctx, http.MethodGet, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateReview(ctx context.Context, req dto.CreateReviewRequest) (*model.Review, error) {
	var out model.Review
	if err := c.Do(ctx, http.MethodPost, "/reviews", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// admin

func (c *Client) AdminUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.Do(ctx, http.MethodGet, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminArtworks(ctx context.Context) ([]model.Artwork, error) {
	var out []model.Artwork
	if err := c.Do(ctx, http.MethodGet, "/admin/artworks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	if err := c.Do(ctx, http.MethodGet, "/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminReviews(ctx context.Context) ([]model.Review, error) {
	var out []model.Review
	if err := c.Do(ctx, http.MethodGet, "/admin/reviews", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateArtworkStatus partial update, 只送 status
func (c *Client) UpdateArtworkStatus(ctx context.Context, id string, status model.ArtworkStatus) (*model.Artwork, error) {
	var out model.Artwork
	body := dto.UpdateArtworkStatusRequest{Status: string(status)}
	if err := c.Do(ctx, http.MethodPatch, "/admin/artworks/"+url.PathEscape(id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SuspendUser(ctx context.Context, id string, suspended bool) error {
	return c.Do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id)+"/suspend", dto.SuspendRequest{Suspended: suspended}, nil)
}

func (c *Client) ExportOrders(ctx context.Context, w io.Writer) error {
	return c.Download(ctx, "/admin/orders/export", w)
}
