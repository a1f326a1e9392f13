package catalog

import (
	"context"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/shopspring/decimal"
)

type UploadAPI interface {
	UploadArtwork(ctx context.Context, up client.ArtworkUpload) (*model.Artwork, error)
}

// Studio 藝術家上傳作品
type Studio struct {
	api UploadAPI
	bus *event.Bus
}

func NewStudio(api UploadAPI, bus *event.Bus) *Studio {
	return &Studio{api: api, bus: bus}
}

func (s *Studio) Upload(ctx context.Context, up client.ArtworkUpload) (*model.Artwork, error) {
	if strings.TrimSpace(up.Title) == "" {
		return nil, client.NewValidationError("title", "Title is required")
	}
	if strings.TrimSpace(up.Category) == "" {
		return nil, client.NewValidationError("category", "Category is required")
	}
	price, err := decimal.NewFromString(up.Price)
	if err != nil || !price.IsPositive() {
		return nil, client.NewValidationError("price", "Price must be a positive number")
	}
	if up.Image == nil {
		return nil, client.NewValidationError("image", "Please choose an image")
	}

	art, err := s.api.UploadArtwork(ctx, up)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(event.ArtworkCreated{ArtworkID: art.ID.String()})
	return art, nil
}
