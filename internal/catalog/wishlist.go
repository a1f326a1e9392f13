package catalog

import (
	"context"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
)

type WishlistAPI interface {
	ToggleWishlist(ctx context.Context, artworkID string) (*dto.WishlistToggleResponse, error)
	ListWishlist(ctx context.Context) ([]model.WishlistItem, error)
}

type Wishlist struct {
	api WishlistAPI
	bus *event.Bus

	mu  sync.RWMutex
	ids map[string]bool
}

func NewWishlist(api WishlistAPI, bus *event.Bus) *Wishlist {
	return &Wishlist{api: api, bus: bus, ids: map[string]bool{}}
}

func (w *Wishlist) Load(ctx context.Context) error {
	items, err := w.api.ListWishlist(ctx)
	if err != nil {
		return err
	}
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		ids[it.ArtworkID.String()] = true
	}
	w.mu.Lock()
	w.ids = ids
	w.mu.Unlock()
	return nil
}

func (w *Wishlist) Contains(artworkID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ids[artworkID]
}

// Toggle 以 server 回傳的狀態為準
func (w *Wishlist) Toggle(ctx context.Context, artworkID string) (bool, error) {
	resp, err := w.api.ToggleWishlist(ctx, artworkID)
	if err != nil {
		return w.Contains(artworkID), err
	}
	w.mu.Lock()
	if resp.InWishlist {
		w.ids[artworkID] = true
	} else {
		delete(w.ids, artworkID)
	}
	w.mu.Unlock()

	w.bus.Publish(event.WishlistChanged{ArtworkID: artworkID, InWishlist: resp.InWishlist})
	return resp.InWishlist, nil
}
