package service

import (
	"context"
	"sort"
	"sync"

	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memDB 記憶體版 UnifiedDB, ExecTx 失敗時還原快照
type memDB struct {
	mu        sync.Mutex
	users     map[uuid.UUID]model.User
	artists   map[uuid.UUID]model.ArtistProfile
	artworks  map[uuid.UUID]model.Artwork
	orders    map[uuid.UUID]model.Order
	addresses map[uuid.UUID]model.Address
	reviews   []model.Review
	wishlist  map[model.WishlistItem]bool
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[uuid.UUID]model.User{},
		artists:   map[uuid.UUID]model.ArtistProfile{},
		artworks:  map[uuid.UUID]model.Artwork{},
		orders:    map[uuid.UUID]model.Order{},
		addresses: map[uuid.UUID]model.Address{},
		wishlist:  map[model.WishlistItem]bool{},
	}
}

var _ db.UnifiedDB = (*memDB)(nil)

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (m *memDB) ExecTx(ctx context.Context, fn func(tx db.UnifiedDB) error) error {
	m.mu.Lock()
	snap := &memDB{
		users:     cloneMap(m.users),
		artists:   cloneMap(m.artists),
		artworks:  cloneMap(m.artworks),
		orders:    cloneMap(m.orders),
		addresses: cloneMap(m.addresses),
		reviews:   append([]model.Review(nil), m.reviews...),
		wishlist:  cloneMap(m.wishlist),
	}
	m.mu.Unlock()
	if err := fn(m); err != nil {
		m.mu.Lock()
		m.users, m.artists, m.artworks, m.orders = snap.users, snap.artists, snap.artworks, snap.orders
		m.addresses, m.reviews, m.wishlist = snap.addresses, snap.reviews, snap.wishlist
		m.mu.Unlock()
		return err
	}
	return nil
}

func (m *memDB) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	return nil
}

func (m *memDB) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	if a, ok := m.artists[id]; ok {
		u.Artist = &a
	}
	return &u, nil
}

func (m *memDB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	var id uuid.UUID
	for _, u := range m.users {
		if u.Email == email {
			id = u.ID
		}
	}
	m.mu.Unlock()
	if id == uuid.Nil {
		return nil, db.ErrRecordNotFound
	}
	return m.GetUserByID(ctx, id)
}

func (m *memDB) ListUsers(context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memDB) SetUserSuspended(_ context.Context, id uuid.UUID, suspended bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return db.ErrRecordNotFound
	}
	u.Suspended = suspended
	m.users[id] = u
	return nil
}

func (m *memDB) UpsertArtistProfile(_ context.Context, profile *model.ArtistProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.artists[profile.UserID]; ok {
		profile.TotalSales = old.TotalSales
		profile.AvgRating = old.AvgRating
	}
	m.artists[profile.UserID] = *profile
	return nil
}

func (m *memDB) GetArtistProfile(_ context.Context, userID uuid.UUID) (*model.ArtistProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artists[userID]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &a, nil
}

func (m *memDB) AddArtistSales(_ context.Context, userID uuid.UUID, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.artists[userID]; ok {
		a.TotalSales += count
		m.artists[userID] = a
	}
	return nil
}

func (m *memDB) SetArtistRating(_ context.Context, userID uuid.UUID, avg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.artists[userID]; ok {
		a.AvgRating = decimal.NewFromFloat(avg).Round(2)
		m.artists[userID] = a
	}
	return nil
}

func (m *memDB) CreateArtwork(_ context.Context, artwork *model.Artwork) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artworks[artwork.ID] = *artwork
	return nil
}

func (m *memDB) GetArtworkByID(_ context.Context, id uuid.UUID) (*model.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &a, nil
}

func (m *memDB) GetArtworksByIDs(_ context.Context, ids []uuid.UUID) ([]model.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Artwork
	for _, id := range ids {
		if a, ok := m.artworks[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memDB) ListArtworks(_ context.Context, filter db.ArtworkFilter) ([]model.Artwork, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Artwork
	for _, a := range m.artworks {
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				match = match || a.Status == s
			}
			if !match {
				continue
			}
		}
		if filter.ArtistID != nil && a.ArtistID != *filter.ArtistID {
			continue
		}
		if filter.Category != "" && a.Category != filter.Category {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *memDB) UpdateArtworkStatus(_ context.Context, id uuid.UUID, from, to model.ArtworkStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok || a.Status != from {
		return db.ErrStaleStatus
	}
	a.Status = to
	m.artworks[id] = a
	return nil
}

func (m *memDB) CreateOrder(_ context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	m.orders[order.ID] = *order
	return nil
}

func (m *memDB) GetOrderByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &o, nil
}

func (m *memDB) ListOrdersByUser(_ context.Context, userID uuid.UUID) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memDB) ListOrders(context.Context) ([]model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, nil
}

func (m *memDB) SetOrderPaymentRef(_ context.Context, id uuid.UUID, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := m.orders[id]
	o.PaymentRef = ref
	m.orders[id] = o
	return nil
}

func (m *memDB) CreateAddress(_ context.Context, address *model.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addresses[address.ID] = *address
	return nil
}

func (m *memDB) GetAddressByID(_ context.Context, id uuid.UUID) (*model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.addresses[id]
	if !ok {
		return nil, db.ErrRecordNotFound
	}
	return &a, nil
}

func (m *memDB) ListAddressesByUser(_ context.Context, userID uuid.UUID) ([]model.Address, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Address
	for _, a := range m.addresses {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memDB) CreateReview(_ context.Context, review *model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *memDB) ListReviews(context.Context) ([]model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Review(nil), m.reviews...), nil
}

func (m *memDB) ListReviewsByArtist(_ context.Context, artistID uuid.UUID) ([]model.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Review
	for _, r := range m.reviews {
		if r.ArtistID == artistID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memDB) AverageRating(_ context.Context, artistID uuid.UUID) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sum, n := 0, 0
	for _, r := range m.reviews {
		if r.ArtistID == artistID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

func (m *memDB) ToggleWishlist(_ context.Context, item model.WishlistItem) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.wishlist[item] {
		delete(m.wishlist, item)
		return false, nil
	}
	m.wishlist[item] = true
	return true, nil
}

func (m *memDB) ListWishlist(_ context.Context, userID uuid.UUID) ([]model.WishlistItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.WishlistItem
	for item := range m.wishlist {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

// recordingProducer 收集已發送的事件
type recordingProducer struct {
	mu     sync.Mutex
	events []*producer.DomainEvent
}

func (r *recordingProducer) Publish(_ context.Context, evt *producer.DomainEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *recordingProducer) Close() error { return nil }

func (r *recordingProducer) types() []producer.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]producer.EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType
	}
	return out
}
