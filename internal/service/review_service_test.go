package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewCreate(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	svc := NewReviewService(m)
	artist := seedUser(t, m, model.RoleArtist)
	require.NoError(t, m.UpsertArtistProfile(ctx, &model.ArtistProfile{UserID: artist.ID, ArtistName: "A"}))
	buyer := seedUser(t, m, model.RoleUser)
	art := seedArtwork(t, m, artist.ID, "Sunset", 500, model.ArtworkSold)

	r, err := svc.Create(ctx, buyer.ID, CreateReviewParams{ArtworkID: art.ID, Rating: 5, Comment: " lovely "})
	require.NoError(t, err)
	assert.Equal(t, artist.ID, r.ArtistID)
	assert.Equal(t, "lovely", r.Comment)

	_, err = svc.Create(ctx, buyer.ID, CreateReviewParams{ArtworkID: art.ID, Rating: 2})
	require.NoError(t, err)

	profile, _ := m.GetArtistProfile(ctx, artist.ID)
	assert.True(t, profile.AvgRating.Equal(decimal.RequireFromString("3.5")))

	list, err := svc.ListByArtist(ctx, artist.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.Create(ctx, buyer.ID, CreateReviewParams{ArtworkID: art.ID, Rating: 6})
	requireCode(t, er.New(er.InvalidArgumentCode, ""), err)
	_, err = svc.Create(ctx, buyer.ID, CreateReviewParams{ArtworkID: uuid.New(), Rating: 3})
	requireCode(t, er.New(er.NotFoundCode, ""), err)
	_, err = svc.Create(ctx, artist.ID, CreateReviewParams{ArtworkID: art.ID, Rating: 5})
	requireCode(t, er.New(er.InvalidOperationCode, ""), err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestWishlistToggle(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	svc := NewWishlistService(m)
	artist := seedUser(t, m, model.RoleArtist)
	buyer := seedUser(t, m, model.RoleUser)
	art := seedArtwork(t, m, artist.ID, "Sunset", 500, model.ArtworkPublished)

	in, err := svc.Toggle(ctx, buyer.ID, art.ID)
	require.NoError(t, err)
	assert.True(t, in)
	items, _ := svc.List(ctx, buyer.ID)
	assert.Len(t, items, 1)

	in, err = svc.Toggle(ctx, buyer.ID, art.ID)
	require.NoError(t, err)
	assert.False(t, in)
	items, _ = svc.List(ctx, buyer.ID)
	assert.Empty(t, items)

	_, err = svc.Toggle(ctx, buyer.ID, uuid.New())
	requireCode(t, er.New(er.NotFoundCode, ""), err)
}

func TestAddressCreate(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	svc := NewAddressService(m)
	buyer := seedUser(t, m, model.RoleUser)

	addr, err := svc.Create(ctx, buyer.ID, testAddress())
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, addr.UserID)

	incomplete := testAddress()
	incomplete.City = ""
	_, err = svc.Create(ctx, buyer.ID, incomplete)
	requireCode(t, er.New(er.InvalidArgumentCode, ""), err)

	badEmail := testAddress()
	badEmail.Email = "nope"
	_, err = svc.Create(ctx, buyer.ID, badEmail)
	requireCode(t, er.New(er.InvalidArgumentCode, ""), err)

	list, err := svc.List(ctx, buyer.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
