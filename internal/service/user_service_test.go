package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/virtualart/internal/config"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveArtistProfile(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	svc := NewUserService(m, &recordingProducer{}, nopLogger())
	artist := seedUser(t, m, model.RoleArtist)
	buyer := seedUser(t, m, model.RoleUser)

	profile, err := svc.SaveArtistProfile(ctx, artist.ID, ArtistProfileParams{ArtistName: "Studio K", YearsExperience: 4})
	require.NoError(t, err)
	assert.Equal(t, "Studio K", profile.ArtistName)
	assert.Equal(t, []string{}, profile.SocialLinks)

	require.NoError(t, m.AddArtistSales(ctx, artist.ID, 5))
	profile, err = svc.SaveArtistProfile(ctx, artist.ID, ArtistProfileParams{ArtistName: "Studio K2", SocialLinks: []string{"https://ig.example/k"}})
	require.NoError(t, err)
	assert.Equal(t, "Studio K2", profile.ArtistName)
	assert.Equal(t, 5, profile.TotalSales)

	_, err = svc.SaveArtistProfile(ctx, buyer.ID, ArtistProfileParams{ArtistName: "Nope"})
	requireCode(t, er.New(er.UnauthorizedCode, ""), err)
	_, err = svc.SaveArtistProfile(ctx, artist.ID, ArtistProfileParams{ArtistName: ""})
	requireCode(t, er.New(er.InvalidArgumentCode, ""), err)
	_, err = svc.SaveArtistProfile(ctx, uuid.New(), ArtistProfileParams{ArtistName: "Ghost"})
	requireCode(t, er.New(er.NotFoundCode, ""), err)
}

func TestSetSuspended(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	rec := &recordingProducer{}
	svc := NewUserService(m, rec, nopLogger())
	admin := seedUser(t, m, model.RoleAdmin)
	buyer := seedUser(t, m, model.RoleUser)

	require.NoError(t, svc.SetSuspended(ctx, admin.ID, buyer.ID, true))
	u, _ := m.GetUserByID(ctx, buyer.ID)
	assert.True(t, u.Suspended)
	assert.Equal(t, []producer.EventType{producer.UserSuspendedEvent}, rec.types())

	err := svc.SetSuspended(ctx, admin.ID, admin.ID, true)
	requireCode(t, er.New(er.InvalidOperationCode, ""), err)
	err = svc.SetSuspended(ctx, admin.ID, uuid.New(), true)
	requireCode(t, er.New(er.NotFoundCode, ""), err)
}

func TestSeedAdmins(t *testing.T) {
	ctx := context.Background()
	m := newMemDB()
	svc := NewUserService(m, &recordingProducer{}, nopLogger())
	admins := []config.SeedAdmin{{Email: "Root@VirtualArt.io", FullName: "Root", Password: "change-me-now"}}

	require.NoError(t, svc.SeedAdmins(ctx, admins))
	require.NoError(t, svc.SeedAdmins(ctx, admins))

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleAdmin, users[0].UserType)
	assert.Equal(t, "root@virtualart.io", users[0].Email)

	auth := NewAuthService(m, newTestTokenMaker(t))
	res, err := auth.Login(ctx, "root@virtualart.io", "change-me-now")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, res.Profile.Role())
}
