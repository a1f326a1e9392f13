package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/rj/api/token"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testTokenKey = "12345678901234567890123456789012"

func codeOf(err error) int {
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) {
		return int(anaErr.Code)
	}
	return -1
}

func requireCode(t *testing.T, want error, got error) {
	t.Helper()
	require.Error(t, got)
	require.Equal(t, codeOf(want), codeOf(got), "unexpected error: %v", got)
}

func newTestTokenMaker(t *testing.T) token.Maker[uuid.UUID] {
	t.Helper()
	maker, err := token.NewPasetoMaker[uuid.UUID](testTokenKey)
	require.NoError(t, err)
	return maker
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func seedUser(t *testing.T, m *memDB, role model.Role) *model.User {
	t.Helper()
	u := &model.User{ID: uuid.New(), Email: uuid.NewString() + "@virtualart.io", FullName: "Test " + string(role), UserType: role}
	require.NoError(t, m.CreateUser(context.Background(), u))
	return u
}

func seedArtwork(t *testing.T, m *memDB, artistID uuid.UUID, title string, price int64, status model.ArtworkStatus) *model.Artwork {
	t.Helper()
	a := &model.Artwork{
		ID:       uuid.New(),
		ArtistID: artistID,
		Title:    title,
		Category: "painting",
		Price:    decimal.NewFromInt(price),
		Status:   status,
	}
	require.NoError(t, m.CreateArtwork(context.Background(), a))
	return a
}

func testAddress() model.Address {
	return model.Address{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "0912345678",
		Street:    "1 Analytical Way",
		City:      "London",
		State:     "Greater London",
		ZipCode:   "N1",
		Country:   "UK",
	}
}
