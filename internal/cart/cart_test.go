package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	a1 = uuid.MustParse("00000000-0000-0000-0000-0000000000a1")
	a2 = uuid.MustParse("00000000-0000-0000-0000-0000000000a2")
	a3 = uuid.MustParse("00000000-0000-0000-0000-0000000000a3")
)

type fakeCatalog struct {
	artworks []model.Artwork
	err      error
	calls    int
}

func (f *fakeCatalog) ListArtworks(context.Context, string) ([]model.Artwork, error) {
	f.calls++
	return f.artworks, f.err
}

func artwork(id uuid.UUID, price int64) model.Artwork {
	return model.Artwork{ID: id, Title: id.String(), Price: decimal.NewFromInt(price), Status: model.ArtworkPublished}
}

func newCart(t *testing.T, blob string, catalog *fakeCatalog) (*Cart, *storage.MemoryStore, *event.Recorder) {
	t.Helper()
	st := storage.NewMemoryStore()
	if blob != "" {
		require.NoError(t, st.Set(context.Background(), constants.StorageCartKey, blob))
	}
	bus := event.NewBus()
	rec := &event.Recorder{}
	rec.Attach(bus)
	logger := zerolog.Nop()
	return New(st, bus, catalog, &logger), st, rec
}

func stored(t *testing.T, st *storage.MemoryStore) (string, bool) {
	t.Helper()
	v, err := st.Get(context.Background(), constants.StorageCartKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", false
	}
	require.NoError(t, err)
	return v, true
}

func TestScenarioOverBoundDropped(t *testing.T) {
	blob := `{"` + a1.String() + `":2,"` + a2.String() + `":101}`
	catalog := &fakeCatalog{artworks: []model.Artwork{artwork(a1, 500)}}
	c, st, _ := newCart(t, blob, catalog)

	view, err := c.View(context.Background())
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, a1, view.Lines[0].Artwork.ID)
	assert.Equal(t, 2, view.Lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(1000).Equal(view.Lines[0].Subtotal))

	v, ok := stored(t, st)
	require.True(t, ok)
	assert.JSONEq(t, `{"`+a1.String()+`":2}`, v)
}

func TestLoadSanitationIsIdempotent(t *testing.T) {
	blobs := []string{
		`{"x":0,"y":-3,"z":100,"w":"5","v":2.5,"u":3}`,
		`{"a":1,"b":99}`,
		`{}`,
	}
	for _, blob := range blobs {
		c, st, _ := newCart(t, blob, &fakeCatalog{})
		first, err := c.Load(context.Background())
		require.NoError(t, err)
		after, _ := stored(t, st)

		second, err := c.Load(context.Background())
		require.NoError(t, err)
		again, _ := stored(t, st)

		assert.Equal(t, first, second, blob)
		assert.Equal(t, after, again, blob)
		for _, qty := range second {
			assert.True(t, model.ValidCartQty(qty))
		}
	}
}

func TestSanitizeWholeNumberForms(t *testing.T) {
	entries, total, err := Sanitize(`{"a":2.0,"b":1e1,"c":9.9e1,"d":2.5,"e":1e2,"f":0.0}`)
	require.NoError(t, err)
	assert.Equal(t, 6, total)
	assert.Equal(t, model.CartEntries{"a": 2, "b": 10, "c": 99}, entries)
}

func TestLoadAllInvalidClearsKey(t *testing.T) {
	c, st, _ := newCart(t, `{"a":0,"b":500,"c":null}`, &fakeCatalog{})
	entries, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	_, ok := stored(t, st)
	assert.False(t, ok)
}

func TestLoadMalformedWipes(t *testing.T) {
	for _, blob := range []string{`{not json`, `[1,2]`, `null`} {
		c, st, _ := newCart(t, blob, &fakeCatalog{})
		entries, err := c.Load(context.Background())
		require.NoError(t, err, blob)
		assert.Empty(t, entries)
		_, ok := stored(t, st)
		assert.False(t, ok, blob)
	}
}

func TestReconcileExcludesMissingArtworks(t *testing.T) {
	entries := model.CartEntries{a3.String(): 1, a1.String(): 3, a2.String(): 2}
	catalog := []model.Artwork{artwork(a1, 100), artwork(a3, 250)}

	lines := Reconcile(entries, catalog)
	require.Len(t, lines, 2)
	assert.Equal(t, a1, lines[0].Artwork.ID)
	assert.Equal(t, a3, lines[1].Artwork.ID)

	totals := Totals(lines)
	assert.True(t, decimal.NewFromInt(550).Equal(totals.Subtotal))
	assert.True(t, decimal.NewFromInt(11).Equal(totals.Tax))
	assert.True(t, decimal.NewFromInt(561).Equal(totals.GrandTotal))
	assert.True(t, totals.Shipping.IsZero())
}

func TestMissingArtworkStaysInStorage(t *testing.T) {
	blob := `{"` + a1.String() + `":1,"` + a2.String() + `":4}`
	c, st, _ := newCart(t, blob, &fakeCatalog{artworks: []model.Artwork{artwork(a1, 10)}})

	view, err := c.View(context.Background())
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
	v, _ := stored(t, st)
	assert.JSONEq(t, blob, v)
}

func TestMutationsPersistThenNotify(t *testing.T) {
	c, st, rec := newCart(t, "", &fakeCatalog{})
	ctx := context.Background()

	// subscriber 收到通知時 storage 已經寫好
	var seenBlob []string
	unsub := c.bus.Subscribe(event.CartUpdated, func(event.Event) {
		v, _ := stored(t, st)
		seenBlob = append(seenBlob, v)
	})
	defer unsub()

	require.NoError(t, c.SetQuantity(ctx, "a", 2))
	require.NoError(t, c.Add(ctx, "b", 3))
	require.NoError(t, c.Remove(ctx, "a"))

	assert.Equal(t, []event.Event{
		event.CartChanged{Count: 2},
		event.CartChanged{Count: 5},
		event.CartChanged{Count: 3},
	}, rec.Named(event.CartUpdated))
	assert.JSONEq(t, `{"a":2}`, seenBlob[0])
	assert.JSONEq(t, `{"b":3}`, seenBlob[2])

	require.NoError(t, c.Clear(ctx))
	_, ok := stored(t, st)
	assert.False(t, ok)
	assert.Zero(t, c.Count())
}

func TestSetQuantityBounds(t *testing.T) {
	c, st, rec := newCart(t, "", &fakeCatalog{})
	ctx := context.Background()

	var vErr *client.ValidationError
	require.ErrorAs(t, c.SetQuantity(ctx, "a", 0), &vErr)
	require.ErrorAs(t, c.SetQuantity(ctx, "a", 100), &vErr)

	require.NoError(t, c.SetQuantity(ctx, "a", 99))
	require.ErrorAs(t, c.Add(ctx, "a", 1), &vErr)
	assert.Equal(t, 99, c.Entries()["a"])
	_, ok := stored(t, st)
	assert.True(t, ok)
	assert.Len(t, rec.Named(event.CartUpdated), 1)
}

func TestViewEmptyState(t *testing.T) {
	catalog := &fakeCatalog{}
	c, _, _ := newCart(t, "", catalog)
	view, err := c.View(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, EmptyMessage, view.EmptyMessage)
	assert.Zero(t, catalog.calls)

	c, _, _ = newCart(t, `{"`+a2.String()+`":1}`, &fakeCatalog{artworks: []model.Artwork{artwork(a1, 5)}})
	view, err = c.View(context.Background())
	require.NoError(t, err)
	assert.True(t, view.Empty)
}

func TestViewCatalogFailure(t *testing.T) {
	c, _, _ := newCart(t, `{"a":1}`, &fakeCatalog{err: &client.HTTPError{StatusCode: 500, Message: "HTTP 500"}})
	_, err := c.View(context.Background())
	assert.Equal(t, "HTTP 500", client.UserMessage(err))
}
