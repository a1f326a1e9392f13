package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": success, "message": message, "data": data})
}

func TestDoAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", map[string]any{"user": map[string]any{"email": "a@b.c", "user_type": "user"}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)

	c.SetToken("tok-1")
	profile, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, model.RoleUser, profile.Role())
}

func TestDoErrorTaxonomy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/business":
			writeEnvelope(w, http.StatusOK, false, "artwork already sold", nil)
		case "/with-message":
			writeEnvelope(w, http.StatusConflict, false, "address required", nil)
		case "/plain":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		}
	}))
	defer srv.Close()
	c := New(srv.URL)

	err := c.Do(context.Background(), http.MethodGet, "/business", nil, nil)
	var businessErr *BusinessError
	require.True(t, errors.As(err, &businessErr))
	assert.Equal(t, "artwork already sold", UserMessage(err))

	err = c.Do(context.Background(), http.MethodGet, "/with-message", nil, nil)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
	assert.Equal(t, "address required", httpErr.Message)

	err = c.Do(context.Background(), http.MethodGet, "/plain", nil, nil)
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "HTTP 502", httpErr.Message)
}

func TestDoAbortIsSilent(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	err := New(srv.URL).Do(ctx, http.MethodGet, "/slow", nil, nil)
	require.Error(t, err)
	assert.True(t, IsAborted(err))
	assert.Empty(t, UserMessage(err))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Please select an address", UserMessage(NewValidationError("address", "Please select an address")))
	assert.Equal(t, genericMessage, UserMessage(errors.New("dial tcp: refused")))
	assert.True(t, IsUnauthenticated(&HTTPError{StatusCode: 401, Message: "HTTP 401"}))
}

func TestUploadArtworkMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary="))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Sunset", r.FormValue("title"))
		assert.Equal(t, "1200", r.FormValue("price"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		body, _ := io.ReadAll(f)
		assert.Equal(t, "sunset.png", hdr.Filename)
		assert.Equal(t, "png-bytes", string(body))

		writeEnvelope(w, http.StatusCreated, true, "uploaded", map[string]any{"title": "Sunset", "status": "pending"})
	}))
	defer srv.Close()

	art, err := New(srv.URL).UploadArtwork(context.Background(), ArtworkUpload{
		Title:    "Sunset",
		Category: "painting",
		Price:    "1200",
		Filename: "sunset.png",
		Image:    strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, model.ArtworkPending, art.Status)
}

func TestCreateOrderRequestShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "online", body["payment_method"])
		items := body["items"].([]any)
		assert.Len(t, items, 1)
		assert.Equal(t, map[string]any{"product": "a1", "quantity": float64(2)}, items[0])
		writeEnvelope(w, http.StatusCreated, true, "", map[string]any{"redirect_url": "https://pay.example/s/1"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL+"/").CreateOrder(context.Background(), dto.CreateOrderRequest{
		Items:         []dto.OrderItemRequest{{Product: "a1", Quantity: 2}},
		PaymentMethod: "online",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/s/1", resp.RedirectURL)
}
