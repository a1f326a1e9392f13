package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/middleware"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxJSONBody = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		response.ErrorJSON(w, er.New(er.BadRequestCode, "invalid request body"))
		return false
	}
	return true
}

func uuidParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// currentProfile 路由已經過 RequireAuth + ProfileMiddleware
func currentProfile(w http.ResponseWriter, r *http.Request) (*model.Profile, bool) {
	profile := middleware.GetProfile(r.Context())
	if profile == nil {
		response.ErrorJSON(w, er.New(er.UnauthenticatedCode, "unauthenticated"))
		return nil, false
	}
	return profile, true
}

// nonNil 讓空清單輸出 [] 而不是 null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
