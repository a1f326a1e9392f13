package middleware

import (
	"context"
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

// 驗證 ctx 是否有 token payload
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetTokenPayload(r.Context()) == nil {
			response.ErrorJSON(w, er.New(er.UnauthenticatedCode, "unauthenticated"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type ProfileLoader interface {
	Me(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
}

// ProfileMiddleware 需放在 RequireAuth 之後, 停權帳號在此擋下
func ProfileMiddleware(loader ProfileLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := GetTokenPayload(r.Context())
			if payload == nil {
				next.ServeHTTP(w, r)
				return
			}
			profile, err := loader.Me(r.Context(), payload.UserId)
			if err != nil {
				response.ErrorJSON(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), constants.AuthorizationProfileKey, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetProfile(ctx context.Context) *model.Profile {
	profile, _ := ctx.Value(constants.AuthorizationProfileKey).(*model.Profile)
	return profile
}

// ProfileFromRequest 給 guard.Middleware 使用
func ProfileFromRequest(r *http.Request) *model.Profile {
	return GetProfile(r.Context())
}
