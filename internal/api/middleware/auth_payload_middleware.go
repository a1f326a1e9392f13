package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/google/uuid"
)

// 只解析 token payload, 任何錯誤都不中斷, payload 有錯就不設置 context
func AuthPayloadMiddleware(tokenMaker token.Maker[uuid.UUID]) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, ok := checkAuthPayload(tokenMaker, r)
			if ok {
				ctx := context.WithValue(r.Context(), constants.AuthorizationPayloadKey, payload)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func checkAuthPayload(tokenMaker token.Maker[uuid.UUID], r *http.Request) (*token.Payload[uuid.UUID], bool) {
	fields := strings.Fields(r.Header.Get(string(constants.AuthorizationHeaderKey)))
	if len(fields) < 2 {
		return nil, false
	}
	if strings.ToLower(fields[0]) != string(constants.AuthorizationTypeBearer) {
		return nil, false
	}
	payload, err := tokenMaker.VertifyToken(fields[1])
	if err != nil {
		return nil, false
	}
	return payload, true
}

func GetTokenPayload(ctx context.Context) *token.Payload[uuid.UUID] {
	payload, _ := ctx.Value(constants.AuthorizationPayloadKey).(*token.Payload[uuid.UUID])
	return payload
}
