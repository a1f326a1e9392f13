package middleware

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/rs/zerolog"
)

type StatusRecoder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *StatusRecoder) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *StatusRecoder) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusRecoder) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// 記錄 request 請求, 一起處理 recover
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		temp := zerolog.New(os.Stdout).With().Timestamp().Logger()
		logger = &temp
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recoder := &StatusRecoder{ResponseWriter: w}
			start := time.Now()

			defer func() {
				rec := recover()
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				var evt *zerolog.Event
				if rec != nil {
					evt = logger.Error().Str("error", fmt.Sprintf("%v", rec))
					if !recoder.wroteHeader {
						response.FailJSON(recoder, http.StatusInternalServerError, "Internal Server Error")
					}
				} else {
					evt = logger.Info()
				}

				// payload 在外層 middleware 設置, 這裡用 request context 取
				payload := GetTokenPayload(r.Context())
				upn, userID := "unknown", "unknown"
				if payload != nil {
					upn, userID = payload.UPN, payload.UserId.String()
				}
				evt.
					Str("request_id", GetRequestID(r.Context())).
					Str("upn", upn).
					Str("user_id", userID).
					Str("method", r.Method).
					Str("url", r.URL.String()).
					Int("status", recoder.Status()).
					Dur("latency", time.Since(start)).
					Msg("request completed")
			}()

			next.ServeHTTP(recoder, r)
		})
	}
}
