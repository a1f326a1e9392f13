package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// ValidationError 送出前的檢查失敗, 不會發出任何 request
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// BusinessError server 回 success=false
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// HTTPError non-2xx
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// IsAborted request 因 context 取消而中止, 呼叫端應靜默忽略
func IsAborted(err error) bool {
	return errors.Is(err, context.Canceled)
}

func IsUnauthenticated(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 401
}

func IsForbidden(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == 403
}

const genericMessage = "Something went wrong, please try again"

// UserMessage 轉成單一一則使用者提示, 取消時回傳空字串
func UserMessage(err error) string {
	if err == nil || IsAborted(err) {
		return ""
	}
	var (
		validationErr *ValidationError
		businessErr   *BusinessError
		httpErr       *HTTPError
	)
	switch {
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &businessErr):
		return businessErr.Message
	case errors.As(err, &httpErr):
		return httpErr.Message
	}
	log.Debug().Err(err).Msg("unclassified client error")
	return genericMessage
}
