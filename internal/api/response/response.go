package response

import (
	"encoding/json"
	"errors"
	"net/http"

	er "github.com/RoyceAzure/rj/util/rj_error"
)

// Response 所有 API 共用的外層格式
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Envelope client 端解析用, data 延後解碼
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func WriteJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func SuccessJSON(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func CreatedJSON(w http.ResponseWriter, data any, message string) {
	WriteJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func FailJSON(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{Success: false, Message: message})
}

// ErrorJSON AnaError 依 code 對應 http status, 其他錯誤一律 500
func ErrorJSON(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	message := er.ErrStrMap[er.InternalErrorCode]
	var anaErr *er.AnaError
	if errors.As(err, &anaErr) {
		message = anaErr.Error()
	}
	FailJSON(w, status, message)
}

func StatusOf(err error) int {
	var anaErr *er.AnaError
	if !errors.As(err, &anaErr) {
		return http.StatusInternalServerError
	}
	switch anaErr.Code {
	case er.BadRequestCode, er.InvalidArgumentCode:
		return http.StatusBadRequest
	case er.UnauthenticatedCode:
		return http.StatusUnauthorized
	case er.UnauthorizedCode, er.UserDisabledCode:
		return http.StatusForbidden
	case er.NotFoundCode, er.DataNotExistsCode, er.UserNotFoundCode:
		return http.StatusNotFound
	case er.InvalidOperationCode:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
