package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/api/middleware"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
	er "github.com/RoyceAzure/rj/util/rj_error"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{
		authService: authService,
	}
}

func toLoginResponse(res *service.LoginResult) dto.LoginResponse {
	return dto.LoginResponse{
		Token:     res.AccessToken,
		ExpiresAt: res.ExpiresAt,
		Profile:   *res.Profile,
	}
}

// @Summary register
// @Description 建立 user 或 artist 帳號, admin 只能由 seed 建立
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "account info"
// @Success 201 {object} response.Response{data=dto.LoginResponse} "success"
// @Failure 400 {object} response.Response "InvalidArgumentCode"
// @Failure 409 {object} response.Response "email already registered"
// @Failure 429 {object} response.Response "Too Many Requests"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	var role model.Role
	if req.UserType != "" {
		parsed, err := model.ParseRole(req.UserType)
		if err != nil {
			response.ErrorJSON(w, er.New(er.InvalidArgumentCode, err.Error()))
			return
		}
		role = parsed
	}

	res, err := a.authService.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Address:  req.Address,
		UserType: role,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, toLoginResponse(res), "registered")
}

// @Summary login
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "email and password"
// @Success 200 {object} response.Response{data=dto.LoginResponse} "success"
// @Failure 401 {object} response.Response "UnauthenticatedCode"
// @Failure 403 {object} response.Response "UserDisabledCode"
// @Failure 429 {object} response.Response "Too Many Requests"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	res, err := a.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, toLoginResponse(res), "")
}

// @Summary current profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=model.Profile} "success"
// @Failure 401 {object} response.Response "UnauthenticatedCode"
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	payload := middleware.GetTokenPayload(r.Context())
	if payload == nil {
		response.ErrorJSON(w, er.New(er.UnauthenticatedCode, "unauthenticated"))
		return
	}
	profile, err := a.authService.Me(r.Context(), payload.UserId)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, profile, "")
}
