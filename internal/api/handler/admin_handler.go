package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	userService    service.IUserService
	artworkService service.IArtworkService
	orderService   service.IOrderService
	reviewService  service.IReviewService
	logger         *zerolog.Logger
}

func NewAdminHandler(
	userService service.IUserService,
	artworkService service.IArtworkService,
	orderService service.IOrderService,
	reviewService service.IReviewService,
	logger *zerolog.Logger,
) *AdminHandler {
	if userService == nil || artworkService == nil || orderService == nil || reviewService == nil || logger == nil {
		panic("admin handler dependencies cannot be nil")
	}
	return &AdminHandler{
		userService:    userService,
		artworkService: artworkService,
		orderService:   orderService,
		reviewService:  reviewService,
		logger:         logger,
	}
}

// @Summary list users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.User} "success"
// @Failure 403 {object} response.Response "not admin"
// @Router /admin/users [get]
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(users), "")
}

// @Summary list all artworks
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Artwork} "success"
// @Router /admin/artworks [get]
func (h *AdminHandler) Artworks(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.artworkService.ListAll(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(artworks), "")
}

// @Summary list all orders
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Order} "success"
// @Router /admin/orders [get]
func (h *AdminHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(orders), "")
}

// @Summary list all reviews
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Review} "success"
// @Router /admin/reviews [get]
func (h *AdminHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviewService.ListAll(r.Context())
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(reviews), "")
}

// @Summary approve or reject an artwork
// @Description partial update, sold 只能經由下單產生
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "artwork id"
// @Param body body dto.UpdateArtworkStatusRequest true "status"
// @Success 200 {object} response.Response{data=model.Artwork} "success"
// @Failure 409 {object} response.Response "invalid transition"
// @Router /admin/artworks/{id} [patch]
func (h *AdminHandler) UpdateArtworkStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.UpdateArtworkStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := model.ParseArtworkStatus(req.Status)
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, err.Error()))
		return
	}
	if status == model.ArtworkSold {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "status sold cannot be set manually"))
		return
	}
	artwork, err := h.artworkService.UpdateStatus(r.Context(), id, status)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, artwork, "artwork "+string(artwork.Status))
}

// @Summary suspend or restore a user
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "user id"
// @Param body body dto.SuspendRequest true "suspended"
// @Success 200 {object} response.Response "success"
// @Failure 409 {object} response.Response "cannot suspend yourself"
// @Router /admin/users/{id}/suspend [patch]
func (h *AdminHandler) SuspendUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentProfile(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var req dto.SuspendRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.userService.SetSuspended(r.Context(), actor.User.ID, id, req.Suspended); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	msg := "user restored"
	if req.Suspended {
		msg = "user suspended"
	}
	response.SuccessJSON(w, nil, msg)
}

// @Summary export orders
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file "orders.xlsx"
// @Router /admin/orders/export [get]
func (h *AdminHandler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	// 先寫進 buffer, 失敗時還能回 JSON 錯誤
	var buf bytes.Buffer
	if err := h.orderService.ExportXLSX(r.Context(), &buf); err != nil {
		response.ErrorJSON(w, err)
		return
	}
	name := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn().Err(err).Msg("write export failed")
	}
}
