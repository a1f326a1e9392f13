package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/model"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/google/uuid"
)

// BuyerHandler 地址, 訂單, 收藏, 評論
type BuyerHandler struct {
	addressService  service.IAddressService
	orderService    service.IOrderService
	wishlistService service.IWishlistService
	reviewService   service.IReviewService
}

func NewBuyerHandler(
	addressService service.IAddressService,
	orderService service.IOrderService,
	wishlistService service.IWishlistService,
	reviewService service.IReviewService,
) *BuyerHandler {
	if addressService == nil || orderService == nil || wishlistService == nil || reviewService == nil {
		panic("buyer handler dependencies cannot be nil")
	}
	return &BuyerHandler{
		addressService:  addressService,
		orderService:    orderService,
		wishlistService: wishlistService,
		reviewService:   reviewService,
	}
}

// @Summary list my addresses
// @Tags addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Address} "success"
// @Router /addresses [get]
func (h *BuyerHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	addresses, err := h.addressService.List(r.Context(), profile.User.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(addresses), "")
}

// @Summary create address
// @Tags addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.Address true "address"
// @Success 201 {object} response.Response{data=model.Address} "success"
// @Failure 400 {object} response.Response "missing fields"
// @Router /addresses [post]
func (h *BuyerHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	var req model.Address
	if !decodeJSON(w, r, &req) {
		return
	}
	addr, err := h.addressService.Create(r.Context(), profile.User.ID, req)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, addr, "address added")
}

// @Summary place order
// @Description cod: 作品直接標為 sold; online: 回傳 redirect_url 導向付款頁
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateOrderRequest true "order"
// @Success 201 {object} response.Response{data=dto.CreateOrderResponse} "success"
// @Failure 400 {object} response.Response "InvalidArgumentCode"
// @Failure 409 {object} response.Response "artwork is not available"
// @Router /orders [post]
func (h *BuyerHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	var req dto.CreateOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	method, err := model.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, err.Error()))
		return
	}
	params := service.CreateOrderParams{
		Amount:        req.Amount,
		PaymentMethod: method,
	}
	for _, item := range req.Items {
		id, err := uuid.Parse(item.Product)
		if err != nil {
			response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "invalid product id "+item.Product))
			return
		}
		params.Items = append(params.Items, service.OrderItemParams{ProductID: id, Quantity: item.Quantity})
	}
	switch {
	case req.AddressID != "":
		id, err := uuid.Parse(req.AddressID)
		if err != nil {
			response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "invalid address_id"))
			return
		}
		params.AddressID = &id
	case req.Address != nil:
		params.Address = *req.Address
	default:
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "address is required"))
		return
	}

	res, err := h.orderService.CreateOrder(r.Context(), &profile.User, params)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, dto.CreateOrderResponse{Order: *res.Order, RedirectURL: res.RedirectURL}, "order placed")
}

// @Summary my orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Order} "success"
// @Router /orders/mine [get]
func (h *BuyerHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	orders, err := h.orderService.ListMine(r.Context(), profile.User.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(orders), "")
}

// @Summary my wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.WishlistItem} "success"
// @Router /wishlist [get]
func (h *BuyerHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	items, err := h.wishlistService.List(r.Context(), profile.User.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(items), "")
}

// @Summary toggle wishlist
// @Tags wishlist
// @Produce json
// @Security BearerAuth
// @Param artworkID path string true "artwork id"
// @Success 200 {object} response.Response{data=dto.WishlistToggleResponse} "success"
// @Failure 404 {object} response.Response "artwork not found"
// @Router /wishlist/{artworkID} [post]
func (h *BuyerHandler) ToggleWishlist(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	artworkID, ok := uuidParam(w, r, "artworkID")
	if !ok {
		return
	}
	in, err := h.wishlistService.Toggle(r.Context(), profile.User.ID, artworkID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, dto.WishlistToggleResponse{ArtworkID: artworkID.String(), InWishlist: in}, "")
}

// @Summary review an artwork
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateReviewRequest true "review"
// @Success 201 {object} response.Response{data=model.Review} "success"
// @Failure 400 {object} response.Response "rating must be 1..5"
// @Router /reviews [post]
func (h *BuyerHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	var req dto.CreateReviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	artworkID, err := uuid.Parse(req.ArtworkID)
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "invalid artwork_id"))
		return
	}
	review, err := h.reviewService.Create(r.Context(), profile.User.ID, service.CreateReviewParams{
		ArtworkID: artworkID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, review, "review submitted")
}
