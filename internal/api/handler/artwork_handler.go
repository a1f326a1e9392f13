package handler

import (
	"net/http"
	"strings"

	"github.com/RoyceAzure/lab/virtualart/internal/api/middleware"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/constants"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
	er "github.com/RoyceAzure/rj/util/rj_error"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ArtworkHandler struct {
	artworkService service.IArtworkService
	images         storage.ImageStore
	logger         *zerolog.Logger
}

func NewArtworkHandler(artworkService service.IArtworkService, images storage.ImageStore, logger *zerolog.Logger) *ArtworkHandler {
	if artworkService == nil || images == nil || logger == nil {
		panic("artwork handler dependencies cannot be nil")
	}
	return &ArtworkHandler{
		artworkService: artworkService,
		images:         images,
		logger:         logger,
	}
}

// @Summary list published artworks
// @Tags artworks
// @Produce json
// @Param category query string false "category filter"
// @Success 200 {object} response.Response{data=[]model.Artwork} "success"
// @Router /artworks [get]
func (h *ArtworkHandler) List(w http.ResponseWriter, r *http.Request) {
	artworks, err := h.artworkService.ListPublished(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(artworks), "")
}

// @Summary artwork detail
// @Description 非 published/sold 的作品只有作者與 admin 看得到
// @Tags artworks
// @Produce json
// @Param id path string true "artwork id"
// @Success 200 {object} response.Response{data=model.Artwork} "success"
// @Failure 404 {object} response.Response "NotFoundCode"
// @Router /artworks/{id} [get]
func (h *ArtworkHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	artwork, err := h.artworkService.Get(r.Context(), id, middleware.GetProfile(r.Context()))
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, artwork, "")
}

// @Summary upload artwork
// @Description multipart form, 圖檔欄位為 image, 上傳後狀態為 pending
// @Tags artworks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "title"
// @Param description formData string false "description"
// @Param category formData string true "category"
// @Param price formData string true "price"
// @Param image formData file true "artwork image"
// @Success 201 {object} response.Response{data=model.Artwork} "success"
// @Failure 400 {object} response.Response "InvalidArgumentCode"
// @Failure 403 {object} response.Response "not an artist"
// @Router /artworks [post]
func (h *ArtworkHandler) Upload(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, constants.MaxUploadSize)
	if err := r.ParseMultipartForm(constants.MaxUploadSize); err != nil {
		response.ErrorJSON(w, er.New(er.BadRequestCode, "invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "price must be a number"))
		return
	}
	// 先擋掉明顯不合法的欄位, 避免留下沒有作品的圖檔
	if strings.TrimSpace(r.FormValue("title")) == "" || !price.IsPositive() {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "title and a positive price are required"))
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, "image is required"))
		return
	}
	defer file.Close()

	imageURL, err := h.images.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.logger.Warn().Err(err).Str("filename", header.Filename).Msg("save artwork image")
		response.ErrorJSON(w, er.New(er.InvalidArgumentCode, err.Error()))
		return
	}

	artwork, err := h.artworkService.Upload(r.Context(), profile.User.ID, service.UploadArtworkParams{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Price:       price,
		ImageURL:    imageURL,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.CreatedJSON(w, artwork, "artwork submitted for review")
}
