package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/virtualart/internal/api/dto"
	"github.com/RoyceAzure/lab/virtualart/internal/api/response"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
)

type ArtistHandler struct {
	userService    service.IUserService
	artworkService service.IArtworkService
	reviewService  service.IReviewService
}

func NewArtistHandler(userService service.IUserService, artworkService service.IArtworkService, reviewService service.IReviewService) *ArtistHandler {
	if userService == nil || artworkService == nil || reviewService == nil {
		panic("artist handler dependencies cannot be nil")
	}
	return &ArtistHandler{
		userService:    userService,
		artworkService: artworkService,
		reviewService:  reviewService,
	}
}

// @Summary save artist profile
// @Description 第一次儲存時建立 artist profile
// @Tags artist
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ArtistProfileRequest true "profile"
// @Success 200 {object} response.Response{data=model.ArtistProfile} "success"
// @Failure 400 {object} response.Response "InvalidArgumentCode"
// @Router /artist/profile [put]
func (h *ArtistHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	var req dto.ArtistProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	saved, err := h.userService.SaveArtistProfile(r.Context(), profile.User.ID, service.ArtistProfileParams{
		ArtistName:      req.ArtistName,
		Bio:             req.Bio,
		PortfolioLink:   req.PortfolioLink,
		SocialLinks:     req.SocialLinks,
		YearsExperience: req.YearsExperience,
		Exhibitions:     req.Exhibitions,
		AwardsWon:       req.AwardsWon,
	})
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, saved, "profile saved")
}

// @Summary my artworks
// @Tags artist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Artwork} "success"
// @Router /artist/artworks [get]
func (h *ArtistHandler) Artworks(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	artworks, err := h.artworkService.ListByArtist(r.Context(), profile.User.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(artworks), "")
}

// @Summary reviews of my artworks
// @Tags artist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Review} "success"
// @Router /artist/reviews [get]
func (h *ArtistHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	profile, ok := currentProfile(w, r)
	if !ok {
		return
	}
	reviews, err := h.reviewService.ListByArtist(r.Context(), profile.User.ID)
	if err != nil {
		response.ErrorJSON(w, err)
		return
	}
	response.SuccessJSON(w, nonNil(reviews), "")
}
