package api

import (
	"github.com/RoyceAzure/lab/virtualart/internal/api/handler"
	"github.com/RoyceAzure/lab/virtualart/internal/api/middleware"
)

type Server struct {
	AuthHandler    *handler.AuthHandler
	ArtworkHandler *handler.ArtworkHandler
	ArtistHandler  *handler.ArtistHandler
	BuyerHandler   *handler.BuyerHandler
	AdminHandler   *handler.AdminHandler
	// Profiles 登入後載入 profile, 停權帳號在此擋下
	Profiles middleware.ProfileLoader
}

func NewServer(
	authHandler *handler.AuthHandler,
	artworkHandler *handler.ArtworkHandler,
	artistHandler *handler.ArtistHandler,
	buyerHandler *handler.BuyerHandler,
	adminHandler *handler.AdminHandler,
	profiles middleware.ProfileLoader,
) *Server {
	return &Server{
		AuthHandler:    authHandler,
		ArtworkHandler: artworkHandler,
		ArtistHandler:  artistHandler,
		BuyerHandler:   buyerHandler,
		AdminHandler:   adminHandler,
		Profiles:       profiles,
	}
}
