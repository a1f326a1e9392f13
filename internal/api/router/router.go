package router

import (
	"fmt"
	"net/http"

	_ "github.com/RoyceAzure/lab/virtualart/docs"
	"github.com/RoyceAzure/lab/virtualart/internal/api"
	m "github.com/RoyceAzure/lab/virtualart/internal/api/middleware"
	"github.com/RoyceAzure/lab/virtualart/internal/guard"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/ratelimit"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// UploadDir 不為空時以 /uploads/* 提供作品圖檔
	UploadDir string
	// PrintRoutes 啟動時印出路由樹
	PrintRoutes bool
}

func SetupRouter(server *api.Server, tokenMaker token.Maker[uuid.UUID], limiter ratelimit.Limiter, logger *zerolog.Logger, opts Options) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	if opts.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	loadProfile := m.ProfileMiddleware(server.Profiles)
	// 需登入且角色符合
	protected := func(kind guard.Kind) func(chi.Router) {
		return func(r chi.Router) {
			r.Use(m.RequireAuth)
			r.Use(loadProfile)
			r.Use(guard.Middleware(kind, m.ProfileFromRequest))
		}
	}

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.With(m.RateLimitMiddleware(limiter, "auth")).Post("/register", server.AuthHandler.Register)
			r.With(m.RateLimitMiddleware(limiter, "auth")).Post("/login", server.AuthHandler.Login)
			r.With(m.RequireAuth).Get("/me", server.AuthHandler.Me)
		})

		// 公開目錄, 有登入時帶 profile 讓作者看到自己未上架的作品
		r.Group(func(r chi.Router) {
			r.Use(loadProfile)
			r.Get("/artworks", server.ArtworkHandler.List)
			r.Get("/artworks/{id}", server.ArtworkHandler.Get)
		})

		r.Group(func(r chi.Router) {
			protected(guard.KindArtist)(r)
			r.Post("/artworks", server.ArtworkHandler.Upload)
			r.Route("/artist", func(r chi.Router) {
				r.Put("/profile", server.ArtistHandler.SaveProfile)
				r.Get("/artworks", server.ArtistHandler.Artworks)
				r.Get("/reviews", server.ArtistHandler.Reviews)
			})
		})

		r.Group(func(r chi.Router) {
			protected(guard.KindUser)(r)
			r.Get("/addresses", server.BuyerHandler.ListAddresses)
			r.Post("/addresses", server.BuyerHandler.CreateAddress)
			r.Get("/orders/mine", server.BuyerHandler.ListMyOrders)
			r.Post("/orders", server.BuyerHandler.CreateOrder)
			r.Get("/wishlist", server.BuyerHandler.ListWishlist)
			r.Post("/wishlist/{artworkID}", server.BuyerHandler.ToggleWishlist)
			r.Post("/reviews", server.BuyerHandler.CreateReview)
		})

		r.Route("/admin", func(r chi.Router) {
			protected(guard.KindAdmin)(r)
			r.Get("/users", server.AdminHandler.Users)
			r.Patch("/users/{id}/suspend", server.AdminHandler.SuspendUser)
			r.Get("/artworks", server.AdminHandler.Artworks)
			r.Patch("/artworks/{id}", server.AdminHandler.UpdateArtworkStatus)
			r.Get("/orders", server.AdminHandler.Orders)
			r.Get("/orders/export", server.AdminHandler.ExportOrders)
			r.Get("/reviews", server.AdminHandler.Reviews)
		})
	})

	if opts.PrintRoutes {
		// 在設置完所有路由後打印路由樹
		fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			fmt.Printf("%s %s\n", method, route)
			return nil
		}))
	}
	return r
}
