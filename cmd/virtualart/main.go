package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/api"
	"github.com/RoyceAzure/lab/virtualart/internal/api/handler"
	"github.com/RoyceAzure/lab/virtualart/internal/api/router"
	"github.com/RoyceAzure/lab/virtualart/internal/appcontext"
	"github.com/RoyceAzure/lab/virtualart/internal/config"
)

// @title Virtual Art API
// @version 1.0
// @description 藝術品市集: 目錄, 下單, 藝術家工作室, 後台審核

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.AuthService),
		handler.NewArtworkHandler(app.ArtworkService, app.Images, app.Logger),
		handler.NewArtistHandler(app.UserService, app.ArtworkService, app.ReviewService),
		handler.NewBuyerHandler(app.AddressService, app.OrderService, app.WishlistService, app.ReviewService),
		handler.NewAdminHandler(app.UserService, app.ArtworkService, app.OrderService, app.ReviewService, app.Logger),
		app.AuthService,
	)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.Limiter, app.Logger, router.Options{
		UploadDir:   app.Cf.UploadDir,
		PrintRoutes: true,
	})

	// 設定服務器參數
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
