package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/client"
	"github.com/RoyceAzure/lab/virtualart/internal/config"
	"github.com/RoyceAzure/lab/virtualart/internal/dashboard"
	"github.com/RoyceAzure/lab/virtualart/internal/event"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/session"
	"github.com/rs/zerolog"
)

// adminwatch 以 admin 身分登入, 定時印出後台統計, 可順便審核作品
func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "admin email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "admin password")
	approve := flag.String("approve", "", "artwork id to approve before watching")
	reject := flag.String("reject", "", "artwork id to reject before watching")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	cf := config.GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	api := client.New(cf.APIBaseURL, client.WithLogger(&logger))
	bus := event.NewBus()
	sess := session.NewStore(api, tokenStore(ctx, cf, &logger), bus, &logger)

	if err := sess.Init(ctx); err != nil {
		logger.Warn().Err(err).Msg("restore session")
	}
	if _, ok := sess.Snapshot().Role(); !ok {
		if err := sess.Login(ctx, *email, *password); err != nil {
			logger.Fatal().Str("reason", client.UserMessage(err)).Err(err).Msg("login failed")
		}
	}

	poller := dashboard.NewPoller(api, sess, cf.AdminPollInterval, &logger,
		dashboard.WithOnUpdate(func(m dashboard.Metrics) {
			logger.Info().
				Int("users", m.Users).
				Int("artists", m.Artists).
				Int("artworks", m.Artworks).
				Int("pending", m.PendingArtworks).
				Int("orders", m.Orders).
				Int("reviews", m.Reviews).
				Str("revenue", m.Revenue.StringFixed(2)).
				Msg("dashboard refreshed")
		}))
	if err := poller.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("start dashboard")
	}
	defer poller.Stop()

	if *approve != "" {
		if err := poller.Approve(ctx, *approve); err != nil {
			logger.Error().Err(err).Str("artwork_id", *approve).Msg("approve failed")
		}
	}
	if *reject != "" {
		if err := poller.Reject(ctx, *reject); err != nil {
			logger.Error().Err(err).Str("artwork_id", *reject).Msg("reject failed")
		}
	}

	<-ctx.Done()
	logger.Info().Msg("adminwatch stopped")
}

// tokenStore token 優先存 redis, 重開後不用重新登入; redis 不可用時只留在記憶體
func tokenStore(ctx context.Context, cf *config.Config, logger *zerolog.Logger) storage.Store {
	rc := storage.GetRedisClient(cf.RedisAddr, storage.WithPassword(cf.RedisPassword), storage.WithDB(cf.RedisDB))
	st := storage.NewRedisStore(rc, "adminwatch")
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := st.Ping(pingCtx); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, token kept in memory")
		return storage.NewMemoryStore()
	}
	return st
}
