package appcontext

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/virtualart/internal/config"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/payment"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/producer"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/ratelimit"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/virtualart/internal/infra/storage"
	"github.com/RoyceAzure/lab/virtualart/internal/service"
	"github.com/RoyceAzure/rj/api/token"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// 不印出的敏感欄位
var secretFields = map[string]bool{
	"DbPas":           true,
	"RedisPassword":   true,
	"AuthTokenKey":    true,
	"StripeSecretKey": true,
}

type ApplicationContext struct {
	Cf         *config.Config
	Seed       *config.SeedConfig
	Logger     *zerolog.Logger
	logSink    *producer.KafkaLogWriter
	DbConn     *pgxpool.Pool
	DbDao      db.UnifiedDB
	Redis      *redis.Client
	Limiter    ratelimit.Limiter
	Producer   producer.EventProducer
	Gateway    payment.Gateway
	Images     storage.ImageStore
	TokenMaker token.Maker[uuid.UUID]

	AuthService     service.IAuthService
	UserService     service.IUserService
	ArtworkService  service.IArtworkService
	OrderService    service.IOrderService
	ReviewService   service.IReviewService
	WishlistService service.IWishlistService
	AddressService  service.IAddressService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	v := reflect.ValueOf(*cf)
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fieldName := t.Field(i).Name
		fieldValue := v.Field(i).Interface()
		if secretFields[fieldName] {
			fieldValue = "****"
		}
		fmt.Printf("  \"%s\": \"%v\",\n", fieldName, fieldValue)
	}
	err := app.Init()
	if err != nil {
		app.closeResources()
		return nil, err
	}

	return &app, nil
}

func (app *ApplicationContext) Init() error {
	steps := []func() error{
		app.setUpLogger,
		app.setUpSeed,
		app.setUpdbConn,
		app.setUpMigration,
		app.setUpdbDao,
		app.setUpRedis,
		app.setUpRateLimiter,
		app.setUpProducer,
		app.setUpPaymentGateway,
		app.setUpImageStore,
		app.setTokenMaker,
		app.setUpServices,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	log.Printf("seeding admin accounts...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := app.UserService.SeedAdmins(ctx, app.Seed.Admins); err != nil {
		return fmt.Errorf("seed admins: %w", err)
	}
	log.Printf("seeding admin accounts successed")
	return nil
}

func (app *ApplicationContext) setUpLogger() error {
	log.Printf("Start setup logger")
	var out io.Writer = os.Stdout
	// 有設定 LOG_KAFKA_TOPIC 時同時送一份到 kafka
	if brokers := app.Cf.Brokers(); len(brokers) > 0 && app.Cf.LogKafkaTopic != "" {
		app.logSink = producer.NewKafkaLogWriter(brokers, app.Cf.LogKafkaTopic)
		out = zerolog.MultiLevelWriter(os.Stdout, app.logSink)
	}
	logger := zerolog.New(out).With().Timestamp().Str("service", "virtualart").Logger()
	app.Logger = &logger
	log.Printf("Finish setup logger")
	return nil
}

func (app *ApplicationContext) setUpSeed() error {
	log.Printf("Start setup seed config")
	seed, err := config.LoadSeedConfig(app.Cf.SeedFile)
	if err != nil {
		return fmt.Errorf("load seed file %s: %w", app.Cf.SeedFile, err)
	}
	app.Seed = seed
	log.Printf("Finish setup seed config")
	return nil
}

func (app *ApplicationContext) dbSource() string {
	return db.PostgresURL(app.Cf.DbUser, app.Cf.DbPas, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbName)
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	conn, err := db.NewPool(ctx, app.dbSource())
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpMigration() error {
	log.Printf("Start setup db migration")
	if err := db.RunMigration(app.Cf.MigrationURL, app.dbSource()); err != nil {
		return fmt.Errorf("run migration: %w", err)
	}
	log.Printf("Finish setup db migration")
	return nil
}

func (app *ApplicationContext) setUpdbDao() error {
	log.Printf("Start setup database DAO")
	gormDB, err := db.GetDbConn(app.DbConn)
	if err != nil {
		return err
	}
	app.DbDao = db.NewUnifiedDB(gormDB)
	log.Printf("Finish setup database DAO")
	return nil
}

// setUpRedis redis 連不上不中止啟動, rate limit 退回 in-process
func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	client := storage.GetRedisClient(app.Cf.RedisAddr,
		storage.WithPassword(app.Cf.RedisPassword),
		storage.WithDB(app.Cf.RedisDB))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		app.Logger.Warn().Err(err).Str("addr", app.Cf.RedisAddr).Msg("redis unavailable")
		_ = client.Close()
		log.Printf("Finish setup redis (disabled)")
		return nil
	}
	app.Redis = client
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpRateLimiter() error {
	log.Printf("Start setup rate limiter")
	cfg := ratelimit.DefaultConfig()
	if app.Cf.AuthRateLimit > 0 {
		cfg.Capacity = int(app.Cf.AuthRateLimit)
	}
	if app.Redis != nil {
		app.Limiter = ratelimit.NewRedisTokenBucket(app.Redis, cfg, app.Logger)
	} else {
		app.Limiter = ratelimit.NewTokenBucket(cfg)
	}
	log.Printf("Finish setup rate limiter")
	return nil
}

func (app *ApplicationContext) setUpProducer() error {
	log.Printf("Start setup event producer")
	if brokers := app.Cf.Brokers(); len(brokers) > 0 {
		app.Producer = producer.NewKafkaProducer(brokers, app.Cf.KafkaTopic, app.Logger)
	} else {
		app.Producer = producer.NewNoopProducer(app.Logger)
	}
	log.Printf("Finish setup event producer")
	return nil
}

func (app *ApplicationContext) setUpPaymentGateway() error {
	log.Printf("Start setup payment gateway")
	if app.Cf.StripeSecretKey != "" {
		app.Gateway = payment.NewStripeGateway(app.Cf.StripeSecretKey, app.Cf.PaymentSuccessURL, app.Cf.PaymentCancelURL)
	} else {
		app.Gateway = payment.DisabledGateway{}
	}
	log.Printf("Finish setup payment gateway")
	return nil
}

func (app *ApplicationContext) setUpImageStore() error {
	log.Printf("Start setup image store")
	// 圖檔 URL 掛在 server root 的 /uploads 下
	base := strings.TrimSuffix(strings.TrimRight(app.Cf.APIBaseURL, "/"), "/api/v1") + "/uploads"
	images, err := storage.NewLocalImageStore(app.Cf.UploadDir, base)
	if err != nil {
		return err
	}
	app.Images = images
	log.Printf("Finish setup image store")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewPasetoMaker[uuid.UUID](app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("無法創建 token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpServices() error {
	log.Printf("Start setup services")
	app.AuthService = service.NewAuthService(app.DbDao, app.TokenMaker)
	app.UserService = service.NewUserService(app.DbDao, app.Producer, app.Logger)
	app.ArtworkService = service.NewArtworkService(app.DbDao, app.Producer, app.Seed, app.Logger)
	app.OrderService = service.NewOrderService(app.DbDao, app.Gateway, app.Producer, app.Logger)
	app.ReviewService = service.NewReviewService(app.DbDao)
	app.WishlistService = service.NewWishlistService(app.DbDao)
	app.AddressService = service.NewAddressService(app.DbDao)
	log.Printf("Finish setup services")
	return nil
}

func (app *ApplicationContext) closeResources() {
	if stopper, ok := app.Limiter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			log.Printf("producer close error: %v", err)
		}
	}
	if app.Redis != nil {
		log.Printf("Closing redis connection...")
		_ = app.Redis.Close()
	}
	if app.DbConn != nil {
		log.Printf("Closing database connection...")
		app.DbConn.Close()
	}
	// 關閉 logger
	if app.logSink != nil {
		log.Printf("Shutting down logger...")
		if err := app.logSink.Close(); err != nil {
			log.Printf("log sink close error: %v", err)
		}
	}
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan struct{})
	go func() {
		defer close(done)
		app.closeResources()
		log.Printf("Application shutdown complete")
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
