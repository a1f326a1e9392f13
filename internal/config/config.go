package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	viper "github.com/spf13/viper"
)

/*
init 與 read 分開
init : 設置viper watch 與 onConfigChange
read : 一般讀取, 需要讀寫鎖
*/
var configSingleton *ConfigSingleTon
var muonce sync.Once

type ConfigSingleTon struct {
	Config *Config
	mu     sync.RWMutex
}

type Config struct {
	ServerPort        string        `mapstructure:"SERVER_PORT"`
	DbName            string        `mapstructure:"POSTGRES_DB"`
	DbHost            string        `mapstructure:"POSTGRES_HOST"`
	DbPort            string        `mapstructure:"POSTGRES_PORT"`
	DbUser            string        `mapstructure:"POSTGRES_USER"`
	DbPas             string        `mapstructure:"POSTGRES_PASSWORD"`
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int           `mapstructure:"REDIS_DB"`
	AuthTokenKey      string        `mapstructure:"AUTH_TOKEN_KEY"`
	KafkaBrokers      string        `mapstructure:"KAFKA_BROKERS"`
	KafkaTopic        string        `mapstructure:"KAFKA_TOPIC"`
	LogKafkaTopic     string        `mapstructure:"LOG_KAFKA_TOPIC"`
	StripeSecretKey   string        `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentSuccessURL string        `mapstructure:"PAYMENT_SUCCESS_URL"`
	PaymentCancelURL  string        `mapstructure:"PAYMENT_CANCEL_URL"`
	APIBaseURL        string        `mapstructure:"API_BASE_URL"`
	AdminPollInterval time.Duration `mapstructure:"ADMIN_POLL_INTERVAL"`
	MigrationURL      string        `mapstructure:"MIGRATION_URL"`
	SeedFile          string        `mapstructure:"SEED_FILE"`
	UploadDir         string        `mapstructure:"UPLOAD_DIR"`
	AuthRateLimit     int64         `mapstructure:"AUTH_RATE_LIMIT"`
}

// 沒有 default 的 key 需要 BindEnv, Unmarshal 才讀得到環境變數
var envKeys = []string{
	"POSTGRES_DB", "POSTGRES_USER", "POSTGRES_PASSWORD", "REDIS_PASSWORD",
	"AUTH_TOKEN_KEY", "KAFKA_BROKERS", "STRIPE_SECRET_KEY", "LOG_KAFKA_TOPIC",
}

// Brokers KAFKA_BROKERS 以逗號分隔
func (c *Config) Brokers() []string {
	var out []string
	for _, b := range strings.Split(c.KafkaBrokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

func GetConfig() *Config {
	initConfig()
	configSingleton.mu.RLock()
	defer configSingleton.mu.RUnlock()
	return configSingleton.Config
}

func initConfig() {
	if configSingleton == nil {
		muonce.Do(func() {
			configSingleton = &ConfigSingleTon{}
			cf, err := loadConfig()
			if err != nil {
				log.Fatalf("error read config: %v", err)
			}
			configSingleton.Config = cf
			viper.WatchConfig()
			viper.OnConfigChange(func(e fsnotify.Event) {
				if cf, err := loadConfig(); err == nil {
					configSingleton.Config = cf
				} else {
					log.Printf("failed to reload config file %s: %v", e.Name, err)
				}
			})
		})
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("KAFKA_TOPIC", "virtualart.events")
	v.SetDefault("API_BASE_URL", "http://localhost:8080/api/v1")
	v.SetDefault("ADMIN_POLL_INTERVAL", 5*time.Second)
	v.SetDefault("MIGRATION_URL", "file://internal/infra/repository/db/migrations")
	v.SetDefault("PAYMENT_SUCCESS_URL", "http://localhost:3000/orders?payment=success")
	v.SetDefault("PAYMENT_CANCEL_URL", "http://localhost:3000/checkout?payment=cancelled")
	v.SetDefault("SEED_FILE", "docs/seed.yaml")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("AUTH_RATE_LIMIT", 5)
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
}

/*
單純回傳錯誤, 由外部決定要不要Fatal
.env 不存在時只讀環境變數
*/
func loadConfig() (*Config, error) {
	configSingleton.mu.Lock()
	defer configSingleton.mu.Unlock()

	v := viper.GetViper()
	setDefaults(v)
	envFile := os.Getenv("VIRTUALART_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// LoadFromViper 測試或 CLI 使用, 不經過 singleton
func LoadFromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	return decode(v)
}
