package config

import (
	"os"
	"strings"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const defaultAddr = "0.0.0.0:5000"

// Config holds the complete application configuration, loadable from
// environment variables (SNOWFYE_ prefix), a .env file, or config.yaml.
type Config struct {
	Addr               string        `default:"0.0.0.0:5000" usage:"HTTP listen address"`
	MongoURI           string        `env:"MONGO_URI" usage:"MongoDB connection string (SNOWFYE_MONGO_URI or MONGODB_URI)"`
	MongoDatabase      string        `env:"MONGO_DATABASE" default:"Content" usage:"MongoDB database holding the content collections"`
	TokenSecret        string        `env:"TOKEN_SECRET" usage:"HMAC secret for issued tokens (SNOWFYE_TOKEN_SECRET or ACCESS_TOKEN_SECRET)"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" default:"0s" usage:"Token lifetime, 0 signs claims without exp"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" default:"10s"`
	MaxRequestBodySize int64         `env:"MAX_REQUEST_BODY_SIZE" default:"1048576"`
	LogLevel           string        `env:"LOG_LEVEL" default:"info"`
	Redis              RedisConfig
	Kafka              KafkaConfig
	CORS               CORSConfig
}

// RedisConfig enables the catalog cache when Addr is set.
type RedisConfig struct {
	Addr     string        `env:"ADDR" usage:"Redis address, empty disables the catalog cache"`
	Password string        `env:"PASSWORD"`
	TTL      time.Duration `env:"TTL" default:"15m"`
}

// KafkaConfig enables cart events when Brokers is set. Catalog changes are
// only consumed when the Redis cache is enabled as well.
type KafkaConfig struct {
	Brokers      []string `env:"BROKERS" usage:"Kafka brokers, empty disables cart events"`
	Topic        string   `env:"TOPIC" default:"cart-events"`
	CatalogTopic string   `env:"CATALOG_TOPIC" default:"catalog-changes"`
	GroupID      string   `env:"GROUP_ID" default:"snowfye-server"`
}

type CORSConfig struct {
	Origins []string `env:"ORIGINS" default:"*"`
}

// Load reads .env (if present) and then environment variables and
// config.yaml into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "load .env")
	}
	return load(aconfig.Config{
		EnvPrefix: "SNOWFYE",
		Files:     []string{"config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
}

func load(acfg aconfig.Config) (*Config, error) {
	acfg.SkipFlags = true
	acfg.AllowUnknownEnvs = true
	acfg.AllowUnknownFields = true

	var cfg Config
	if err := aconfig.LoaderFor(&cfg, acfg).Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.MongoURI == "" {
		return nil, errors.New("MongoDB URI is required: set SNOWFYE_MONGO_URI or MONGODB_URI")
	}
	if cfg.TokenSecret == "" {
		return nil, errors.New("token secret is required: set SNOWFYE_TOKEN_SECRET or ACCESS_TOKEN_SECRET")
	}
	return &cfg, nil
}

// applyPlatformDefaults maps the unprefixed variables the service has always
// been deployed with.
func (c *Config) applyPlatformDefaults() {
	if c.MongoURI == "" {
		c.MongoURI = os.Getenv("MONGODB_URI")
	}
	if c.TokenSecret == "" {
		c.TokenSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
	c.Kafka.Brokers = nonEmpty(c.Kafka.Brokers)
}

func nonEmpty(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
