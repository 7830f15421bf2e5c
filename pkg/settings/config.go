package settings

import (
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// consts
const (
	Name = "FinHub"
)

// Config ...
type Config struct {
	Name         string   `ignored:"true"`
	Version      string   `ignored:"true"`
	HTTPListen   string   `envconfig:"HTTP_LISTEN" default:":5000"`
	BaseURI      string   `envconfig:"BASE_URI" default:"http://localhost:5000"`
	RedisURI     string   `envconfig:"redis_uri" default:"redis://localhost:6379/1"`
	AllowOrigins []string `envconfig:"allow_origins" default:"*"`
	TrustProxies []string `envconfig:"Trust_Proxies" default:"127.0.0.1,::1"`

	GeminiAPIKey string `envconfig:"gemini_api_key"`
	GeminiModel  string `envconfig:"gemini_model" default:"gemini-1.5-flash"`
	EodhdToken   string `envconfig:"eodhd_token" default:"demo"`
	PresetFile   string `envconfig:"preset_file"`

	QuoteRefresh  time.Duration `envconfig:"quote_refresh" default:"5s"`
	QuoteCacheTTL time.Duration `envconfig:"quote_cache_ttl" default:"60s"`
	ChatRateLimit string        `envconfig:"chat_rate_limit" default:"30-M"`

	HistoryTTL time.Duration `envconfig:"history_ttl" default:"24h"`
	HistoryMax int           `envconfig:"history_max" default:"25"`
}

var (
	// Current 当前配置
	Current = new(Config)
)

func init() {
	if err := envconfig.Process(Name, Current); err != nil {
		log.Printf("envconfig process fail: %s", err)
	}

	Current.Name = Name
	Current.Version = version
}

// Usage 打印配置帮助
func Usage() error {
	log.Printf("ver: %s", Current.Version)
	return envconfig.Usage(Current.Name, Current)
}

// AllowAllOrigins ...
func AllowAllOrigins() bool {
	return 0 == len(Current.AllowOrigins) ||
		1 == len(Current.AllowOrigins) && Current.AllowOrigins[0] == "*"
}
