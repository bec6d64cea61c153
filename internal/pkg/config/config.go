package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values without a safe fallback (none today; the service boots in dev mode without secrets)
// - default: Values common across all environments (timeouts, limits, file paths)
// - optional: Integrations that switch a backend on when present (DATABASE_URL, STRIPE_*, RESEND_API_KEY, JWT_SECRET)
// -----------------------------------------------------------------------------

type Config struct {
	App       AppConfig
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Stripe    StripeConfig
	Mail      MailConfig
	Webhook   WebhookConfig
	RateLimit RateLimitConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Env           string `envconfig:"APP_ENV" default:"development"`
	DevMode       bool   `envconfig:"DEV_MODE" default:"false"`
	SiteURL       string `envconfig:"SITE_URL"`
	PublicSiteURL string `envconfig:"PUBLIC_SITE_URL"`
}

type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8080"`

	// Proxies whose X-Forwarded-For / X-Real-IP are believed for the client IP
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"127.0.0.1,::1"`
}

// Durable storage is optional: without a connection string the ledger and the
// rate limiter run on their memory/file backends.
type DBConfig struct {
	URL            string        `envconfig:"DATABASE_URL"`
	PostgresURL    string        `envconfig:"POSTGRES_URL"`
	MaxConns       int32         `envconfig:"DB_MAX_CONNS" default:"10"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID,Retry-After"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Europe/Vienna"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"3600"` // 1*60*60
}

type StripeConfig struct {
	SecretKey        string `envconfig:"STRIPE_SECRET_KEY"`
	WebhookSecret    string `envconfig:"STRIPE_WEBHOOK_SECRET"`
	PriceIDLive      string `envconfig:"STRIPE_PRICE_ID_LIVE_EUR"`
	PriceIDCourse    string `envconfig:"STRIPE_PRICE_ID_COURSE_EUR"`
	PriceIDSelf      string `envconfig:"STRIPE_PRICE_ID_SELF_EUR"`
	LookupKeyLive    string `envconfig:"STRIPE_LOOKUP_KEY_LIVE" default:"pw_live_eur"`
	LookupKeySelf    string `envconfig:"STRIPE_LOOKUP_KEY_SELF" default:"pw_selfpaced_eur"`
	IgnoreAPIVersion bool   `envconfig:"STRIPE_IGNORE_API_VERSION" default:"true"`
}

type MailConfig struct {
	ResendAPIKey string `envconfig:"RESEND_API_KEY"`
	From         string `envconfig:"MAIL_FROM" default:"KI Kompakt Kurs <noreply@zangerlcoachingdynamics.com>"`
	ReplyTo      string `envconfig:"MAIL_REPLY_TO" default:"lukas@zangerlcoachingdynamics.com"`
}

type WebhookConfig struct {
	LedgerFile        string        `envconfig:"WEBHOOK_LEDGER_FILE" default:"logs/webhook-events.json"`
	SideEffectTimeout time.Duration `envconfig:"WEBHOOK_SIDE_EFFECT_TIMEOUT" default:"20s"`
}

type RateLimitConfig struct {
	CheckoutLimit  int           `envconfig:"RATE_LIMIT_CHECKOUT" default:"20"`
	CheckoutWindow time.Duration `envconfig:"RATE_LIMIT_CHECKOUT_WINDOW" default:"1m"`
	WebhookLimit   int           `envconfig:"RATE_LIMIT_WEBHOOK" default:"60"`
	WebhookWindow  time.Duration `envconfig:"RATE_LIMIT_WEBHOOK_WINDOW" default:"1m"`
	SweepInterval  time.Duration `envconfig:"RATE_LIMIT_SWEEP_INTERVAL" default:"1m"`
}

type AdminConfig struct {
	Emails      []string      `envconfig:"ADMIN_EMAILS" default:"lukas@zangerlcoachingdynamics.com"`
	JWTSecret   string        `envconfig:"JWT_SECRET"`
	JWTDuration time.Duration `envconfig:"JWT_DURATION" default:"1h"`
}

// ConnString returns the first configured Postgres connection string.
func (c DBConfig) ConnString() string {
	for _, v := range []string{c.URL, c.PostgresURL} {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

func (c DBConfig) Enabled() bool {
	return c.ConnString() != ""
}

// PublicURL is the externally visible base URL without a trailing slash.
func (c AppConfig) PublicURL() string {
	for _, v := range []string{c.PublicSiteURL, c.SiteURL} {
		if s := strings.TrimRight(strings.TrimSpace(v), "/"); s != "" {
			return s
		}
	}
	return ""
}

func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LivePriceFallback prefers the live-specific price id over the legacy course id.
func (c StripeConfig) LivePriceFallback() string {
	if c.PriceIDLive != "" {
		return c.PriceIDLive
	}
	return c.PriceIDCourse
}

func (c AdminConfig) IsAdmin(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, e := range c.Emails {
		if strings.EqualFold(strings.TrimSpace(e), email) {
			return true
		}
	}
	return false
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		App: AppConfig{
			Env:     "test",
			SiteURL: "https://kurs.example.com",
		},
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Europe/Vienna",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 3600,
		},
		Stripe: StripeConfig{
			WebhookSecret:    "whsec_test",
			LookupKeyLive:    "pw_live_eur",
			LookupKeySelf:    "pw_selfpaced_eur",
			IgnoreAPIVersion: true,
		},
		Mail: MailConfig{
			From: "Test <noreply@example.com>",
		},
		Webhook: WebhookConfig{
			LedgerFile:        "logs/webhook-events.json",
			SideEffectTimeout: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			CheckoutLimit:  20,
			CheckoutWindow: time.Minute,
			WebhookLimit:   60,
			WebhookWindow:  time.Minute,
			SweepInterval:  time.Minute,
		},
		Admin: AdminConfig{
			Emails:      []string{"admin@example.com"},
			JWTSecret:   "test-secret",
			JWTDuration: time.Hour,
		},
	}
}
