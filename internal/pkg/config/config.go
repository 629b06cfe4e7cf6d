package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	Auth      AuthConfig
	Pricing   PricingConfig
	Occupancy OccupancyConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Bangkok"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Bangkok"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

// AuthConfig covers the front-desk staff token only. Guest traffic is
// anonymous; authentication proper lives in the surrounding platform.
type AuthConfig struct {
	StaffTokenSecret string `envconfig:"AUTH_STAFF_TOKEN_SECRET" required:"true"`
}

// PricingConfig is the static rate table: hourly step bands, nightly unit
// rates, weekly discount and service fee percentages.
type PricingConfig struct {
	// Flat prices for 2h..13h stays, one entry per hour band, ascending.
	HourlyBandCents []int64 `envconfig:"PRICING_HOURLY_BAND_CENTS" default:"6000,8000,10000,11500,13000,14500,16000,17000,18000,19000,20000,21000"`
	// Single flat price for any 14-24h stay; also the per-block price past 24h.
	DayBlockCents      int64   `envconfig:"PRICING_DAY_BLOCK_CENTS" default:"25000"`
	StandardNightCents int64   `envconfig:"PRICING_STANDARD_NIGHT_CENTS" default:"42000"`
	PromoNightCents    int64   `envconfig:"PRICING_PROMO_NIGHT_CENTS" default:"35000"`
	WeeklyDiscountPct  float64 `envconfig:"PRICING_WEEKLY_DISCOUNT_PCT" default:"10"`
	ServiceFeePct      float64 `envconfig:"PRICING_SERVICE_FEE_PCT" default:"7"`
}

type OccupancyConfig struct {
	CacheTTL time.Duration `envconfig:"OCCUPANCY_CACHE_TTL" default:"5m"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
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
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Bangkok",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Bangkok",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
		Auth: AuthConfig{
			StaffTokenSecret: "test-staff-secret",
		},
		Pricing: PricingConfig{
			HourlyBandCents:    []int64{6000, 8000, 10000, 11500, 13000, 14500, 16000, 17000, 18000, 19000, 20000, 21000},
			DayBlockCents:      25000,
			StandardNightCents: 42000,
			PromoNightCents:    35000,
			WeeklyDiscountPct:  10,
			ServiceFeePct:      7,
		},
		Occupancy: OccupancyConfig{
			CacheTTL: 5 * time.Minute,
		},
	}
}
