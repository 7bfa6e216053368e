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
// - optional integrations (Redis, AMQP) are disabled when their URL is empty
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Booking BookingConfig
	Redis   RedisConfig
	AMQP    AMQPConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host         string `envconfig:"DB_HOST" default:"localhost"`
	Port         string `envconfig:"DB_PORT" default:"5432"`
	User         string `envconfig:"DB_USER" required:"true"`
	Password     string `envconfig:"DB_PASSWORD" required:"true"`
	DBName       string `envconfig:"DB_NAME" required:"true"`
	SSLMode      string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone     string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns     int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	MinConns     int32  `envconfig:"DB_MIN_CONNS" default:"2"`
	TxMaxRetries int    `envconfig:"DB_TX_MAX_RETRIES" default:"3"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Location"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"false"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// BookingConfig carries the request-level stay rules. The reservation
// engine itself only requires departure > arrival.
type BookingConfig struct {
	MaxStayNights    int `envconfig:"BOOKING_MAX_STAY_NIGHTS" default:"3"`
	MinLeadDays      int `envconfig:"BOOKING_MIN_LEAD_DAYS" default:"1"`
	MaxAdvanceMonths int `envconfig:"BOOKING_MAX_ADVANCE_MONTHS" default:"1"`
}

type RedisConfig struct {
	URL             string        `envconfig:"REDIS_URL"`
	AvailabilityTTL time.Duration `envconfig:"REDIS_AVAILABILITY_TTL" default:"30s"`
}

func (c RedisConfig) Enabled() bool {
	return c.URL != ""
}

type AMQPConfig struct {
	URL          string        `envconfig:"AMQP_URL"`
	Exchange     string        `envconfig:"AMQP_EXCHANGE" default:"campsite.reservations"`
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"2s"`
	BatchSize    int32         `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	MaxAttempts  int32         `envconfig:"OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
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
			Host:         "localhost",
			Port:         "15433", // Test DB port
			User:         "test",
			Password:     "test",
			DBName:       "test_db",
			SSLMode:      "disable",
			TimeZone:     "UTC",
			MaxConns:     20,
			MinConns:     1,
			TxMaxRetries: 3,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Booking: BookingConfig{
			MaxStayNights:    3,
			MinLeadDays:      1,
			MaxAdvanceMonths: 1,
		},
		Redis: RedisConfig{
			AvailabilityTTL: 30 * time.Second,
		},
		AMQP: AMQPConfig{
			Exchange:     "campsite.reservations",
			PollInterval: 2 * time.Second,
			BatchSize:    50,
			MaxAttempts:  10,
		},
	}
}
