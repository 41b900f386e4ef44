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

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"

	LLMProviderGemini   = "gemini"
	LLMProviderScripted = "scripted"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	LLM      LLMConfig
	Schedule ScheduleConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type StoreConfig struct {
	// memory keeps everything in-process; postgres uses DB*
	Driver string `envconfig:"STORE_DRIVER" default:"memory"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
	// AutoMigrate applies embedded migrations on startup
	AutoMigrate bool `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

type RedisConfig struct {
	Enabled     bool          `envconfig:"REDIS_ENABLED" default:"false"`
	Addr        string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password    string        `envconfig:"REDIS_PASSWORD"`
	DB          int           `envconfig:"REDIS_DB" default:"0"`
	QuestionTTL time.Duration `envconfig:"REDIS_QUESTION_TTL" default:"30m"`
}

type LLMConfig struct {
	Provider    string        `envconfig:"LLM_PROVIDER" default:"scripted"`
	APIKey      string        `envconfig:"GEMINI_API_KEY"`
	Model       string        `envconfig:"LLM_MODEL" default:"gemini-2.5-flash"`
	Temperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	Timeout     time.Duration `envconfig:"LLM_TIMEOUT" default:"30s"`
}

type ScheduleConfig struct {
	DayStartHour       int `envconfig:"SCHEDULE_DAY_START_HOUR" default:"9"`
	DayEndHour         int `envconfig:"SCHEDULE_DAY_END_HOUR" default:"17"`
	DefaultSlotMinutes int `envconfig:"SCHEDULE_DEFAULT_SLOT_MINUTES" default:"30"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,X-Request-ID"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,X-Request-ID"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverMemory:
	case StoreDriverPostgres:
		if c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("postgres store requires DB_USER and DB_NAME")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	switch c.LLM.Provider {
	case LLMProviderScripted:
	case LLMProviderGemini:
		if c.LLM.APIKey == "" {
			return fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q", c.LLM.Provider)
	}

	if c.Schedule.DayStartHour < 0 || c.Schedule.DayEndHour > 24 || c.Schedule.DayStartHour >= c.Schedule.DayEndHour {
		return fmt.Errorf("invalid clinic day %d-%d", c.Schedule.DayStartHour, c.Schedule.DayEndHour)
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Store: StoreConfig{
			Driver: StoreDriverMemory,
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			QuestionTTL: time.Minute,
		},
		LLM: LLMConfig{
			Provider: LLMProviderScripted,
			Timeout:  2 * time.Second,
		},
		Schedule: ScheduleConfig{
			DayStartHour:       9,
			DayEndHour:         17,
			DefaultSlotMinutes: 30,
		},
		CORS: CORSConfig{
			AllowOrigins:     []string{"http://localhost:3000"},
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
	}
}
