package config

import (
	"errors"
	"os"
	"strconv"
)

// InsecureJWTSecret is only accepted outside production, and a warning is
// logged at startup whenever it is in use.
const InsecureJWTSecret = "secret_key"

type Config struct {
	Port   string
	AppEnv string

	DBDriver           string
	DBURL              string
	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  int // minutes
	DBDebug            bool
	JWTSecret          string
	UsingInsecureJWT   bool
	LoginRatePerSecond float64
	LoginRateBurst     int

	ReminderCron     string
	GoalRolloverCron string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads the configuration from the environment. godotenv has already
// merged any .env file by the time this runs.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		AppEnv:             getEnv("APP_ENV", "development"),
		DBDriver:           getEnv("DB_DRIVER", "postgres"),
		DBURL:              os.Getenv("DB_URL"),
		DBMaxOpenConns:     getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:     getEnvInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLifetime:  getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		DBDebug:            getEnvBool("DB_DEBUG", false),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		LoginRatePerSecond: getEnvFloat("LOGIN_RATE_PER_SECOND", 1),
		LoginRateBurst:     getEnvInt("LOGIN_RATE_BURST", 5),
		ReminderCron:       getEnv("REMINDER_CRON", "0 9 * * *"),
		GoalRolloverCron:   getEnv("GOAL_ROLLOVER_CRON", "5 0 1 1 *"),

		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return cfg, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = InsecureJWTSecret
		cfg.UsingInsecureJWT = true
	}
	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return cfg, errors.New("DB_DRIVER must be postgres or sqlite")
	}
	if cfg.DBURL == "" {
		if cfg.DBDriver == "postgres" {
			return cfg, errors.New("DB_URL must be set")
		}
		cfg.DBURL = "barberflow.db"
	}
	return cfg, nil
}

func (c Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
