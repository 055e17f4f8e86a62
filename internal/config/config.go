package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Schedule ScheduleConfig
	SLA      SLAConfig
	Seed     SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SMTPConfig holds outbound mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	AdminsTo []string
}

// ScheduleConfig describes the business-hours window used for SLA math.
// Start and end are minutes from local midnight in the configured time zone.
type ScheduleConfig struct {
	StartMinutes int
	EndMinutes   int
	WorkDays     []time.Weekday
	TimeZone     string
}

// SeedConfig describes the bootstrap admin account created at startup when
// no account with that email exists. An empty Email disables seeding.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// Enabled reports whether a seed admin is configured.
func (s SeedConfig) Enabled() bool {
	return strings.TrimSpace(s.AdminEmail) != "" && s.AdminPassword != ""
}

// SLAConfig carries per-priority thresholds in working hours. Zero or
// negative disables enforcement for that priority.
type SLAConfig struct {
	NoneHours     int
	LowHours      int
	MediumHours   int
	HighHours     int
	CriticalHours int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	workDays, err := parseWorkDays(getEnv("SCHEDULE_WORK_DAYS", "Mon,Tue,Wed,Thu,Fri"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "helpdesk"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "helpdesk@example.com"),
			AdminsTo: splitNonEmpty(os.Getenv("SMTP_ADMIN_RECIPIENTS")),
		},
		Schedule: ScheduleConfig{
			StartMinutes: getEnvAsInt("SCHEDULE_START_MINUTES", 510),
			EndMinutes:   getEnvAsInt("SCHEDULE_END_MINUTES", 1050),
			WorkDays:     workDays,
			TimeZone:     getEnv("SCHEDULE_TIME_ZONE", "Europe/London"),
		},
		SLA: SLAConfig{
			NoneHours:     getEnvAsInt("SLA_NONE_HOURS", 72),
			LowHours:      getEnvAsInt("SLA_LOW_HOURS", 48),
			MediumHours:   getEnvAsInt("SLA_MEDIUM_HOURS", 24),
			HighHours:     getEnvAsInt("SLA_HIGH_HOURS", 8),
			CriticalHours: getEnvAsInt("SLA_CRITICAL_HOURS", 4),
		},
		Seed: SeedConfig{
			AdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
			AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
			AdminName:     getEnv("SEED_ADMIN_NAME", "Helpdesk Admin"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Enabled reports whether SMTP delivery is configured.
func (s SMTPConfig) Enabled() bool {
	return strings.TrimSpace(s.Host) != ""
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

func parseWorkDays(val string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range splitNonEmpty(val) {
		key := strings.ToLower(part)
		if len(key) > 3 {
			key = key[:3]
		}
		day, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("invalid SCHEDULE_WORK_DAYS entry: %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func splitNonEmpty(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
