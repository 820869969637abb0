package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	ResetDB     bool
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	SessionTTL  time.Duration
	SwaggerHost string
	CORSOrigins []string

	LogLevel  string
	LogFormat string

	BcryptCost    int
	InviteBaseURL string

	Mail MailConfig

	SeedAdminUsername string
	SeedAdminPassword string
	SeedCoursesURL    string
}

// MailConfig configures outbound invite mail. An empty SMTPHost selects the simulated sender.
type MailConfig struct {
	From         string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	FailureRate  float64
	Concurrency  int
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return &Config{
		Env:         v.GetString("APP_ENV"),
		ServerPort:  v.GetString("SERVER_PORT"),
		DBDriver:    strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		ResetDB:     v.GetBool("RESET_DB"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		RedisDB:     v.GetInt("REDIS_DB"),
		RedisPass:   v.GetString("REDIS_PASSWORD"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		SessionTTL:  v.GetDuration("SESSION_TTL"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		BcryptCost:    v.GetInt("BCRYPT_COST"),
		InviteBaseURL: strings.TrimRight(v.GetString("INVITE_BASE_URL"), "/"),

		Mail: MailConfig{
			From:         v.GetString("MAIL_FROM"),
			SMTPHost:     v.GetString("SMTP_HOST"),
			SMTPPort:     v.GetString("SMTP_PORT"),
			SMTPUsername: v.GetString("SMTP_USERNAME"),
			SMTPPassword: v.GetString("SMTP_PASSWORD"),
			FailureRate:  v.GetFloat64("MAIL_FAILURE_RATE"),
			Concurrency:  v.GetInt("MAIL_CONCURRENCY"),
		},

		SeedAdminUsername: v.GetString("SEED_ADMIN_USERNAME"),
		SeedAdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
		SeedCoursesURL:    v.GetString("SEED_COURSES_URL"),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_DSN", "user:password@tcp(localhost:3306)/alumni?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("INVITE_BASE_URL", "http://localhost:5173")
	v.SetDefault("MAIL_FROM", "no-reply@alumni.local")
	v.SetDefault("SMTP_PORT", "587")
	v.SetDefault("MAIL_FAILURE_RATE", 0.0)
	v.SetDefault("MAIL_CONCURRENCY", 4)
}

func splitList(csv string) []string {
	var out []string
	for _, s := range strings.Split(csv, ",") {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
