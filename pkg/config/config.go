package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config groups the application configuration, read via Viper from the
// environment and optionally from a .env file. Env vars win.
type Config struct {
	App     AppConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Session SessionConfig
	JWT     JWTConfig
	Backup  BackupConfig
}

// AppConfig general application settings.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig PostgreSQL settings. If DatabaseURL is set it is used as the full
// connection string; otherwise the DSN is built from the individual fields.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString returns DatabaseURL when set, otherwise the built DSN.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN builds the PostgreSQL connection string with URL encoding so special
// characters in the password survive.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig HTTP server settings.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr returns the listen address (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionConfig cookie session settings.
type SessionConfig struct {
	CookieName string
	TTLHours   int
	Secure     bool // Secure flag on the cookie; enable behind TLS
}

// JWTConfig bearer token settings for non-browser API clients.
type JWTConfig struct {
	Secret     string
	Expiration int // minutes
	Issuer     string
}

// BackupConfig backup/restore tool settings.
type BackupConfig struct {
	PgDumpPath    string // path to pg_dump binary
	PgRestorePath string // path to pg_restore binary
	Dir           string // where dump files land
}

// Load reads configuration from environment variables and an optional .env
// file in the working directory. Expected names: APP_ENV, DB_HOST, DB_PORT,
// SESSION_TTL_HOURS, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "tijara")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "tijara")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("SESSION_COOKIE_NAME", "tijara_session")
	v.SetDefault("SESSION_TTL_HOURS", 72)
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("JWT_EXPIRATION_MINUTES", 60)
	v.SetDefault("JWT_ISSUER", "tijara")
	v.SetDefault("PG_DUMP_PATH", "pg_dump")
	v.SetDefault("PG_RESTORE_PATH", "pg_restore")
	v.SetDefault("BACKUP_DIR", "./backups")

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASSWORD"),
			DBName:      v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			TTLHours:   v.GetInt("SESSION_TTL_HOURS"),
			Secure:     v.GetBool("SESSION_SECURE"),
		},
		JWT: JWTConfig{
			Secret:     v.GetString("JWT_SECRET"),
			Expiration: v.GetInt("JWT_EXPIRATION_MINUTES"),
			Issuer:     v.GetString("JWT_ISSUER"),
		},
		Backup: BackupConfig{
			PgDumpPath:    v.GetString("PG_DUMP_PATH"),
			PgRestorePath: v.GetString("PG_RESTORE_PATH"),
			Dir:           v.GetString("BACKUP_DIR"),
		},
	}
	return cfg, nil
}
