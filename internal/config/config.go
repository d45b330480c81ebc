package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration. It is built once at startup
// and never mutated afterwards.
type Config struct {
	ServerPort int

	// Store. A non-empty MongoURI selects the MongoDB store, otherwise the
	// SQLite database at DatabasePath is used.
	MongoURI     string
	DatabaseName string
	DatabasePath string

	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AllowedOrigins []string

	LogLevel  string
	LogFormat string // "console" or "json"

	PingPrivileged bool
	PingTimeout    time.Duration

	BcryptCost int
}

// DefaultAllowedOrigins is the CORS allow-list used when CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://ls.stealz.moe",
	"http://localhost",
	"http://127.0.0.1:3000",
	"http://127.0.0.1",
}

var supportedAlgorithms = map[string]bool{"HS256": true, "HS384": true, "HS512": true}

// UseMongo reports whether the MongoDB store is configured.
func (c *Config) UseMongo() bool {
	return c.MongoURI != ""
}

// Load builds the configuration from defaults, an optional .env file,
// environment variables and finally command-line flags, in that order of
// increasing precedence. args excludes the program name.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("linkstart", pflag.ContinueOnError)
	envFile := fs.String("env-file", ".env", "path to an optional .env file")
	port := fs.Int("port", 0, "HTTP listen port")
	mongoURI := fs.String("mongo-uri", "", "MongoDB connection string")
	dbName := fs.String("db-name", "", "MongoDB database name")
	dbPath := fs.String("database-path", "", "SQLite database path")
	logLevel := fs.String("log-level", "", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	// A missing .env file is not an error; variables already present in the
	// environment take precedence over the file.
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", *envFile, err)
	}

	cfg, err := fromEnv()
	if err != nil {
		return nil, err
	}

	if fs.Changed("port") {
		cfg.ServerPort = *port
	}
	if fs.Changed("mongo-uri") {
		cfg.MongoURI = *mongoURI
	}
	if fs.Changed("db-name") {
		cfg.DatabaseName = *dbName
	}
	if fs.Changed("database-path") {
		cfg.DatabasePath = *dbPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() (*Config, error) {
	port, err := getEnvInt("PORT", 8000)
	if err != nil {
		return nil, err
	}
	accessMinutes, err := getEnvInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	refreshDays, err := getEnvInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvInt("BCRYPT_COST", bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	privileged, err := strconv.ParseBool(getEnv("PING_PRIVILEGED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid PING_PRIVILEGED: %w", err)
	}

	origins := DefaultAllowedOrigins
	if raw := getEnv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		origins = splitList(raw)
	}

	return &Config{
		ServerPort:      port,
		MongoURI:        getEnv("MONGO_URI", ""),
		DatabaseName:    getEnv("DB_NAME", "linkstart"),
		DatabasePath:    getEnv("DATABASE_PATH", "./linkstart.db"),
		JWTSecret:       getEnv("JWT_SECRET_KEY", ""),
		JWTAlgorithm:    strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL:  time.Duration(accessMinutes) * time.Minute,
		RefreshTokenTTL: time.Duration(refreshDays) * 24 * time.Hour,
		AllowedOrigins:  origins,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		PingPrivileged:  privileged,
		PingTimeout:     2 * time.Second,
		BcryptCost:      cost,
	}, nil
}

// Validate reports the first configuration value the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET_KEY must be set")
	}
	if !supportedAlgorithms[c.JWTAlgorithm] {
		return fmt.Errorf("unsupported JWT_ALGORITHM %q", c.JWTAlgorithm)
	}
	if c.AccessTokenTTL <= 0 {
		return errors.New("JWT_ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.RefreshTokenTTL <= 0 {
		return errors.New("JWT_REFRESH_TOKEN_EXPIRE_DAYS must be positive")
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid port %d", c.ServerPort)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.UseMongo() && c.DatabaseName == "" {
		return errors.New("DB_NAME must be set when MONGO_URI is used")
	}
	return nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
