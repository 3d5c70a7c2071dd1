package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultResourceBaseURL = "https://grepp-programmers-challenges.s3.ap-northeast-2.amazonaws.com/2020-birdview/"
	defaultFixturePath     = "fixtures/items-data.json"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Catalog  CatalogConfig
	HTTP     HTTPConfig
	Fixture  FixtureConfig
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	UseMock         bool
}

// LoggingConfig selects the verbosity and output encoding of the logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// CatalogConfig holds the constants of the product query planner.
type CatalogConfig struct {
	PageSize        int
	RecommendLimit  int
	ResourceBaseURL string
	IngredientMatch string
}

// HTTPConfig configures cross-origin access and per-client rate limiting.
type HTTPConfig struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
}

// FixtureConfig points at the prepared dataset consumed by the loader.
type FixtureConfig struct {
	Path string
}

// Load inspects the environment and builds a Config value. A .env file in the
// working directory is applied first when present; real environment variables
// take precedence over it.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{}

	cfg.Server = ServerConfig{
		Addr: firstNonEmpty(
			os.Getenv("SERVER_ADDR"),
			os.Getenv("ADDR"),
			":8080",
		),
	}

	cfg.Database = DatabaseConfig{
		URL: firstNonEmpty(
			os.Getenv("DATABASE_URL"),
			os.Getenv("DB_URL"),
			"",
		),
		MaxIdleConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_IDLE_CONNS"), 0),
		MaxOpenConns:    parseIntWithDefault(os.Getenv("DATABASE_MAX_OPEN_CONNS"), 0),
		ConnMaxLifetime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_LIFETIME"), 0),
		ConnMaxIdleTime: parseDurationWithDefault(os.Getenv("DATABASE_CONN_MAX_IDLE_TIME"), 0),
		UseMock:         parseBoolWithDefault(os.Getenv("DATABASE_USE_MOCK"), false),
	}

	cfg.Logging = LoggingConfig{
		Level:  firstNonEmpty(os.Getenv("LOG_LEVEL"), "info"),
		Format: firstNonEmpty(os.Getenv("LOG_FORMAT"), "text"),
	}

	cfg.Catalog = CatalogConfig{
		PageSize:        parseIntWithDefault(os.Getenv("CATALOG_PAGE_SIZE"), 50),
		RecommendLimit:  parseIntWithDefault(os.Getenv("CATALOG_RECOMMEND_LIMIT"), 3),
		ResourceBaseURL: firstNonEmpty(os.Getenv("CATALOG_RESOURCE_BASE_URL"), defaultResourceBaseURL),
		IngredientMatch: strings.ToLower(firstNonEmpty(os.Getenv("CATALOG_INGREDIENT_MATCH"), "substring")),
	}

	cfg.HTTP = HTTPConfig{
		CORSAllowedOrigins: splitList(firstNonEmpty(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		RateLimitRequests:  parseIntWithDefault(os.Getenv("RATE_LIMIT_REQUESTS"), 100),
		RateLimitWindow:    parseDurationWithDefault(os.Getenv("RATE_LIMIT_WINDOW"), time.Minute),
	}

	cfg.Fixture = FixtureConfig{
		Path: firstNonEmpty(os.Getenv("FIXTURE_PATH"), defaultFixturePath),
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return Config{}, fmt.Errorf("server address must not be empty")
	}
	if cfg.Catalog.PageSize <= 0 {
		return Config{}, fmt.Errorf("catalog page size must be positive, got %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.RecommendLimit < 0 {
		return Config{}, fmt.Errorf("catalog recommend limit must not be negative, got %d", cfg.Catalog.RecommendLimit)
	}
	switch cfg.Catalog.IngredientMatch {
	case "substring", "token":
	default:
		return Config{}, fmt.Errorf("unknown ingredient match mode: %s", cfg.Catalog.IngredientMatch)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func parseIntWithDefault(value string, def int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseDurationWithDefault(value string, def time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolWithDefault(value string, def bool) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
