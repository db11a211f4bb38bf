package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// Service names the binary a configuration is validated for.
type Service string

const (
	ServiceAuth     Service = "auth-service"
	ServiceResource Service = "resource-service"
	ServiceFrontend Service = "frontend-service"
)

// Config aggregates runtime configuration shared by the three services.
type Config struct {
	Env      string
	Version  string
	Auth     ServerConfig
	Resource ServerConfig
	Frontend ServerConfig
	OAuth    OAuthConfig
	Token    TokenConfig
	Services ServicesConfig
	Roles    domain.RoleMap
	Redis    RedisConfig
	Postgres PostgresConfig
	Logger   LoggerConfig
}

// ServerConfig controls bind address and request timeout for one service.
type ServerConfig struct {
	Host                  string
	Port                  string
	RequestTimeoutSeconds int
}

// OAuthConfig holds the identity-provider client registration.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthURL      string
	TokenURL     string
	UserInfoURL  string
	Scopes       []string
}

// TokenConfig defines session-token parameters.
type TokenConfig struct {
	JWTSecret       string
	TTLMinutes      int
	StateTTLMinutes int
}

// ServicesConfig holds the base URLs services use to reach each other.
type ServicesConfig struct {
	FrontendURL        string
	AuthServiceURL     string
	ResourceServiceURL string
}

// RedisConfig holds Redis connection values. An empty Addr disables Redis and
// the auth service falls back to its in-memory state store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values. An empty DSN disables Postgres
// and the resource service serves its built-in demo data.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where
// possible. Malformed values fail loading.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	roles, err := parseRoleMap(os.Getenv("ROLE_MAP"))
	if err != nil {
		return nil, fmt.Errorf("invalid ROLE_MAP: %w", err)
	}

	timeout := getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30)

	cfg := &Config{
		Env:     getEnv("APP_ENV", "development"),
		Version: getEnv("APP_VERSION", "dev"),
		Auth: ServerConfig{
			Host:                  getEnv("AUTH_HOST", "0.0.0.0"),
			Port:                  getEnv("AUTH_PORT", "5001"),
			RequestTimeoutSeconds: timeout,
		},
		Resource: ServerConfig{
			Host:                  getEnv("RESOURCE_HOST", "0.0.0.0"),
			Port:                  getEnv("RESOURCE_PORT", "5002"),
			RequestTimeoutSeconds: timeout,
		},
		Frontend: ServerConfig{
			Host:                  getEnv("FRONTEND_HOST", "0.0.0.0"),
			Port:                  getEnv("FRONTEND_PORT", "3000"),
			RequestTimeoutSeconds: timeout,
		},
		OAuth: OAuthConfig{
			ClientID:     os.Getenv("OAUTH_CLIENT_ID"),
			ClientSecret: os.Getenv("OAUTH_CLIENT_SECRET"),
			RedirectURI:  getEnv("OAUTH_REDIRECT_URI", "http://localhost:5001/auth/callback"),
			AuthURL:      getEnv("OAUTH_AUTH_URL", "https://accounts.google.com/o/oauth2/auth"),
			TokenURL:     getEnv("OAUTH_TOKEN_URL", "https://oauth2.googleapis.com/token"),
			UserInfoURL:  getEnv("OAUTH_USERINFO_URL", "https://openidconnect.googleapis.com/v1/userinfo"),
			Scopes:       strings.Fields(getEnv("OAUTH_SCOPES", "openid email profile")),
		},
		Token: TokenConfig{
			JWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
			TTLMinutes:      getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 480),
			StateTTLMinutes: getEnvAsInt("AUTH_STATE_TTL_MINUTES", 10),
		},
		Services: ServicesConfig{
			FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
			AuthServiceURL:     getEnv("AUTH_SERVICE_URL", "http://localhost:5001"),
			ResourceServiceURL: getEnv("RESOURCE_SERVICE_URL", "http://localhost:5002"),
		},
		Roles: roles,
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Validate checks that the variables a given service cannot run without are
// present. Failures here are startup-fatal.
func (c *Config) Validate(svc Service) error {
	var missing []string

	switch svc {
	case ServiceAuth:
		if c.OAuth.ClientID == "" {
			missing = append(missing, "OAUTH_CLIENT_ID")
		}
		if c.OAuth.ClientSecret == "" {
			missing = append(missing, "OAUTH_CLIENT_SECRET")
		}
		if c.Token.JWTSecret == "" {
			missing = append(missing, "AUTH_JWT_SECRET")
		}
	case ServiceResource:
		if c.Token.JWTSecret == "" {
			missing = append(missing, "AUTH_JWT_SECRET")
		}
	case ServiceFrontend:
		if c.Services.AuthServiceURL == "" {
			missing = append(missing, "AUTH_SERVICE_URL")
		}
		if c.Services.ResourceServiceURL == "" {
			missing = append(missing, "RESOURCE_SERVICE_URL")
		}
	default:
		return fmt.Errorf("unknown service %q", svc)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Addr returns the HTTP bind address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (s ServerConfig) RequestTimeout() time.Duration {
	if s.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// TTL returns the session-token lifetime.
func (t TokenConfig) TTL() time.Duration {
	if t.TTLMinutes <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(t.TTLMinutes) * time.Minute
}

// StateTTL returns the OAuth state lifetime.
func (t TokenConfig) StateTTL() time.Duration {
	if t.StateTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(t.StateTTLMinutes) * time.Minute
}

// parseRoleMap reads "email:role" pairs separated by commas, e.g.
// "admin@example.com:admin,auditor@example.com:user".
func parseRoleMap(raw string) (domain.RoleMap, error) {
	roles := domain.RoleMap{}
	if strings.TrimSpace(raw) == "" {
		return roles, nil
	}

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed entry %q", entry)
		}
		role, err := domain.ParseRole(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		roles[strings.TrimSpace(parts[0])] = role
	}
	return roles, nil
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
