package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Person  PersonConfig
	Metrics MetricsConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	person, err := loadPersonConfig()
	if err != nil {
		return nil, err
	}

	metrics, err := loadMetricsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Person: person, Metrics: metrics}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr        string
	APIBaseURL  string
	CORSOrigins []string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	var addr string
	switch {
	case strings.Contains(port, ":"):
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		addr = port
	case strings.Contains(port, " "):
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	default:
		addr = ":" + port
	}

	return ServerConfig{
		Addr:        addr,
		APIBaseURL:  getEnvOrDefault("API_BASE_URL", defaultBaseURL(addr)),
		CORSOrigins: parseListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}, nil
}

func defaultBaseURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// PersonConfig 描述 person 接口的分页与推送配置。
type PersonConfig struct {
	DefaultLimit int
	MaxLimit     int
	SeedDemo     bool
	EventBuffer  int
}

func loadPersonConfig() (PersonConfig, error) {
	defaultLimit, err := parseIntEnv("PERSON_DEFAULT_LIMIT", 10)
	if err != nil {
		return PersonConfig{}, err
	}

	maxLimit, err := parseIntEnv("PERSON_MAX_LIMIT", 100)
	if err != nil {
		return PersonConfig{}, err
	}
	if defaultLimit < 1 || maxLimit < 1 {
		return PersonConfig{}, fmt.Errorf("PERSON_DEFAULT_LIMIT and PERSON_MAX_LIMIT must be positive")
	}
	if defaultLimit > maxLimit {
		return PersonConfig{}, fmt.Errorf("PERSON_DEFAULT_LIMIT (%d) exceeds PERSON_MAX_LIMIT (%d)", defaultLimit, maxLimit)
	}

	seed, err := parseBoolEnv("PERSON_SEED_DEMO", false)
	if err != nil {
		return PersonConfig{}, err
	}

	buffer, err := parseIntEnv("PERSON_EVENT_BUFFER", 32)
	if err != nil {
		return PersonConfig{}, err
	}

	return PersonConfig{
		DefaultLimit: defaultLimit,
		MaxLimit:     maxLimit,
		SeedDemo:     seed,
		EventBuffer:  buffer,
	}, nil
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func loadMetricsConfig() (MetricsConfig, error) {
	enabled, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return MetricsConfig{}, err
	}
	return MetricsConfig{Enabled: enabled}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseListEnv(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
