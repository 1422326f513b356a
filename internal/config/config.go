package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds environment-based settings
type Config struct {
	Environment    string
	ServerAddress  string
	JWTSecret      string
	// InviteCode lets further admins sign up once the first one exists.
	// Empty means only the first signup is accepted.
	InviteCode     string
	DatabaseURL    string
	MigrationsPath string
	LogLevel       string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	MQTTBrokerURL string
	MQTTClientID  string
	TopicPrefix   string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
	UploadDir       string

	TemplatesPath  string
	StationFile    string
	IncomingWindow int
}

// Development is true when APP_ENV is unset or "development".
func (c *Config) Development() bool {
	return c.Environment == "" || c.Environment == "development"
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Environment:    os.Getenv("APP_ENV"),
		ServerAddress:  getenv("SERVER_ADDRESS", ":8080"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		InviteCode:     strings.TrimSpace(os.Getenv("SIGNUP_INVITE_CODE")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		MigrationsPath: getenv("MIGRATIONS_PATH", "./migrations"),
		LogLevel:       getenv("LOG_LEVEL", "info"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
		MQTTClientID:  getenv("MQTT_CLIENT_ID", "onair-server"),
		TopicPrefix:   strings.Trim(getenv("TOPIC_PREFIX", "onair"), "/:"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
		UploadDir:       getenv("UPLOAD_DIR", "./uploads"),

		TemplatesPath: getenv("TEMPLATES_PATH", "./web/templates"),
		StationFile:   os.Getenv("STATION_FILE"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TopicPrefix == "" {
		return nil, fmt.Errorf("TOPIC_PREFIX must not be empty")
	}

	window, err := getenvInt("INCOMING_WINDOW_MINUTES", 10)
	if err != nil {
		return nil, err
	}
	cfg.IncomingWindow = window

	if cfg.UseSpaces {
		for name, v := range map[string]string{
			"SPACES_ENDPOINT":   cfg.SpacesEndpoint,
			"SPACES_BUCKET":     cfg.SpacesBucket,
			"SPACES_ACCESS_KEY": cfg.SpacesAccessKey,
			"SPACES_SECRET_KEY": cfg.SpacesSecretKey,
		} {
			if v == "" {
				return nil, fmt.Errorf("%s is required when USE_SPACES=true", name)
			}
		}
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}
