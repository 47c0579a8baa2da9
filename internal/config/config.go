package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	WorkHours WorkHoursConfig
	Offices   []OfficeLocation
	Face      FaceConfig
	Redis     RedisConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// WorkHoursConfig defines the working window used to classify clock-ins.
type WorkHoursConfig struct {
	Start         string // "15:04"
	End           string // "15:04"
	LateTolerance time.Duration
}

// OfficeLocation is a geofenced office used to validate office-mode clock-ins.
type OfficeLocation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_m"`
}

// FaceConfig controls biometric verification during clocking.
type FaceConfig struct {
	// MatchThreshold is the maximum embedding distance considered a match.
	MatchThreshold float64
	// Strict makes a failed or impossible verification block the clock event.
	Strict bool
}

// RedisConfig is optional; an empty Addr selects the in-process lock backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func Load() (*Config, error) {
	// A missing .env file is fine in containerized deployments.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "haergo"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	tolerance, err := strconv.Atoi(getEnv("LATE_TOLERANCE_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid LATE_TOLERANCE_MINUTES: %w", err)
	}

	config.WorkHours = WorkHoursConfig{
		Start:         getEnv("WORK_START", "09:00"),
		End:           getEnv("WORK_END", "18:00"),
		LateTolerance: time.Duration(tolerance) * time.Minute,
	}

	offices, err := parseOffices(getEnv("OFFICE_LOCATIONS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid OFFICE_LOCATIONS: %w", err)
	}
	config.Offices = offices

	threshold, err := strconv.ParseFloat(getEnv("FACE_MATCH_THRESHOLD", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_MATCH_THRESHOLD: %w", err)
	}

	config.Face = FaceConfig{
		MatchThreshold: threshold,
		Strict:         getEnv("FACE_STRICT", "false") == "true",
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       redisDB,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.Parse("15:04", c.WorkHours.Start); err != nil {
		return fmt.Errorf("WORK_START must be HH:MM: %w", err)
	}
	if _, err := time.Parse("15:04", c.WorkHours.End); err != nil {
		return fmt.Errorf("WORK_END must be HH:MM: %w", err)
	}
	if len(c.Offices) == 0 {
		return fmt.Errorf("at least one office location is required")
	}
	if c.Face.MatchThreshold <= 0 {
		return fmt.Errorf("FACE_MATCH_THRESHOLD must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func parseOffices(raw string) ([]OfficeLocation, error) {
	if raw == "" {
		return defaultOffices(), nil
	}

	var offices []OfficeLocation
	if err := json.Unmarshal([]byte(raw), &offices); err != nil {
		return nil, err
	}
	return offices, nil
}

func defaultOffices() []OfficeLocation {
	return []OfficeLocation{
		{
			ID:        "office-main",
			Name:      "Head Office",
			Latitude:  -6.161777101062483,
			Longitude: 106.87519933469652,
			RadiusM:   100,
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
