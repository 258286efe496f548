package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"freight/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort                 string
	DBHost                   string
	DBPort                   string
	DBUser                   string
	DBPassword               string
	DBName                   string
	DBSslMode                string
	RedisAddr                string
	RedisPassword            string
	RedisDB                  int
	GeocoderBaseURL          string
	GeocoderUserAgent        string
	GeocoderTimeout          time.Duration
	GeocoderCacheTTL         time.Duration
	GeocoderNegativeCacheTTL time.Duration
	KafkaBrokers             []string
	KafkaOrderChangedTopic   string
	CapacityAuditSchedule    string
	DefaultSearchRadiusKm    float64
	LogLevel                 string
}

// LoadConfig reads the configuration from the environment. Values from
// envFile are added to the environment first when the file exists; variables
// that are already set win.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := Config{
		HTTPPort:                 v.GetString("HTTP_PORT"),
		DBHost:                   v.GetString("DB_HOST"),
		DBPort:                   v.GetString("DB_PORT"),
		DBUser:                   v.GetString("DB_USER"),
		DBPassword:               v.GetString("DB_PASSWORD"),
		DBName:                   v.GetString("DB_NAME"),
		DBSslMode:                v.GetString("DB_SSLMODE"),
		RedisAddr:                v.GetString("REDIS_ADDR"),
		RedisPassword:            v.GetString("REDIS_PASSWORD"),
		RedisDB:                  v.GetInt("REDIS_DB"),
		GeocoderBaseURL:          v.GetString("GEOCODER_BASE_URL"),
		GeocoderUserAgent:        v.GetString("GEOCODER_USER_AGENT"),
		GeocoderTimeout:          v.GetDuration("GEOCODER_TIMEOUT"),
		GeocoderCacheTTL:         v.GetDuration("GEOCODER_CACHE_TTL"),
		GeocoderNegativeCacheTTL: v.GetDuration("GEOCODER_NEGATIVE_CACHE_TTL"),
		KafkaBrokers:             splitList(v.GetString("KAFKA_BROKERS")),
		KafkaOrderChangedTopic:   v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		CapacityAuditSchedule:    v.GetString("CAPACITY_AUDIT_SCHEDULE"),
		DefaultSearchRadiusKm:    v.GetFloat64("DEFAULT_SEARCH_RADIUS_KM"),
		LogLevel:                 v.GetString("LOG_LEVEL"),
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("GEOCODER_BASE_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("GEOCODER_USER_AGENT", "freight-marketplace/1.0")
	v.SetDefault("GEOCODER_TIMEOUT", 5*time.Second)
	v.SetDefault("GEOCODER_CACHE_TTL", 24*time.Hour)
	v.SetDefault("GEOCODER_NEGATIVE_CACHE_TTL", 10*time.Minute)
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.status_changed")
	v.SetDefault("CAPACITY_AUDIT_SCHEDULE", "@every 5m")
	v.SetDefault("DEFAULT_SEARCH_RADIUS_KM", 50.0)
	v.SetDefault("LOG_LEVEL", "info")
}

// Validate reports every missing or malformed value at once.
func (c Config) Validate() error {
	var problems []error
	required := map[string]string{
		"HTTP_PORT":           c.HTTPPort,
		"DB_HOST":             c.DBHost,
		"DB_USER":             c.DBUser,
		"DB_NAME":             c.DBName,
		"GEOCODER_BASE_URL":   c.GeocoderBaseURL,
		"GEOCODER_USER_AGENT": c.GeocoderUserAgent,
	}
	for _, key := range []string{"HTTP_PORT", "DB_HOST", "DB_USER", "DB_NAME", "GEOCODER_BASE_URL", "GEOCODER_USER_AGENT"} {
		if strings.TrimSpace(required[key]) == "" {
			problems = append(problems, errs.NewValueIsRequiredError(key))
		}
	}

	if c.GeocoderTimeout <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("GEOCODER_TIMEOUT", c.GeocoderTimeout, "1ns", "∞"))
	}
	if c.DefaultSearchRadiusKm <= 0 {
		problems = append(problems, errs.NewValueIsOutOfRangeError("DEFAULT_SEARCH_RADIUS_KM", c.DefaultSearchRadiusKm, 0, "∞"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}

	return errors.Join(problems...)
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
