package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sportsrental/service-booking/internal/domain/timerange"
	"github.com/sportsrental/service-booking/internal/platform/database"
)

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// KafkaConfig holds broker settings for the event publisher and consumer.
type KafkaConfig struct {
	Enabled     bool
	Brokers     []string
	GroupPrefix string
}

// ServiceConfig holds all configuration for the booking service.
type ServiceConfig struct {
	Port           string
	AppEnv         string
	Storage        string
	DBConfig       database.PostgresConfig
	KafkaConfig    KafkaConfig
	BookableDay    timerange.Interval
	Currency       string
	AllowedOrigins []string
}

// Load reads configuration from environment variables, after merging an
// optional .env file, and returns a ServiceConfig.
func Load() (*ServiceConfig, error) {
	_ = godotenv.Load(".env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	day, err := timerange.FromHours(v.GetInt("DAY_START"), v.GetInt("DAY_END"))
	if err != nil {
		return nil, fmt.Errorf("invalid DAY_START/DAY_END: %w", err)
	}

	storage := strings.ToLower(v.GetString("STORAGE"))
	if storage != StoragePostgres && storage != StorageMemory {
		return nil, fmt.Errorf("unsupported STORAGE %q", storage)
	}

	return &ServiceConfig{
		Port:           servicePort(v.GetString("SERVICE_PORT")),
		AppEnv:         v.GetString("APP_ENV"),
		Storage:        storage,
		DBConfig:       loadDatabaseConfig(v),
		KafkaConfig:    loadKafkaConfig(v),
		BookableDay:    day,
		Currency:       strings.ToUpper(v.GetString("CURRENCY")),
		AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("STORAGE", StoragePostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "booking_db")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_ENABLED", true)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "sportsrental-")
	v.SetDefault("DAY_START", 6)
	v.SetDefault("DAY_END", 23)
	v.SetDefault("CURRENCY", "PHP")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
}

// loadDatabaseConfig extracts Postgres configuration from Viper.
func loadDatabaseConfig(v *viper.Viper) database.PostgresConfig {
	return database.PostgresConfig{
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		User:     v.GetString("DB_USER"),
		Password: v.GetString("DB_PASSWORD"),
		DBName:   v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}
}

// loadKafkaConfig extracts Kafka configuration from Viper.
func loadKafkaConfig(v *viper.Viper) KafkaConfig {
	return KafkaConfig{
		Enabled:     v.GetBool("KAFKA_ENABLED"),
		Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
		GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
	}
}

func servicePort(port string) string {
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
