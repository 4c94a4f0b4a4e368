package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	MongoURI       string
	JWTSecret      string
	JWTExpiry      string
	AllowedOrigins []string
	Redis          RedisConfig
	Engine         EngineConfig
}

type RedisConfig struct {
	URL          string
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// EngineConfig carries the alert engine's timing knobs. Defaults match the
// production thresholds; tests shrink them to run fast.
type EngineConfig struct {
	SweepInterval          time.Duration
	InitialDelay           time.Duration
	FuelCooldown           time.Duration
	MaintenanceCooldown    time.Duration
	FuelThreshold          int
	MaintenanceOverdueDays int
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		SweepInterval:          5 * time.Minute,
		InitialDelay:           10 * time.Second,
		FuelCooldown:           time.Hour,
		MaintenanceCooldown:    24 * time.Hour,
		FuelThreshold:          20,
		MaintenanceOverdueDays: 90,
	}
}

func Load() *Config {
	// load .env variables when present; environment wins otherwise
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017/fleet_admin"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}

	return &Config{
		Port:           port,
		MongoURI:       mongoURI,
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiry:      os.Getenv("JWT_EXPIRY"),
		AllowedOrigins: strings.Split(allowedOrigins, ","),
		Redis:          loadRedisConfig(),
		Engine:         loadEngineConfig(),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:          os.Getenv("REDIS_URL"),
		Host:         envOrDefault("REDIS_HOST", "localhost"),
		Port:         envOrDefault("REDIS_PORT", "6379"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           envInt("REDIS_DB", 0),
		PoolSize:     envInt("REDIS_POOL_SIZE", 10),
		MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
		DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
	}
}

func loadEngineConfig() EngineConfig {
	cfg := DefaultEngineConfig()
	cfg.SweepInterval = envDuration("ENGINE_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.InitialDelay = envDuration("ENGINE_INITIAL_DELAY", cfg.InitialDelay)
	cfg.FuelCooldown = envDuration("ENGINE_FUEL_COOLDOWN", cfg.FuelCooldown)
	cfg.MaintenanceCooldown = envDuration("ENGINE_MAINTENANCE_COOLDOWN", cfg.MaintenanceCooldown)
	cfg.FuelThreshold = envInt("ENGINE_FUEL_THRESHOLD", cfg.FuelThreshold)
	cfg.MaintenanceOverdueDays = envInt("ENGINE_MAINTENANCE_OVERDUE_DAYS", cfg.MaintenanceOverdueDays)
	return cfg
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %v", key, v, fallback)
		return fallback
	}
	return d
}
