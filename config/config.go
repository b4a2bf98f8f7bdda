package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	DBTimezone string
	JWTSecret  string

	LogLevel  string
	LogFormat string

	// StoreBackend selects where the last simulation is kept: memory, redis or sqlite.
	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SimulationKey string
	SQLitePath    string

	// ProviderBackend selects the aggregate source: mariadb or remote.
	ProviderBackend string
	UpstreamURL     string
	UpstreamToken   string
}

var (
	cfg  *Config
	once sync.Once
)

func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = FromEnv()
	})
	return cfg
}

// FromEnv reads the configuration from the process environment without touching .env.
func FromEnv() *Config {
	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBHost:          getEnv("DB_HOST", "mariadb"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBName:          os.Getenv("DB_NAME"),
		DBTimezone:      getEnv("DB_TIMEZONE", "Africa/Algiers"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
		StoreBackend:    getEnv("STORE_BACKEND", "memory"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		SimulationKey:   getEnv("SIMULATION_KEY", "simulationRentabilite"),
		SQLitePath:      getEnv("SQLITE_PATH", "simulation.db"),
		ProviderBackend: getEnv("PROVIDER_BACKEND", "mariadb"),
		UpstreamURL:     os.Getenv("UPSTREAM_URL"),
		UpstreamToken:   os.Getenv("UPSTREAM_TOKEN"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, v, def)
		return def
	}
	return n
}
