package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"property-search-service/internal/constants"
)

type APIConfig struct {
	BaseURL           string
	ValidateResponses bool
}

type SearchConfig struct {
	// ViewMode - "grid" или "map".
	ViewMode string
	// InitialQuery - query-строка URL, с которой монтируется сеточный вид.
	InitialQuery string
	DebounceMS   int
	// RefreshIntervalSec - период фонового повтора текущего запроса.
	RefreshIntervalSec int
}

type StdoutLogConfig struct {
	Level string
}

type FluentBitConfig struct {
	Enabled bool
	Host    string
	Port    int
	Level   string
}

type AppConfig struct {
	AppName      string
	API          APIConfig
	Search       SearchConfig
	FluentBit    FluentBitConfig
	StdoutLogger StdoutLogConfig
}

// LoadConfig читает конфигурацию из переменных окружения. Файл .env
// необязателен: в контейнере переменные приходят из оркестратора.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("Info: could not load .env file (path: %v): %v\n", envPath, err)
	}

	cfg := &AppConfig{}

	cfg.AppName = getEnvAsString("APP_NAME", "property-search-service")

	cfg.API.BaseURL = getEnvAsString("MARKETPLACE_API_URL", "http://localhost:8080")
	cfg.API.ValidateResponses = getEnvAsBool("API_VALIDATE_RESPONSES", false)

	cfg.Search.ViewMode = getEnvAsString("VIEW_MODE", "grid")
	cfg.Search.InitialQuery = getEnvAsString("INITIAL_QUERY", "")
	cfg.Search.DebounceMS = getEnvAsInt("SUGGESTION_DEBOUNCE_MS", int(constants.SuggestionDebounce/time.Millisecond))
	cfg.Search.RefreshIntervalSec = getEnvAsInt("REFRESH_INTERVAL_SEC", int(constants.AutoRefreshInterval/time.Second))

	cfg.FluentBit.Enabled = getEnvAsBool("FLUENTBIT_ENABLED", false)
	if cfg.FluentBit.Enabled {
		cfg.FluentBit.Host = os.Getenv("FLUENTBIT_HOST")
		if cfg.FluentBit.Host == "" {
			log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
			cfg.FluentBit.Enabled = false
		}
		cfg.FluentBit.Port = getEnvAsInt("FLUENTBIT_PORT", 24224)
		cfg.FluentBit.Level = getEnvAsString("FLUENTBIT_LOG_LEVEL", "info")
	}

	cfg.StdoutLogger.Level = getEnvAsString("STDOUT_LOG_LEVEL", "debug")

	return cfg, nil
}

func getEnvAsString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueInt, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as int: %v. Using default: %d\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueInt
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueBool, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: environment variable %s (value: %s) could not be parsed as bool: %v. Using default: %t\n", key, valueStr, err, defaultValue)
		return defaultValue
	}
	return valueBool
}
