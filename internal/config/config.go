package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Port             string
	DBURL            string
	UseInMemoryStore bool
	Environment      string
	LogLevel         string
	FlatRate         decimal.Decimal
}

// defaultFlatRate seeds the flat-rate schedule until configured over the
// API. Quoted per ten million of traded volume.
var defaultFlatRate = decimal.NewFromInt(3000)

// Load reads configuration from environment variables. A .env file is loaded
// if present to simplify local development. We look in bin/.env so the file
// can live alongside a built binary, and fall back to .env in the project
// root for compatibility.
func Load() Config {
	loadDotEnv()

	cfg := Config{
		Port:        getString("PORT", "8080"),
		DBURL:       getString("DATABASE_URL", ""),
		Environment: getString("ENVIRONMENT", "local"),
		LogLevel:    getString("LOG_LEVEL", ""),
		FlatRate:    getDecimal("FLAT_RATE", defaultFlatRate),
	}

	cfg.UseInMemoryStore = cfg.DBURL == ""
	return cfg
}

func loadDotEnv() {
	candidates := []string{
		filepath.Join("bin", ".env"),
		".env",
	}

	if exePath, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exePath)
		candidates = append([]string{
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "bin", ".env"),
		}, candidates...)
	}

	for _, path := range candidates {
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	if val := os.Getenv(key); val != "" {
		d, err := decimal.NewFromString(val)
		if err != nil {
			log.Printf("invalid value for %s, using fallback: %v", key, err)
			return fallback
		}
		return d
	}
	return fallback
}
