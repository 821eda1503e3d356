package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	AuthUser        string
	AuthPass        string
	BaseURL         string
	CacheSize       int
	LogLevel        string
	LogFile         string
	QRSize          int
	CaptionFontSize float64
	LogoDir         string
	OutputDir       string
}

// LoadConfig reads an optional .env file and then the process environment.
// Variables already present in the environment win over the file.
func LoadConfig() Config {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("CACHE_SIZE", "1000"))
	qrSize, _ := strconv.Atoi(getEnv("QR_SIZE", "450"))
	fontSize, _ := strconv.ParseFloat(getEnv("CAPTION_FONT_SIZE", "18"), 64)

	return Config{
		Port:            port,
		DatabaseURL:     getEnv("DATABASE_URL", "qrlogo.db"),
		AuthUser:        getEnv("AUTH_USER", "admin"),
		AuthPass:        getEnv("AUTH_PASS", "password"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
		CacheSize:       cacheSize,
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
		LogFile:         getEnv("LOG_FILE", ""),
		QRSize:          qrSize,
		CaptionFontSize: fontSize,
		LogoDir:         getEnv("LOGO_DIR", "logos"),
		OutputDir:       getEnv("OUTPUT_DIR", "output"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
