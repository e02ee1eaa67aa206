package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	CurrencySymbol string

	SessionTTL    time.Duration
	SweepInterval time.Duration
	OTPTTL        time.Duration

	NotifyTransport string // "twilio" or "bridge"
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	BridgeURL       string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:         getEnvOrDefault("DB_NAME", "quickcart"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		CurrencySymbol: getEnvOrDefault("CURRENCY_SYMBOL", "$"),

		SessionTTL:    getDurationEnv("SESSION_TTL", 24, time.Hour),
		SweepInterval: getDurationEnv("SWEEP_INTERVAL", 60, time.Second),
		OTPTTL:        getDurationEnv("OTP_TTL", 10, time.Minute),

		NotifyTransport: getEnvOrDefault("NOTIFY_TRANSPORT", "bridge"),
		TwilioSID:       getEnvOrDefault("TWILIO_ACCOUNT_SID", ""),
		TwilioToken:     getEnvOrDefault("TWILIO_AUTH_TOKEN", ""),
		TwilioFrom:      getEnvOrDefault("TWILIO_WHATSAPP_FROM", ""),
		BridgeURL:       getEnvOrDefault("WHATSAPP_BRIDGE_URL", "http://127.0.0.1:3001"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
