package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// External gateways.
	OpenWeatherAPIKey   string `mapstructure:"OPENWEATHER_API_KEY"`
	NominatimUserAgent  string `mapstructure:"NOMINATIM_USER_AGENT"`
	AWSRegion           string `mapstructure:"AWS_REGION"`
	SMSSenderID         string `mapstructure:"SMS_SENDER_ID"`
	FirebaseCredentials string `mapstructure:"FIREBASE_CREDENTIALS"`

	// OTP settings.
	OTPLength       int `mapstructure:"OTP_LENGTH"`
	OTPValiditySecs int `mapstructure:"OTP_VALIDITY_SECS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/croppulse")
	viper.SetDefault("NOMINATIM_USER_AGENT", "CropPulse-Africa/1.0 (contact@croppulse.africa)")
	viper.SetDefault("AWS_REGION", "eu-west-1")
	viper.SetDefault("SMS_SENDER_ID", "CROPPULSE")
	viper.SetDefault("OTP_LENGTH", 6)
	viper.SetDefault("OTP_VALIDITY_SECS", 600)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
