package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	AppEnv        string `mapstructure:"APP_ENV"`
	Port          string `mapstructure:"PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	RedisURL      string `mapstructure:"REDIS_URL"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	MaxMindAccountID  string `mapstructure:"MAXMIND_ACCOUNT_ID"`
	MaxMindLicenseKey string `mapstructure:"MAXMIND_LICENSE_KEY"`
	MaxMindEditionIDs string `mapstructure:"MAXMIND_EDITION_IDS"`
	GeoIPDBPath       string `mapstructure:"GEOIP_DB_PATH"`

	// Public scan endpoint rate limit (requests per second / burst per IP).
	ScanRateLimit int `mapstructure:"SCAN_RATE_LIMIT"`
	ScanRateBurst int `mapstructure:"SCAN_RATE_BURST"`
}

func LoadConfig() (config Config, err error) {
	viper.SetDefault("APP_ENV", "local")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_URL", "sqlite://qrpulse.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("GEOIP_DB_PATH", "./geoip/GeoLite2-City.mmdb")
	viper.SetDefault("MAXMIND_EDITION_IDS", "GeoLite2-City")
	viper.SetDefault("SCAN_RATE_LIMIT", 10)
	viper.SetDefault("SCAN_RATE_BURST", 20)

	viper.AutomaticEnv()

	err = viper.Unmarshal(&config)
	if err != nil {
		log.Printf("unable to decode into struct, %v", err)
		return
	}

	return
}
