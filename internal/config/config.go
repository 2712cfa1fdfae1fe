package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config настройки сервиса, читаются из переменных окружения
type Config struct {
	HTTPAddr         string
	AccessSecret     string
	RefreshSecret    string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
	BcryptCost       int
	OrderPrefix      string
	DefaultWarehouse string
	SeedAdminEmail   string
	SeedAdminPass    string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int64) int64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid int for %s, using default: %v", key, err)
		return def
	}
	return i
}

// Load собирает конфигурацию с безопасными для разработки значениями по умолчанию
func Load() Config {
	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":9092"),
		AccessSecret:     getenv("JWT_ACCESS_SECRET", "dev_access_change_me"),
		RefreshSecret:    getenv("JWT_REFRESH_SECRET", "dev_refresh_change_me"),
		AccessTTL:        time.Duration(getInt("JWT_ACCESS_TTL_SECONDS", 15*60)) * time.Second,
		RefreshTTL:       time.Duration(getInt("JWT_REFRESH_TTL_SECONDS", 7*24*3600)) * time.Second,
		BcryptCost:       int(getInt("BCRYPT_COST", 10)),
		OrderPrefix:      getenv("ORDER_PREFIX", "SS"),
		DefaultWarehouse: getenv("DEFAULT_WAREHOUSE", "main"),
		SeedAdminEmail:   getenv("SEED_ADMIN_EMAIL", "root@sanasilver.local"),
		SeedAdminPass:    getenv("SEED_ADMIN_PASSWORD", "change_me_now"),
	}
}
