package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Cloudinary struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

type Config struct {
	Port          string
	DBDSN         string
	JWTSecret     string
	LogFile       string
	AdminEmail    string
	StarterPoints int
	Cloudinary    Cloudinary
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] no .env file, using environment")
	}

	cfg := Config{
		Port:          getenv("PORT", "8080"),
		DBDSN:         getenv("DB_DSN", "rewear.db"), // sqlite file in project root
		JWTSecret:     getenv("JWT_SECRET", ""),
		LogFile:       getenv("LOG_FILE", "./rewear.log"),
		AdminEmail:    getenv("ADMIN_EMAIL", "admin@rewear.com"),
		StarterPoints: getenvInt("STARTER_POINTS", 1000),
		Cloudinary: Cloudinary{
			CloudName: getenv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getenv("CLOUDINARY_API_KEY", ""),
			APISecret: getenv("CLOUDINARY_API_SECRET", ""),
			Folder:    getenv("CLOUDINARY_FOLDER", "rewear/items"),
		},
	}
	if cfg.JWTSecret == "" {
		log.Fatal("[config] JWT_SECRET is required")
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s ADMIN_EMAIL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.AdminEmail)
	return cfg
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] bad %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
