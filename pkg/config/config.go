package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	LiveSourceBackend = "backend"
	LiveSourceTwitch  = "twitch"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	BaseURL            string
	BackendURL         string
	OEmbedURL          string
	HomepageURL        string
	DefaultOGImage     string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	JWTSecret          string
	FrontendURL        string
	AllowedEmails      []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool
	RedisTTL      time.Duration

	LiveStatusSource   string
	LivePollInterval   time.Duration
	TwitchClientID     string
	TwitchClientSecret string

	ProfileStaleTime time.Duration
	LookupTimeout    time.Duration
	PageTimeout      time.Duration
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	baseURL := getEnv("BASE_URL", "http://localhost:8080")

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		BaseURL:            baseURL,
		BackendURL:         getEnv("BACKEND_URL", baseURL),
		OEmbedURL:          getEnv("OEMBED_URL", "https://www.youtube.com"),
		HomepageURL:        getEnv("HOMEPAGE_URL", "https://crewmaster.net"),
		DefaultOGImage:     getEnv("DEFAULT_OG_IMAGE", "https://lovable.dev/opengraph-image-p98pqg.png"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080/dashboard"),
		AllowedEmails:      getList("ALLOWED_EMAILS"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		RedisTLS:      getBool("REDIS_TLS", false),
		RedisTTL:      getDuration("REDIS_TTL", 0),

		LiveStatusSource:   strings.ToLower(getEnv("LIVE_STATUS_SOURCE", LiveSourceBackend)),
		LivePollInterval:   getDuration("LIVE_POLL_INTERVAL", 60*time.Second),
		TwitchClientID:     getEnv("TWITCH_CLIENT_ID", ""),
		TwitchClientSecret: getEnv("TWITCH_CLIENT_SECRET", ""),

		ProfileStaleTime: getDuration("PROFILE_STALE_TIME", 5*time.Minute),
		LookupTimeout:    getDuration("LOOKUP_TIMEOUT", 3*time.Second),
		PageTimeout:      getDuration("PAGE_TIMEOUT", 8*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return fallback
}

func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
