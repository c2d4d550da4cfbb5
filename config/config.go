package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backends de stockage des tokens
const (
	TokenStoreMongo    = "mongo"
	TokenStorePostgres = "postgres"
)

// Backends d'envoi
const (
	DispatchBackendHTTP     = "http"
	DispatchBackendFirebase = "firebase"
)

// Caches d'access token
const (
	TokenCacheNone   = "none"
	TokenCacheMemory = "memory"
	TokenCacheRedis  = "redis"
)

// Config contient toutes les configurations de l'application
type Config struct {
	Port        string
	Host        string
	Environment string
	CORSOrigins []string

	TokenStore  string
	MongoURI    string
	MongoDB     string
	PostgresDSN string

	FirebaseCredentialsJSON   string
	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string
	FirebaseProjectID         string
	OAuthTokenURI             string
	FCMEndpoint               string

	DispatchBackend string
	DispatchWorkers int
	RequestTimeout  time.Duration

	AccessTokenCache string
	RedisAddr        string
	RedisPassword    string
	RedisDB          int

	StrictHTTPStatus  bool
	FunctionJWTSecret string
	SlackWebhookURL   string
}

// IsDevelopment indique si l'environnement est celui de développement
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load charge la configuration depuis les variables d'environnement
func Load() (*Config, error) {
	// Charger le fichier .env s'il existe
	_ = godotenv.Load()

	config := &Config{
		Port:        getEnv("PORT", "8090"),
		Host:        getEnv("HOST", "0.0.0.0"),
		Environment: getEnv("ENVIRONMENT", "development"),

		TokenStore:  strings.ToLower(getEnv("TOKEN_STORE", TokenStoreMongo)),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "marketplace"),
		PostgresDSN: getEnv("POSTGRES_DSN", ""),

		FirebaseCredentialsJSON:   getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		FirebaseCredentialsBase64: getEnv("FIREBASE_CREDENTIALS_BASE64", ""),
		FirebaseCredentialsFile:   getEnv("FIREBASE_CREDENTIALS_FILE", "firebase-service-account.json"),
		FirebaseProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
		OAuthTokenURI:             getEnv("OAUTH_TOKEN_URI", ""),
		FCMEndpoint:               strings.TrimRight(getEnv("FCM_ENDPOINT", "https://fcm.googleapis.com"), "/"),

		DispatchBackend: strings.ToLower(getEnv("DISPATCH_BACKEND", DispatchBackendHTTP)),
		DispatchWorkers: getEnvInt("DISPATCH_WORKERS", 4),
		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),

		AccessTokenCache: strings.ToLower(getEnv("ACCESS_TOKEN_CACHE", TokenCacheMemory)),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvInt("REDIS_DB", 0),

		StrictHTTPStatus:  getEnvBool("STRICT_HTTP_STATUS", false),
		FunctionJWTSecret: getEnv("FUNCTION_JWT_SECRET", ""),
		SlackWebhookURL:   getEnv("SLACK_WEBHOOK_URL", ""),
	}

	// Parser les origines CORS
	origins := getEnv("CORS_ALLOWED_ORIGINS", "*")
	originsList := strings.Split(origins, ",")
	config.CORSOrigins = make([]string, 0, len(originsList))
	for _, origin := range originsList {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			config.CORSOrigins = append(config.CORSOrigins, trimmed)
		}
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate vérifie la cohérence des configurations critiques
func (c *Config) validate() error {
	switch c.TokenStore {
	case TokenStoreMongo:
	case TokenStorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN est requis quand TOKEN_STORE=postgres")
		}
	default:
		return fmt.Errorf("TOKEN_STORE invalide: %s", c.TokenStore)
	}

	switch c.DispatchBackend {
	case DispatchBackendHTTP, DispatchBackendFirebase:
	default:
		return fmt.Errorf("DISPATCH_BACKEND invalide: %s", c.DispatchBackend)
	}

	switch c.AccessTokenCache {
	case TokenCacheNone, TokenCacheMemory:
	case TokenCacheRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR est requis quand ACCESS_TOKEN_CACHE=redis")
		}
	default:
		return fmt.Errorf("ACCESS_TOKEN_CACHE invalide: %s", c.AccessTokenCache)
	}

	if c.DispatchWorkers < 1 {
		c.DispatchWorkers = 1
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}

	return nil
}

// getEnv récupère une variable d'environnement avec une valeur par défaut
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
