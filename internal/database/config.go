package database

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Node          string
	Host          string
	Port          string
	User          string
	Password      string
	DBName        string
	SSLMode       string
	HTTPPort      string
	RedisURL      string
	RedisPassword string
	RedisDB       int
	SecretKey     string
}

type nodeTarget struct {
	host string
	port string
	user string
}

// Each deployment node (the administration office, the shops and the
// warehouses) talks to its own database endpoint.
var nodeTargets = map[string]nodeTarget{
	"administration": {host: "localhost", port: "5000", user: "admin"},
	"shop1":          {host: "localhost", port: "5001", user: "shop1"},
	"shop2":          {host: "localhost", port: "5002", user: "shop2"},
	"warehouse1":     {host: "localhost", port: "5011", user: "warehouse1"},
	"warehouse2":     {host: "localhost", port: "5012", user: "warehouse2"},
}

const defaultNode = "shop1"

// LoadConfig resolves the NODE name to a database target and then lets
// individual DB_* variables override every field.
func LoadConfig() (*Config, error) {
	// .env is optional, a missing file is not an error
	_ = godotenv.Load()

	node := getEnv("NODE", defaultNode)
	target, ok := nodeTargets[node]
	if !ok {
		node = defaultNode
		target = nodeTargets[defaultNode]
	}

	return &Config{
		Node:          node,
		Host:          getEnv("DB_HOST", target.host),
		Port:          getEnv("DB_PORT", target.port),
		User:          getEnv("DB_USER", target.user),
		Password:      getEnv("DB_PASSWORD", "pass"),
		DBName:        getEnv("DB_NAME", "vinlab"),
		SSLMode:       getEnv("DB_SSLMODE", "disable"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		SecretKey:     getEnv("SECRET_KEY", "change-me-in-production"),
	}, nil
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
