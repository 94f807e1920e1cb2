package services

import (
	"os"
	"strconv"
)

const (
	OutfitQueue   = "outfits"
	defaultSecret = "local-development-secret"
)

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

func GetEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

// JWTSecret is shared by the API middleware and token issuers.
func JWTSecret() []byte {
	return []byte(GetEnv("JWT_SECRET", defaultSecret))
}

func BrokerAddress() string {
	return GetEnv("ASYNC_BROKER_ADDRESS", "localhost:6379")
}

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}
