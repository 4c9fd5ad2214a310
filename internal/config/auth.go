package config

import (
	"log"
	"os"
	"sync"
	"time"
)

type AuthConfig struct {
	JWTSecret string
	JWTExpire time.Duration
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		expire := 24 * time.Hour
		if raw := os.Getenv("JWT_EXPIRE"); raw != "" {
			parsed, err := time.ParseDuration(raw)
			if err != nil {
				log.Printf("Warning: invalid JWT_EXPIRE %q, defaulting to %s", raw, expire)
			} else {
				expire = parsed
			}
		}
		authConfig = &AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			JWTExpire: expire,
		}
	})
	return authConfig
}
