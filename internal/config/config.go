package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config junta toda la configuración de la app. Los secretos (credenciales
// del tenant, DSN, secreto de sesión) vienen siempre de env, nunca de código.
type Config struct {
	Port    string
	BaseURL string

	DBDSN string

	Auth0Domain       string
	Auth0ClientID     string
	Auth0ClientSecret string

	AppSecretKey string
	SessionTTL   time.Duration

	LogLevel  string
	LogFormat string
	AppName   string
}

// Load lee un .env si está presente y después las env vars.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	v := viper.New()

	v.SetDefault("PORT", "3000")
	v.SetDefault("BASE_URL", "http://localhost:3000")

	v.SetDefault("DB_DSN", "")

	v.SetDefault("AUTH0_DOMAIN", "")
	v.SetDefault("AUTH0_CLIENT_ID", "")
	v.SetDefault("AUTH0_CLIENT_SECRET", "")

	v.SetDefault("APP_SECRET_KEY", "")
	v.SetDefault("SESSION_TTL_HOURS", 24)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("APP_NAME", "pet-registry")

	v.AutomaticEnv()

	cfg := &Config{
		Port:    v.GetString("PORT"),
		BaseURL: strings.TrimRight(v.GetString("BASE_URL"), "/"),

		DBDSN: v.GetString("DB_DSN"),

		Auth0Domain:       v.GetString("AUTH0_DOMAIN"),
		Auth0ClientID:     v.GetString("AUTH0_CLIENT_ID"),
		Auth0ClientSecret: v.GetString("AUTH0_CLIENT_SECRET"),

		AppSecretKey: v.GetString("APP_SECRET_KEY"),
		SessionTTL:   time.Duration(v.GetInt("SESSION_TTL_HOURS")) * time.Hour,

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
		AppName:   v.GetString("APP_NAME"),
	}

	return cfg, nil
}

// CallbackURL es la URL absoluta que se registra en el tenant.
func (c *Config) CallbackURL() string {
	return c.BaseURL + "/callback"
}

// HomeURL es el returnTo del logout del proveedor.
func (c *Config) HomeURL() string {
	return c.BaseURL + "/"
}
