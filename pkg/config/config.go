package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	ERP   ERPConfig
	Cache CacheConfig
	JWT   JWTConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ERPConfig credenciales y endpoint del RESTlet del ERP (token-based auth OAuth 1.0).
// Las credenciales viven únicamente en este struct y se inyectan al cliente por
// constructor; no hay estado global de credenciales en el proceso.
type ERPConfig struct {
	AccountID      string // ej: "1234567" o "1234567_SB1" (sandbox)
	ConsumerKey    string // del integration record
	ConsumerSecret string
	TokenID        string // de la autenticación token-based
	TokenSecret    string
	RestletURL     string // vacío = URL estándar derivada del AccountID
	TimeoutSeconds int    // timeout por llamada al ERP
}

// Timeout devuelve el timeout por llamada como time.Duration.
func (c ERPConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// CacheConfig configuración del caché de reportes.
// Driver: "none" (sin caché), "memory" (mapa en proceso) o "redis".
type CacheConfig struct {
	Driver     string
	RedisAddr  string
	RedisPass  string
	RedisDB    int
	TTLMinutes int // TTL de cada entrada; acotado a 60 min
}

// TTL devuelve el tiempo de vida de las entradas del caché (máx 1 hora).
func (c CacheConfig) TTL() time.Duration {
	minutes := c.TTLMinutes
	if minutes <= 0 {
		minutes = 15
	}
	if minutes > 60 {
		minutes = 60
	}
	return time.Duration(minutes) * time.Minute
}

// JWTConfig configuración de JWT (solo validación; los tokens los emite el SSO corporativo).
type JWTConfig struct {
	Secret string
	Issuer string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, ERP_ACCOUNT_ID, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	// Bind de variables de entorno (Viper las lee automáticamente si AutomaticEnv está activo)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "top40-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		ERP: ERPConfig{
			AccountID:      getString(v, "ERP_ACCOUNT_ID", ""),
			ConsumerKey:    getString(v, "ERP_CONSUMER_KEY", ""),
			ConsumerSecret: getString(v, "ERP_CONSUMER_SECRET", ""),
			TokenID:        getString(v, "ERP_TOKEN_ID", ""),
			TokenSecret:    getString(v, "ERP_TOKEN_SECRET", ""),
			RestletURL:     getString(v, "ERP_RESTLET_URL", ""),
			TimeoutSeconds: getInt(v, "ERP_TIMEOUT_SECONDS", 30),
		},
		Cache: CacheConfig{
			Driver:     getString(v, "CACHE_DRIVER", "memory"),
			RedisAddr:  getString(v, "CACHE_REDIS_ADDR", "localhost:6379"),
			RedisPass:  getString(v, "CACHE_REDIS_PASSWORD", ""),
			RedisDB:    getInt(v, "CACHE_REDIS_DB", 0),
			TTLMinutes: getInt(v, "CACHE_TTL_MINUTES", 15),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "top40-api"),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
