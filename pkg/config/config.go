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
	App    AppConfig
	DB     DBConfig
	Remote RemoteConfig
	Sync   SyncConfig
	HTTP   HTTPConfig
	Ops    OpsConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env        string // development, staging, production
	Name       string
	HospitalID string // tenant fijado tras el login; nunca vacío en operación
}

// DBConfig configuración de la caché local embebida (SQLite).
type DBConfig struct {
	Path string // ruta del archivo .db; una instalación = un tenant
}

// RemoteConfig configuración del gateway al almacén documental del hospital.
type RemoteConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration // timeout por llamada individual
}

// SyncConfig intervalos del planificador de sincronización.
type SyncConfig struct {
	ReconcileInterval time.Duration // empuje local → remoto
	RefreshInterval   time.Duration // descarga remoto → local
}

// HTTPConfig configuración del API de comandos local (consumido por la UI).
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// OpsConfig listener operacional (/health, /metrics).
type OpsConfig struct {
	Addr    string
	Enabled bool
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_PATH, REMOTE_BASE_URL, etc.
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
			Env:        getString(v, "APP_ENV", "development"),
			Name:       getString(v, "APP_NAME", "caton-ims"),
			HospitalID: getString(v, "HOSPITAL_ID", ""),
		},
		DB: DBConfig{
			Path: getString(v, "DB_PATH", "caton-ims.db"),
		},
		Remote: RemoteConfig{
			BaseURL: getString(v, "REMOTE_BASE_URL", "http://localhost:9000"),
			APIKey:  getString(v, "REMOTE_API_KEY", ""),
			Timeout: time.Duration(getInt(v, "REMOTE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Sync: SyncConfig{
			ReconcileInterval: time.Duration(getInt(v, "SYNC_INTERVAL_SECONDS", 60)) * time.Second,
			RefreshInterval:   time.Duration(getInt(v, "REFRESH_INTERVAL_MINUTES", 10)) * time.Minute,
		},
		HTTP: HTTPConfig{
			// Loopback por defecto: el API de comandos es local a la máquina.
			Host: getString(v, "HTTP_HOST", "127.0.0.1"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Ops: OpsConfig{
			Addr:    getString(v, "OPS_ADDR", "127.0.0.1:9090"),
			Enabled: getString(v, "OPS_ENABLED", "true") == "true",
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
