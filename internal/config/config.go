// backend-go/internal/config/config.go
package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Archive  ArchiveConfig
	Rules    RulesConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type ArchiveConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RulesConfig carries the deployment-specific constants of the
// reconciliation pipeline. It is loaded once and injected at pipeline
// construction; nothing downstream reads viper directly.
type RulesConfig struct {
	// ExcludedVendor is removed from every relation by case-insensitive
	// exact match on full name. Standing data-quality correction.
	ExcludedVendor string

	// Roster eligibility predicates.
	SalesChannel  string
	OperationUnit string
	StoreType     string
	ActiveStatus  string
	EligibleRoles []string

	// Role subset considered for the no-sale anti-join.
	NoSaleRoles []string

	// SentinelSupervisor replaces a blank supervisor after resolution.
	SentinelSupervisor string

	// JuarezOriginLabel is the origin code emitted for the Juarez
	// fulfillment center. Report variants disagree ("CC JV" vs "Juarez"),
	// so the label is configuration rather than a constant.
	JuarezOriginLabel string

	// UnknownStatusPolicy decides what the classifier does with a raw
	// status outside the known enumeration: "delivered" folds it into the
	// delivered bucket, "passthrough" preserves the raw value.
	UnknownStatusPolicy string
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 30)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "transito")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 1200)
		viper.SetDefault("ARCHIVE_ENABLED", false)
		viper.SetDefault("ARCHIVE_ENDPOINT", "")
		viper.SetDefault("ARCHIVE_ACCESS_KEY", "")
		viper.SetDefault("ARCHIVE_SECRET_KEY", "")
		viper.SetDefault("ARCHIVE_BUCKET", "transito-snapshots")
		viper.SetDefault("ARCHIVE_USE_SSL", true)

		viper.SetDefault("RULES_EXCLUDED_VENDOR", "ABASTECEDORA Y SUMINISTROS ORTEGA/ISABEL VALDEZ JIMENEZ")
		viper.SetDefault("RULES_SALES_CHANNEL", "ATT")
		viper.SetDefault("RULES_OPERATION_UNIT", "CONTACT CENTER")
		viper.SetDefault("RULES_STORE_TYPE", "VIRTUAL")
		viper.SetDefault("RULES_ACTIVE_STATUS", "ACTIVO")
		viper.SetDefault("RULES_ELIGIBLE_ROLES", strings.Join([]string{
			"ASESOR TELEFONICO",
			"ASESOR TELEFONICO 7500",
			"EJECUTIVO TELEFONICO 6500 AM",
			"EJECUTIVO TELEFONICO 6500 PM",
			"SUPERVISOR DE CONTACT CENTER",
		}, ","))
		viper.SetDefault("RULES_NO_SALE_ROLES", strings.Join([]string{
			"ASESOR TELEFONICO 7500",
			"EJECUTIVO TELEFONICO 6500 AM",
		}, ","))
		viper.SetDefault("RULES_SENTINEL_SUPERVISOR", "ENCUBADORA")
		viper.SetDefault("RULES_JUAREZ_ORIGIN_LABEL", "CC JV")
		viper.SetDefault("RULES_UNKNOWN_STATUS_POLICY", "delivered")

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Archive: ArchiveConfig{
				Enabled:   viper.GetBool("ARCHIVE_ENABLED"),
				Endpoint:  viper.GetString("ARCHIVE_ENDPOINT"),
				AccessKey: viper.GetString("ARCHIVE_ACCESS_KEY"),
				SecretKey: viper.GetString("ARCHIVE_SECRET_KEY"),
				Bucket:    viper.GetString("ARCHIVE_BUCKET"),
				UseSSL:    viper.GetBool("ARCHIVE_USE_SSL"),
			},
			Rules: RulesConfig{
				ExcludedVendor:      viper.GetString("RULES_EXCLUDED_VENDOR"),
				SalesChannel:        viper.GetString("RULES_SALES_CHANNEL"),
				OperationUnit:       viper.GetString("RULES_OPERATION_UNIT"),
				StoreType:           viper.GetString("RULES_STORE_TYPE"),
				ActiveStatus:        viper.GetString("RULES_ACTIVE_STATUS"),
				EligibleRoles:       splitList(viper.GetString("RULES_ELIGIBLE_ROLES")),
				NoSaleRoles:         splitList(viper.GetString("RULES_NO_SALE_ROLES")),
				SentinelSupervisor:  viper.GetString("RULES_SENTINEL_SUPERVISOR"),
				JuarezOriginLabel:   viper.GetString("RULES_JUAREZ_ORIGIN_LABEL"),
				UnknownStatusPolicy: viper.GetString("RULES_UNKNOWN_STATUS_POLICY"),
			},
		}
	})

	return instance
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
