package config

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Backend   BackendConfig
	POS       POSConfig
	Currency  CurrencyConfig
	Receipt   ReceiptConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	Debug           bool
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// BackendConfig points at the retail backend REST API.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
	Token   string
}

type POSConfig struct {
	VATRate            decimal.Decimal
	DefaultWarehouseID int64
	WalkInName         string
	CatalogTTL         time.Duration
	AutoPrint          bool
}

type CurrencyConfig struct {
	Code     string
	Locale   string
	Decimals int
}

type ReceiptConfig struct {
	StoreName string
	Address   string
	Phone     string
	TaxID     string
	Footer    string
	Width     int
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type         string
	USBPath      string
	Address      string
	DialTimeout  time.Duration
	WriteTimeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "pos-register")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("APP_SHUTDOWN_TIMEOUT_SECONDS", 15)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:5000/api")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	viper.SetDefault("BACKEND_TOKEN", "")
	viper.SetDefault("POS_VAT_RATE", "0")
	viper.SetDefault("POS_DEFAULT_WAREHOUSE_ID", 1)
	viper.SetDefault("POS_WALK_IN_NAME", "Consumidor Final")
	viper.SetDefault("POS_CATALOG_TTL_SECONDS", 300)
	viper.SetDefault("POS_AUTO_PRINT", false)
	viper.SetDefault("CURRENCY_CODE", "COP")
	viper.SetDefault("CURRENCY_LOCALE", "es-CO")
	viper.SetDefault("CURRENCY_DECIMALS", 0)
	viper.SetDefault("RECEIPT_STORE_NAME", "Punto de Venta")
	viper.SetDefault("RECEIPT_WIDTH", 48)
	viper.SetDefault("RECEIPT_FOOTER", "Gracias por su compra")
	viper.SetDefault("DB_ENABLED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos_register")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Bogota")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:4200")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 300)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_DIAL_TIMEOUT_SECONDS", 5)
	viper.SetDefault("PRINTER_WRITE_TIMEOUT_SECONDS", 10)
	viper.SetDefault("METRICS_ENABLED", true)

	vat, err := decimal.NewFromString(viper.GetString("POS_VAT_RATE"))
	if err != nil {
		log.Printf("Warning: invalid POS_VAT_RATE %q, using 0: %v", viper.GetString("POS_VAT_RATE"), err)
		vat = decimal.Zero
	}

	return &Config{
		App: AppConfig{
			Name:            viper.GetString("APP_NAME"),
			Env:             viper.GetString("APP_ENV"),
			Port:            viper.GetString("APP_PORT"),
			Debug:           viper.GetBool("APP_DEBUG"),
			ShutdownTimeout: seconds("APP_SHUTDOWN_TIMEOUT_SECONDS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Backend: BackendConfig{
			BaseURL: viper.GetString("BACKEND_BASE_URL"),
			Timeout: seconds("BACKEND_TIMEOUT_SECONDS"),
			Token:   viper.GetString("BACKEND_TOKEN"),
		},
		POS: POSConfig{
			VATRate:            vat,
			DefaultWarehouseID: viper.GetInt64("POS_DEFAULT_WAREHOUSE_ID"),
			WalkInName:         viper.GetString("POS_WALK_IN_NAME"),
			CatalogTTL:         seconds("POS_CATALOG_TTL_SECONDS"),
			AutoPrint:          viper.GetBool("POS_AUTO_PRINT"),
		},
		Currency: CurrencyConfig{
			Code:     viper.GetString("CURRENCY_CODE"),
			Locale:   viper.GetString("CURRENCY_LOCALE"),
			Decimals: viper.GetInt("CURRENCY_DECIMALS"),
		},
		Receipt: ReceiptConfig{
			StoreName: viper.GetString("RECEIPT_STORE_NAME"),
			Address:   viper.GetString("RECEIPT_ADDRESS"),
			Phone:     viper.GetString("RECEIPT_PHONE"),
			TaxID:     viper.GetString("RECEIPT_TAX_ID"),
			Footer:    viper.GetString("RECEIPT_FOOTER"),
			Width:     viper.GetInt("RECEIPT_WIDTH"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			ExpiryHours: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:         viper.GetString("PRINTER_TYPE"),
			USBPath:      viper.GetString("PRINTER_USB_PATH"),
			Address:      viper.GetString("PRINTER_ADDRESS"),
			DialTimeout:  seconds("PRINTER_DIAL_TIMEOUT_SECONDS"),
			WriteTimeout: seconds("PRINTER_WRITE_TIMEOUT_SECONDS"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
		},
	}
}

func seconds(key string) time.Duration {
	return time.Duration(viper.GetInt(key)) * time.Second
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be positive")
	}
	if c.POS.VATRate.IsNegative() || c.POS.VATRate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("POS_VAT_RATE must be between 0 and 100")
	}
	if c.App.Env == "production" && c.JWT.Secret == "change-this-secret-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}
