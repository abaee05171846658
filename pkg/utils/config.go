package utils

import (
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	OTP      OTPConfig
	Booking  BookingConfig
	Payment  PaymentConfig
	PayOS    PayOSConfig
	Rabbit   RabbitConfig
}

type AppConfig struct {
	Name                string
	Port                string
	Debug               bool
	LogPath             string
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	CORSAllowedOrigins  []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SessionConfig struct {
	ExpiryHours int
}

type OTPConfig struct {
	ExpiryMinutes int
	Length        int
}

// BookingConfig holds the business-hour window and sweep timings.
type BookingConfig struct {
	OpenHour               int
	CloseHour              int
	ReminderLeadHours      int
	AutoCompleteAfterHours int
}

type PaymentConfig struct {
	FeePercent decimal.Decimal
}

type PayOSConfig struct {
	BaseURL     string
	ClientID    string
	APIKey      string
	ChecksumKey string
	ReturnURL   string
	CancelURL   string
}

type RabbitConfig struct {
	URL      string
	Exchange string
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "cosplay-booking")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("WRITE_TIMEOUT_SECONDS", 30)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
	v.SetDefault("OTP_EXPIRY_MINUTES", 10)
	v.SetDefault("OTP_LENGTH", 6)
	v.SetDefault("BOOKING_OPEN_HOUR", 8)
	v.SetDefault("BOOKING_CLOSE_HOUR", 22)
	v.SetDefault("REMINDER_LEAD_HOURS", 24)
	v.SetDefault("AUTO_COMPLETE_AFTER_HOURS", 24)
	v.SetDefault("PAYMENT_FEE_PERCENT", "0")
	v.SetDefault("PAYOS_BASE_URL", "https://api-merchant.payos.vn")
	v.SetDefault("RABBIT_EXCHANGE", "cosplay.events")

	// .env is optional; environment variables always win.
	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	v.AutomaticEnv()

	feePercent, err := decimal.NewFromString(v.GetString("PAYMENT_FEE_PERCENT"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:                v.GetString("APP_NAME"),
			Port:                v.GetString("PORT"),
			Debug:               v.GetBool("DEBUG"),
			LogPath:             v.GetString("LOG_PATH"),
			ReadTimeoutSeconds:  v.GetInt("READ_TIMEOUT_SECONDS"),
			WriteTimeoutSeconds: v.GetInt("WRITE_TIMEOUT_SECONDS"),
			CORSAllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
		OTP: OTPConfig{
			ExpiryMinutes: v.GetInt("OTP_EXPIRY_MINUTES"),
			Length:        v.GetInt("OTP_LENGTH"),
		},
		Booking: BookingConfig{
			OpenHour:               v.GetInt("BOOKING_OPEN_HOUR"),
			CloseHour:              v.GetInt("BOOKING_CLOSE_HOUR"),
			ReminderLeadHours:      v.GetInt("REMINDER_LEAD_HOURS"),
			AutoCompleteAfterHours: v.GetInt("AUTO_COMPLETE_AFTER_HOURS"),
		},
		Payment: PaymentConfig{
			FeePercent: feePercent,
		},
		PayOS: PayOSConfig{
			BaseURL:     v.GetString("PAYOS_BASE_URL"),
			ClientID:    v.GetString("PAYOS_CLIENT_ID"),
			APIKey:      v.GetString("PAYOS_API_KEY"),
			ChecksumKey: v.GetString("PAYOS_CHECKSUM_KEY"),
			ReturnURL:   v.GetString("PAYOS_RETURN_URL"),
			CancelURL:   v.GetString("PAYOS_CANCEL_URL"),
		},
		Rabbit: RabbitConfig{
			URL:      v.GetString("RABBIT_URL"),
			Exchange: v.GetString("RABBIT_EXCHANGE"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
