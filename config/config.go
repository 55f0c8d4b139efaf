package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort string `mapstructure:"APP_PORT"`
	Env     string `mapstructure:"ENV"`
	BaseURL string `mapstructure:"BASE_URL"`

	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskQueueDB int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Payment provider.
	StripeKey            string `mapstructure:"STRIPE_KEY"`
	PaymentExpiryMinutes int    `mapstructure:"PAYMENT_EXPIRY_MINUTES"`
	Currency             string `mapstructure:"CURRENCY"`

	// Transactional email.
	SendGridKey string `mapstructure:"SENDGRID_KEY"`
	EmailFrom   string `mapstructure:"EMAIL_FROM"`
	ClinicName  string `mapstructure:"CLINIC_NAME"`
	ClinicPhone string `mapstructure:"CLINIC_PHONE"`

	// Admin operator access.
	JWTSecret     string `mapstructure:"JWT_SECRET"`
	AdminUser     string `mapstructure:"ADMIN_USER"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD"`

	// Scheduling rules (minutes are counted from midnight, local clinic time).
	WeekdayOpenMinute   int `mapstructure:"WEEKDAY_OPEN_MINUTE"`
	WeekdayCloseMinute  int `mapstructure:"WEEKDAY_CLOSE_MINUTE"`
	SaturdayOpenMinute  int `mapstructure:"SATURDAY_OPEN_MINUTE"`
	SaturdayCloseMinute int `mapstructure:"SATURDAY_CLOSE_MINUTE"`
	BreakStartMinute    int `mapstructure:"BREAK_START_MINUTE"`
	BreakEndMinute      int `mapstructure:"BREAK_END_MINUTE"`
	SlotStepMinutes     int `mapstructure:"SLOT_STEP_MINUTES"`
	BookingHorizonDays  int `mapstructure:"BOOKING_HORIZON_DAYS"`
	CancelCutoffHours   int `mapstructure:"CANCEL_CUTOFF_HOURS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("BASE_URL", "http://localhost:3000")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "gmpwellness")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 1)
	viper.SetDefault("PAYMENT_EXPIRY_MINUTES", 15)
	viper.SetDefault("CURRENCY", "brl")
	viper.SetDefault("EMAIL_FROM", "agendamento@gmpsaas.com")
	viper.SetDefault("CLINIC_NAME", "GMP Wellness")
	viper.SetDefault("CLINIC_PHONE", "(11) 96831-1914")
	viper.SetDefault("ADMIN_USER", "admin")

	// Clinic calendar: weekdays 08:00-20:00, Saturday 08:00-14:00, Sunday
	// closed, lunch break 12:00-13:30, 30-minute grid, 30-day horizon.
	viper.SetDefault("WEEKDAY_OPEN_MINUTE", 480)
	viper.SetDefault("WEEKDAY_CLOSE_MINUTE", 1200)
	viper.SetDefault("SATURDAY_OPEN_MINUTE", 480)
	viper.SetDefault("SATURDAY_CLOSE_MINUTE", 840)
	viper.SetDefault("BREAK_START_MINUTE", 720)
	viper.SetDefault("BREAK_END_MINUTE", 810)
	viper.SetDefault("SLOT_STEP_MINUTES", 30)
	viper.SetDefault("BOOKING_HORIZON_DAYS", 30)
	viper.SetDefault("CANCEL_CUTOFF_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
