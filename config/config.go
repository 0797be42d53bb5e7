package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisEnabled    bool          `mapstructure:"REDIS_ENABLED"`
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	RedisPubSubDB   int           `mapstructure:"REDIS_PUBSUB_DB"`
	RedisQueueDB    int           `mapstructure:"REDIS_QUEUE_DB"`
	ContactCacheTTL time.Duration `mapstructure:"CONTACT_CACHE_TTL"`

	// Reminder dispatch.
	ReminderTZOffset    time.Duration `mapstructure:"REMINDER_TZ_OFFSET"`
	ReminderMaxLag      time.Duration `mapstructure:"REMINDER_MAX_LAG"`
	DispatchSchedule    string        `mapstructure:"DISPATCH_SCHEDULE"`
	DispatchBatchSize   int64         `mapstructure:"DISPATCH_BATCH_SIZE"`
	DispatchTickTimeout time.Duration `mapstructure:"DISPATCH_TICK_TIMEOUT"`

	// Realtime channel.
	RealtimeBackend   string        `mapstructure:"REALTIME_BACKEND"`
	RealtimeHeartbeat time.Duration `mapstructure:"REALTIME_HEARTBEAT"`

	// SMS / push delivery.
	SMSProvider             string        `mapstructure:"SMS_PROVIDER"`
	SMSDelivery             string        `mapstructure:"SMS_DELIVERY"`
	SMSTimeout              time.Duration `mapstructure:"SMS_TIMEOUT"`
	SMSMaxRetry             int           `mapstructure:"SMS_MAX_RETRY"`
	SMSSenderID             string        `mapstructure:"SMS_SENDER_ID"`
	AWSRegion               string        `mapstructure:"AWS_REGION"`
	FirebaseCredentialsFile string        `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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

	SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "admitdesk")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 200)

	v.SetDefault("REDIS_ENABLED", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_PUBSUB_DB", 1)
	v.SetDefault("REDIS_QUEUE_DB", 2)
	v.SetDefault("CONTACT_CACHE_TTL", "10m")

	// India Standard Time; the counsellors schedule reminders in local wall-clock time.
	v.SetDefault("REMINDER_TZ_OFFSET", "5h30m")
	v.SetDefault("REMINDER_MAX_LAG", "0s")
	v.SetDefault("DISPATCH_SCHEDULE", "@every 1m")
	v.SetDefault("DISPATCH_BATCH_SIZE", 500)
	v.SetDefault("DISPATCH_TICK_TIMEOUT", "50s")

	v.SetDefault("REALTIME_BACKEND", "local")
	v.SetDefault("REALTIME_HEARTBEAT", "25s")

	v.SetDefault("SMS_PROVIDER", "console")
	v.SetDefault("SMS_DELIVERY", "inline")
	v.SetDefault("SMS_TIMEOUT", "10s")
	v.SetDefault("SMS_MAX_RETRY", 0)
	v.SetDefault("SMS_SENDER_ID", "")
	v.SetDefault("AWS_REGION", "ap-south-1")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
