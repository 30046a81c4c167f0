package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// AppConfig is the process-wide configuration instance.
var AppConfig *Config

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	MongoDB   MongoDBConfig   `yaml:"mongodb"`
	AMQP      AMQPConfig      `yaml:"amqp"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Security  SecurityConfig  `yaml:"security"`
	Analytics AnalyticsConfig `yaml:"analytics"`
}

type ServerConfig struct {
	Port         string        `yaml:"port" env:"SERVER_PORT" default:"8801"`
	Mode         string        `yaml:"mode" env:"GIN_MODE" default:"debug"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver" default:"mysql"`
	DSN             string        `yaml:"dsn" env:"MYSQL_DSN"`
	MaxIdleConns    int           `yaml:"max_idle_conns" default:"10"`
	MaxOpenConns    int           `yaml:"max_open_conns" default:"100"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"1h"`
	LogLevel        string        `yaml:"log_level" default:"info"`
}

type RedisConfig struct {
	Addr         string        `yaml:"addr" env:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB           int           `yaml:"db" env:"REDIS_DB" default:"0"`
	PoolSize     int           `yaml:"pool_size" default:"10"`
	DialTimeout  time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout  time.Duration `yaml:"read_timeout" default:"3s"`
	WriteTimeout time.Duration `yaml:"write_timeout" default:"3s"`
}

type JWTConfig struct {
	SigningKey      string        `yaml:"signing_key" env:"JWT_SIGNING_KEY"`
	Expiry          time.Duration `yaml:"expiry" default:"24h"`
	RefreshExpiry   time.Duration `yaml:"refresh_expiry" default:"168h"`
	Issuer          string        `yaml:"issuer" default:"omnily-go-admin"`
	EnableBlacklist bool          `yaml:"enable_blacklist" default:"true"`
}

type MongoDBConfig struct {
	Databases map[string]MongoDatabase `yaml:"databases"`
}

type MongoDatabase struct {
	URI         string            `yaml:"uri"`
	Collections map[string]string `yaml:"collections"`
}

// AMQPConfig configures the notification queue connection. An empty URL
// disables queue publishing.
type AMQPConfig struct {
	URL string `yaml:"url" env:"AMQP_URL"`
}

// StorageConfig configures the object store used for exported reports.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint" env:"TOS_ENDPOINT"`
	Region    string `yaml:"region" env:"TOS_REGION"`
	Bucket    string `yaml:"bucket" env:"TOS_BUCKET"`
	AccessKey string `yaml:"access_key" env:"TOS_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"TOS_SECRET_KEY"`
}

type LogConfig struct {
	Level      string `yaml:"level" default:"info"`
	Format     string `yaml:"format" default:"json"`
	Output     string `yaml:"output" default:"stdout"`
	FilePath   string `yaml:"file_path" default:"logs/app.log"`
	MaxSize    int    `yaml:"max_size" default:"100"`
	MaxBackups int    `yaml:"max_backups" default:"7"`
	MaxAge     int    `yaml:"max_age" default:"30"`
}

type SecurityConfig struct {
	EnableHTTPS     bool     `yaml:"enable_https" default:"false"`
	TLSCertFile     string   `yaml:"tls_cert_file"`
	TLSKeyFile      string   `yaml:"tls_key_file"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
	TrustedProxies  []string `yaml:"trusted_proxies"`
	RateLimit       int      `yaml:"rate_limit" default:"1000"`
	EnableRateLimit bool     `yaml:"enable_rate_limit" default:"true"`
}

// AnalyticsConfig holds the derivation thresholds: segmentation percentile
// positions, anomaly rule limits and recommendation triggers. Defaults track
// the loyalty platform's published rules, deployments can override per
// install.
type AnalyticsConfig struct {
	VIPPosition        float64 `yaml:"vip_position"`
	RegularPosition    float64 `yaml:"regular_position"`
	OccasionalPosition float64 `yaml:"occasional_position"`

	RetentionCritical    float64 `yaml:"retention_critical"`
	RetentionWarning     float64 `yaml:"retention_warning"`
	RevenueDropCritical  float64 `yaml:"revenue_drop_critical"`
	RedemptionRateFloor  float64 `yaml:"redemption_rate_floor"`
	RedemptionMinPoints  int64   `yaml:"redemption_min_points"`
	CustomersDropWarning float64 `yaml:"customers_drop_warning"`
	GrowthInfoThreshold  float64 `yaml:"growth_info_threshold"`

	AverageTicketTarget  float64 `yaml:"average_ticket_target"`
	AtRiskShareLimit     float64 `yaml:"at_risk_share_limit"`
	VIPShareFloor        float64 `yaml:"vip_share_floor"`
	RedemptionRemindRate float64 `yaml:"redemption_remind_rate"`

	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

// InitConfig loads defaults, the YAML file and environment overrides, in that
// order.
func InitConfig() error {
	if err := loadEnv(); err != nil {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	config := &Config{}
	setDefaults(config)

	if err := loadFromFile(config); err != nil {
		log.Printf("Warning: failed to load config file: %v", err)
	}

	if err := loadFromEnv(config); err != nil {
		return fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	AppConfig = config
	return nil
}

func loadEnv() error {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFiles := []string{
		".env",
		fmt.Sprintf(".env.%s", env),
		".env.local",
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			if err := godotenv.Load(file); err != nil {
				return err
			}
		}
	}

	return nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8801"
	config.Server.Mode = "debug"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second

	config.Database.Driver = "mysql"
	config.Database.MaxIdleConns = 10
	config.Database.MaxOpenConns = 100
	config.Database.ConnMaxLifetime = time.Hour
	config.Database.LogLevel = "info"

	config.Redis.Addr = "localhost:6379"
	config.Redis.DB = 0
	config.Redis.PoolSize = 10
	config.Redis.DialTimeout = 5 * time.Second
	config.Redis.ReadTimeout = 3 * time.Second
	config.Redis.WriteTimeout = 3 * time.Second

	config.JWT.Expiry = 24 * time.Hour
	config.JWT.RefreshExpiry = 168 * time.Hour
	config.JWT.Issuer = "omnily-go-admin"
	config.JWT.EnableBlacklist = true

	config.Log.Level = "info"
	config.Log.Format = "json"
	config.Log.Output = "stdout"
	config.Log.FilePath = "logs/app.log"
	config.Log.MaxSize = 100
	config.Log.MaxBackups = 7
	config.Log.MaxAge = 30

	config.Security.EnableHTTPS = false
	config.Security.RateLimit = 1000
	config.Security.EnableRateLimit = true

	config.Analytics.VIPPosition = 0.15
	config.Analytics.RegularPosition = 0.60
	config.Analytics.OccasionalPosition = 0.90
	config.Analytics.RetentionCritical = 40
	config.Analytics.RetentionWarning = 60
	config.Analytics.RevenueDropCritical = -10
	config.Analytics.RedemptionRateFloor = 5
	config.Analytics.RedemptionMinPoints = 1000
	config.Analytics.CustomersDropWarning = -5
	config.Analytics.GrowthInfoThreshold = 10
	config.Analytics.AverageTicketTarget = 50
	config.Analytics.AtRiskShareLimit = 0.15
	config.Analytics.VIPShareFloor = 0.10
	config.Analytics.RedemptionRemindRate = 10
	config.Analytics.RefreshInterval = 30 * time.Second
}

func loadFromFile(config *Config) error {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config/config.yaml"
	}

	data, err := ioutil.ReadFile(configFile)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, config)
}

func loadFromEnv(config *Config) error {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		config.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		config.Server.Mode = mode
	}

	if dsn := os.Getenv("MYSQL_DSN"); dsn != "" {
		config.Database.DSN = dsn
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		config.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		config.Redis.Password = password
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			config.Redis.DB = db
		}
	}

	if signingKey := os.Getenv("JWT_SIGNING_KEY"); signingKey != "" {
		config.JWT.SigningKey = signingKey
	}

	if url := os.Getenv("AMQP_URL"); url != "" {
		config.AMQP.URL = url
	}

	if endpoint := os.Getenv("TOS_ENDPOINT"); endpoint != "" {
		config.Storage.Endpoint = endpoint
	}
	if region := os.Getenv("TOS_REGION"); region != "" {
		config.Storage.Region = region
	}
	if bucket := os.Getenv("TOS_BUCKET"); bucket != "" {
		config.Storage.Bucket = bucket
	}
	if ak := os.Getenv("TOS_ACCESS_KEY"); ak != "" {
		config.Storage.AccessKey = ak
	}
	if sk := os.Getenv("TOS_SECRET_KEY"); sk != "" {
		config.Storage.SecretKey = sk
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}

	if config.JWT.SigningKey == "" {
		return fmt.Errorf("JWT signing key is required")
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(config.Server.Port, ":")); err != nil {
		return fmt.Errorf("invalid server port: %s", config.Server.Port)
	}

	validModes := []string{"debug", "release", "test"}
	modeValid := false
	for _, mode := range validModes {
		if config.Server.Mode == mode {
			modeValid = true
			break
		}
	}
	if !modeValid {
		return fmt.Errorf("invalid server mode: %s", config.Server.Mode)
	}

	return nil
}

// GetConfig returns the loaded configuration, panicking when InitConfig has
// not run.
func GetConfig() *Config {
	if AppConfig == nil {
		log.Fatal("config not initialized, call InitConfig() first")
	}
	return AppConfig
}

func IsProduction() bool {
	return AppConfig != nil && AppConfig.Server.Mode == "release"
}

func IsDevelopment() bool {
	return AppConfig != nil && AppConfig.Server.Mode == "debug"
}
