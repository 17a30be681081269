package config

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	App      AppConfig      `mapstructure:"app"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Comment  CommentConfig  `mapstructure:"comment"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // 小时
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

// CacheConfig 页面缓存配置
type CacheConfig struct {
	Driver     string        `mapstructure:"driver"` // redis | memory | multi_level
	PageTTL    time.Duration `mapstructure:"page_ttl"`
	MemorySize int           `mapstructure:"memory_size"`
	LocalTTL   time.Duration `mapstructure:"local_ttl"` // multi_level 本地层 TTL
}

// CommentConfig 评论提交配置
type CommentConfig struct {
	MaxLength int     `mapstructure:"max_length"`
	RateLimit float64 `mapstructure:"rate_limit"` // 每秒允许的提交数
	RateBurst int     `mapstructure:"rate_burst"`
}

const (
	CacheDriverRedis      = "redis"
	CacheDriverMemory     = "memory"
	CacheDriverMultiLevel = "multi_level"
)

var GlobalConfig Config

// Validate 验证配置
func (c *Config) Validate() error {
	if c.JWT.Secret == "" || c.JWT.Secret == "your_super_secret_key" {
		return errors.New("please set a secure JWT secret in production")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}

	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}

	switch c.Cache.Driver {
	case CacheDriverRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis address is required when cache.driver is redis")
		}
	case CacheDriverMemory:
		if c.Cache.MemorySize <= 0 {
			return errors.New("cache.memory_size must be positive")
		}
	case CacheDriverMultiLevel:
		if c.Redis.Addr == "" || c.Cache.MemorySize <= 0 {
			return errors.New("multi_level cache needs redis address and positive cache.memory_size")
		}
		if c.Cache.LocalTTL <= 0 {
			return errors.New("cache.local_ttl must be positive")
		}
	default:
		return errors.New("cache.driver must be redis, memory or multi_level")
	}

	if c.Comment.MaxLength < 3 {
		return errors.New("comment.max_length must be at least 3")
	}

	return nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("jwt.expire", 24)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.debug", true)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("cache.driver", CacheDriverRedis)
	v.SetDefault("cache.page_ttl", 5*time.Minute)
	v.SetDefault("cache.memory_size", 500)
	v.SetDefault("cache.local_ttl", 10*time.Second)
	v.SetDefault("comment.max_length", 5000)
	v.SetDefault("comment.rate_limit", 1)
	v.SetDefault("comment.rate_burst", 5)
}

// Load 从指定目录读取配置，不做全局赋值
func Load(env string, paths ...string) (Config, error) {
	v := viper.New()

	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	// 手动覆盖，以防 viper 无法正确解析嵌套结构的环境变量
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		cfg.Redis.Addr = redisAddr
	}
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		cfg.JWT.Secret = jwtSecret
	}

	return cfg, nil
}

// LoadConfig 加载配置
func LoadConfig() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := Load(env, "./configs", ".")
	if err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	GlobalConfig = cfg
	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
