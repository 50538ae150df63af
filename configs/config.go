package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Env    string `mapstructure:"env"`
	Server struct {
		Addr         string        `mapstructure:"addr"`
		ReadTimeout  time.Duration `mapstructure:"read_timeout"`
		WriteTimeout time.Duration `mapstructure:"write_timeout"`
		IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	} `mapstructure:"server"`
	DB struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		SECRET string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`
	Mail struct {
		Host     string        `mapstructure:"host"`
		Port     int           `mapstructure:"port"`
		Username string        `mapstructure:"username"`
		Password string        `mapstructure:"password"`
		From     string        `mapstructure:"from"`
		Timeout  time.Duration `mapstructure:"timeout"`
	} `mapstructure:"mail"`
	RateLimit struct {
		RPS   float64 `mapstructure:"rps"`
		Burst int     `mapstructure:"burst"`
	} `mapstructure:"ratelimit"`
	Swaps struct {
		DefaultLimit int `mapstructure:"default_limit"`
	} `mapstructure:"swaps"`
}

var AppConfig Config

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "production")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.dsn", "")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("mail.host", "")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.username", "")
	v.SetDefault("mail.password", "")
	v.SetDefault("mail.from", "SkillSwap <no-reply@skillswap.local>")
	v.SetDefault("mail.timeout", 10*time.Second)
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("swaps.default_limit", 10)
}

// Load reads config.yaml from dir (if present) and overlays environment
// variables such as JWT_SECRET or DB_DSN.
func Load(dir string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var fileLookupError viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &fileLookupError) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		logger.Log.Warn("config file not found, using defaults and environment", zap.String("dir", dir))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWT.SECRET == "" {
		return errors.New("jwt.secret is required")
	}
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn is required")
	}
	return nil
}

func LoadConfig(dir string) {
	cfg, err := Load(dir)
	if err != nil {
		logger.Log.Fatal("failed to read config", zap.Error(err))
	}
	AppConfig = cfg
}
