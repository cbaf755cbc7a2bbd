package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the server's runtime configuration.
type Config struct {
	Addr string

	TickPeriod time.Duration
	TickFloor  time.Duration

	NormTimeout       float64
	WaitingInfoPeriod float64

	DBPath string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	MainURL      string
	MainUsername string
	MainPassword string
	ResultPath   string
	LoginPath    string
	InitPath     string

	// Entrance is the raw policy from config; the main server's initialize
	// response replaces it when present.
	Entrance EntrancePolicy

	Log LogConfig
}

type LogConfig struct {
	File       string
	Level      string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("tick.period", time.Second/30)
	v.SetDefault("tick.floor", time.Millisecond)
	v.SetDefault("lobby.norm_timeout", 10.0)
	v.SetDefault("lobby.waiting_info_period", 0.5)
	v.SetDefault("db.path", "penfootball.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "penfootball-server")
	v.SetDefault("jwt.audience", "penfootball-frontend")
	v.SetDefault("main.url", "")
	v.SetDefault("main.username", "")
	v.SetDefault("main.password", "")
	v.SetDefault("main.result_path", "api/servers/gameresult")
	v.SetDefault("main.login_path", "api/users/login")
	v.SetDefault("main.init_path", "api/servers/initialize")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("log.compress", true)
}

// LoadConfig reads .env (if any), then penfootball.yaml from the given
// directories (if any), then PENFOOTBALL_* environment variables.
func LoadConfig(dirs ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigName("penfootball")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix("penfootball")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if len(dirs) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Addr:              v.GetString("addr"),
		TickPeriod:        v.GetDuration("tick.period"),
		TickFloor:         v.GetDuration("tick.floor"),
		NormTimeout:       v.GetFloat64("lobby.norm_timeout"),
		WaitingInfoPeriod: v.GetFloat64("lobby.waiting_info_period"),
		DBPath:            v.GetString("db.path"),
		JWTSecret:         v.GetString("jwt.secret"),
		JWTIssuer:         v.GetString("jwt.issuer"),
		JWTAudience:       v.GetString("jwt.audience"),
		MainURL:           v.GetString("main.url"),
		MainUsername:      v.GetString("main.username"),
		MainPassword:      v.GetString("main.password"),
		ResultPath:        v.GetString("main.result_path"),
		LoginPath:         v.GetString("main.login_path"),
		InitPath:          v.GetString("main.init_path"),
		Log: LogConfig{
			File:       v.GetString("log.file"),
			Level:      v.GetString("log.level"),
			MaxSize:    v.GetInt("log.max_size"),
			MaxBackups: v.GetInt("log.max_backups"),
			MaxAge:     v.GetInt("log.max_age"),
			Compress:   v.GetBool("log.compress"),
		},
	}
	if cfg.TickPeriod <= 0 {
		return nil, fmt.Errorf("tick.period must be positive, got %v", cfg.TickPeriod)
	}
	if raw := v.Get("entrance"); raw != nil {
		p, err := ParsePolicy(raw)
		if err != nil {
			return nil, fmt.Errorf("entrance: %w", err)
		}
		cfg.Entrance = p
	}
	return cfg, nil
}
