package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port string `mapstructure:"port"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"app"`
	Local struct {
		// Path of the SQLite file mirroring the portfolio state. Always
		// required; the site works from this file alone.
		Path string `mapstructure:"path"`
	} `mapstructure:"local"`
	Remote struct {
		// Postgres DSN of the hosted backend. Empty means pure local mode.
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"remote"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Admin struct {
		// Seed password used only when the local mirror holds no credential
		// yet. It is hashed before it is ever written anywhere.
		DefaultPassword string        `mapstructure:"default_password"`
		JWTSecret       string        `mapstructure:"jwt_secret"`
		TokenLifespan   time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"admin"`
	Cloudinary struct {
		CloudName string `mapstructure:"cloud_name"`
		ApiKey    string `mapstructure:"api_key"`
		ApiSecret string `mapstructure:"api_secret"`
	} `mapstructure:"cloudinary"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// RemoteConfigured reports whether a hosted backend is part of this
// deployment. Absence is a fully supported mode.
func (c Config) RemoteConfigured() bool {
	return c.Remote.DSN != ""
}

func (c Config) CloudinaryConfigured() bool {
	return c.Cloudinary.CloudName != ""
}

func LoadConfig() (cfg Config, err error) {

	err = godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if err = viper.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("local.path", "folio.db")
	viper.SetDefault("admin.default_password", "admin")
	viper.SetDefault("admin.token_lifespan", 24*time.Hour)

	viper.BindEnv("app.port", "APP_PORT")
	viper.BindEnv("app.env", "APP_ENV")
	viper.BindEnv("local.path", "LOCAL_STORE_PATH")
	viper.BindEnv("remote.dsn", "REMOTE_DSN")
	viper.BindEnv("redis.addr", "REDIS_ADDR")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	viper.BindEnv("admin.default_password", "ADMIN_DEFAULT_PASSWORD")
	viper.BindEnv("admin.jwt_secret", "JWT_SECRET")
	viper.BindEnv("admin.token_lifespan", "TOKEN_LIFESPAN")
	viper.BindEnv("cloudinary.cloud_name", "CLOUDINARY_CLOUD_NAME")
	viper.BindEnv("cloudinary.api_key", "CLOUDINARY_API_KEY")
	viper.BindEnv("cloudinary.api_secret", "CLOUDINARY_API_SECRET")
	viper.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	err = viper.Unmarshal(&cfg)
	return
}
