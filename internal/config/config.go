package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string     `yaml:"env" env:"ENV" env-default:"local"`
	LogsPath    string     `yaml:"logs_path" env:"LOGS_PATH" env-default:"logs/app.log"`
	StoragePath string     `yaml:"storage_path" env:"STORAGE_PATH" env-default:"data/taskflow.db"`
	ClientURL   string     `yaml:"client_url" env:"CLIENT_URL" env-default:"http://localhost:3000"`
	HTTPServer  HTTPServer `yaml:"http_server"`
	JWT         JWT        `yaml:"jwt"`
	SMTP        SMTP       `yaml:"smtp"`
	Firebase    Firebase   `yaml:"firebase"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type JWT struct {
	Secret   string        `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	TokenTTL time.Duration `yaml:"token_ttl" env:"TOKEN_TTL" env-default:"360h"`
}

type SMTP struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
}

type Firebase struct {
	CredentialsFile string `yaml:"credentials_file" env:"FIREBASE_CREDENTIALS_FILE"`
}

// MustLoad reads the config file named by CONFIG_PATH, with environment
// overrides on top. Panics on any problem: the process cannot run half
// configured.
func MustLoad() *Config {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/local.yaml"
	}
	if _, err := os.Stat(path); err != nil {
		panic("config file does not exist: " + path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}
	return &cfg
}
