package config

import (
	"log"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port int `yaml:"port" envconfig:"PORT"`
}

type DatabaseConfig struct {
	DSN string `yaml:"url" envconfig:"DATABASE_URL"`
}

type AuthConfig struct {
	SecretKey          string `yaml:"secret_key" envconfig:"SECRET_KEY"`
	Algorithm          string `yaml:"algorithm" envconfig:"ALGORITHM"`
	AccessTokenMinutes int    `yaml:"access_token_minutes" envconfig:"ACCESS_TOKEN_EXPIRE_MINUTES"`
}

type EmailConfig struct {
	MailgunDomain string `yaml:"mailgun_domain" envconfig:"MAILGUN_DOMAIN"`
	MailgunAPIKey string `yaml:"mailgun_api_key" envconfig:"MAILGUN_API_KEY"`
	SenderEmail   string `yaml:"sender_email" envconfig:"MAIL_SENDER_EMAIL"`

	// Optional SMTP relay; when SMTPHost is set it is used instead of Mailgun.
	SMTPHost     string `yaml:"smtp_host" envconfig:"SMTP_HOST"`
	SMTPPort     int    `yaml:"smtp_port" envconfig:"SMTP_PORT"`
	SMTPUser     string `yaml:"smtp_user" envconfig:"SMTP_USER"`
	SMTPPassword string `yaml:"smtp_password" envconfig:"SMTP_PASSWORD"`
}

type TelegramConfig struct {
	BotToken    string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	SendDelayMs int    `yaml:"send_delay_ms" envconfig:"TELEGRAM_SEND_DELAY_MS"`
}

type BillingConfig struct {
	CostPerUnit string `yaml:"cost_per_unit" envconfig:"BILL_COST_PER_UNIT"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Email    EmailConfig    `yaml:"email"`
	Telegram TelegramConfig `yaml:"telegram"`
	Billing  BillingConfig  `yaml:"billing"`
}

// LoadConfig reads config/config.yaml if present, applies environment
// overrides on top, then fills defaults.
func LoadConfig() *Config {
	var cfg Config

	f, err := os.Open("config/config.yaml")
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			panic("Failed to parse config.yaml: " + err.Error())
		}
	} else {
		log.Printf("[config] no config.yaml, using environment only: %v", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		panic("Failed to process environment config: " + err.Error())
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Auth.Algorithm == "" {
		cfg.Auth.Algorithm = "HS256"
	}
	if cfg.Auth.AccessTokenMinutes == 0 {
		cfg.Auth.AccessTokenMinutes = 30
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Telegram.SendDelayMs == 0 {
		cfg.Telegram.SendDelayMs = 500
	}
	if cfg.Billing.CostPerUnit == "" {
		cfg.Billing.CostPerUnit = "5.00"
	}
	return &cfg
}
