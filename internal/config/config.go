package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Auth struct {
		// AdminPhone is the master administrator number. Verifying an OTP
		// for this phone always resolves to the admin identity.
		AdminPhone string `yaml:"admin_phone"`
	} `yaml:"auth"`

	JWT struct {
		AccessSecret     string `yaml:"access_secret"`
		RefreshSecret    string `yaml:"refresh_secret"`
		AccessTTLMinutes int    `yaml:"access_ttl_minutes"`
		RefreshTTLDays   int    `yaml:"refresh_ttl_days"`
	} `yaml:"jwt"`

	OTP struct {
		TTLMinutes     int `yaml:"ttl_minutes"`
		CooldownSecond int `yaml:"resend_cooldown_seconds"`
		CodeLength     int `yaml:"code_length"`
	} `yaml:"otp"`

	SMS struct {
		Enabled    bool   `yaml:"enabled"`
		APIKey     string `yaml:"api_key"`
		SenderID   string `yaml:"sender_id"`
		EntityID   string `yaml:"entity_id"`
		TemplateID string `yaml:"template_id"`
	} `yaml:"sms"`

	Redis struct {
		// When Addr is set the OTP store moves to Redis; otherwise an
		// in-process store is used.
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Storage struct {
		Type      string `yaml:"type"`      // local or s3
		BasePath  string `yaml:"base_path"` // local storage root
		BaseURL   string `yaml:"base_url"`  // public URL prefix for stored paths
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"`
	} `yaml:"storage"`

	Geo struct {
		GeoapifyKey string `yaml:"geoapify_key"`
		GeodbURL    string `yaml:"geodb_url"`
		GeodbKey    string `yaml:"geodb_key"`
	} `yaml:"geo"`
}

var AppConfig *Config

// LoadConfig reads the yaml config (CONFIG_PATH, default config/config.yaml).
// When DATABASE_URL is present the config is assembled from environment
// variables instead, which is how tests and containers run.
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Auth.AdminPhone = os.Getenv("ADMIN_PHONE")
	cfg.JWT.AccessSecret = os.Getenv("JWT_SECRET")
	cfg.JWT.RefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
	cfg.SMS.Enabled = os.Getenv("ENABLE_SMS") == "true"
	cfg.SMS.APIKey = os.Getenv("FAST2SMS_API_KEY")
	cfg.SMS.SenderID = os.Getenv("FAST2SMS_SENDER_ID")
	cfg.SMS.EntityID = os.Getenv("DLT_ENTITY_ID")
	cfg.SMS.TemplateID = os.Getenv("DLT_TEMPLATE_ID")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Geo.GeoapifyKey = os.Getenv("GEOPIFY_API_KEY")
	cfg.Geo.GeodbURL = os.Getenv("GEODB_API_URL")
	cfg.Geo.GeodbKey = os.Getenv("GEODB_API_KEY")
	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.SMS.SenderID == "" {
		cfg.SMS.SenderID = "MYPROO"
	}
	if cfg.JWT.AccessTTLMinutes == 0 {
		cfg.JWT.AccessTTLMinutes = 15
	}
	if cfg.JWT.RefreshTTLDays == 0 {
		cfg.JWT.RefreshTTLDays = 365
	}
	if cfg.OTP.TTLMinutes == 0 {
		cfg.OTP.TTLMinutes = 10
	}
	if cfg.OTP.CooldownSecond == 0 {
		cfg.OTP.CooldownSecond = 30
	}
	if cfg.OTP.CodeLength == 0 {
		cfg.OTP.CodeLength = 4
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
