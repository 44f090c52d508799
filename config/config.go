package config

import "os"

// Config holds every environment-driven setting the server needs.
type Config struct {
	Env            string
	Port           string
	RedisAddr      string
	RedisPassword  string
	CORSOrigin     string
	ReportLimit    int
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string
	EmailFrom      string
	UserServiceURL string // when set, user notifications are relayed to the peer service
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the configuration from the environment with development defaults.
func Load() Config {
	return Config{
		Env:            env("GO_ENV", "development"),
		Port:           env("PORT", "5000"),
		RedisAddr:      env("REDIS_ADDRESS", ""),
		RedisPassword:  env("REDIS_PASSWORD", ""),
		CORSOrigin:     env("CORS_ORIGIN", "http://localhost:3000"),
		ReportLimit:    10,
		SMTPHost:       env("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:       587,
		SMTPUser:       env("SMTP_USER", ""),
		SMTPPassword:   env("SMTP_PASSWORD", ""),
		EmailFrom:      env("EMAIL_FROM", "civicreport.system@gmail.com"),
		UserServiceURL: env("USER_SERVICE_URL", ""),
	}
}
