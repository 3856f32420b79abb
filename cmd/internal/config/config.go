package config

import (
	"os"
	"strconv"
	"time"

	"github.com/labstack/gommon/log"
)

// Config carries everything the process needs, resolved once at startup.
// Nothing below main should read the environment directly.
type Config struct {
	Addr   string
	DBPath string

	// Token signing. One process-wide secret signs both the bearer access
	// tokens and the email verification tokens.
	SecretKey string
	AccessTTL time.Duration
	VerifyTTL time.Duration

	// Base URL embedded in the confirmation link sent by mail.
	PublicBaseURL string

	// SMTP for verification mail.
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// S3 avatar storage.
	S3Region string
	S3Bucket string

	// Snowflake node, unique per instance.
	MachineID int64
}

func Load() *Config {
	return &Config{
		Addr:          getenv("HTTP_ADDR", ":7070"),
		DBPath:        getenv("DB_PATH", "database.db"),
		SecretKey:     must("SECRET_KEY"),
		AccessTTL:     getdur("ACCESS_TOKEN_TTL", 24*time.Hour),
		VerifyTTL:     getdur("VERIFY_TOKEN_TTL", 24*time.Hour),
		PublicBaseURL: getenv("PUBLIC_BASE_URL", "http://localhost:7070"),
		SMTPHost:      getenv("SMTP_HOST", "localhost"),
		SMTPPort:      getint("SMTP_PORT", 587),
		SMTPUser:      os.Getenv("SMTP_USERNAME"),
		SMTPPass:      os.Getenv("SMTP_PASSWORD"),
		MailFrom:      getenv("MAIL_FROM", "no-reply@bookshelf.local"),
		S3Region:      getenv("AWS_S3_REGION", "us-east-2"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		MachineID:     int64(getint("MACHINE_ID", 1)),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warnf("invalid integer for %s, using default %d", key, def)
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Warnf("invalid duration for %s, using default %s", key, def)
	}
	return def
}

func must(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("missing required environment variable %s", key)
	}
	return v
}
