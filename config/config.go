package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config captures environment driven configuration values for the Pingly server.
type Config struct {
	Port           string
	AWSRegion      string
	S3BucketName   string
	DynamoEnabled  bool
	JWTSecret      string
	SessionTTL     time.Duration
	EmailDomain    string
	AllowedOrigins []string
	SettleDelay    time.Duration
}

// Load reads an optional .env file, then parses configuration values from the
// process environment. Variables already set in the environment win over the
// file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("⚠️ Could not read .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv parses configuration values from the current process environment,
// applying defaults for optional fields and reporting every missing or invalid
// key at once.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           "8080",
		AWSRegion:      "us-east-1",
		SessionTTL:     24 * time.Hour,
		EmailDomain:    ".edu",
		AllowedOrigins: []string{"*"},
		SettleDelay:    300 * time.Millisecond,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 4)

	if portValue := strings.TrimSpace(os.Getenv("PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, "PORT")
		} else {
			cfg.Port = portValue
		}
	}

	if region := strings.TrimSpace(os.Getenv("AWS_REGION")); region != "" {
		cfg.AWSRegion = region
	}

	cfg.S3BucketName = strings.TrimSpace(os.Getenv("S3_BUCKET_NAME"))

	if enabledValue := strings.TrimSpace(os.Getenv("DYNAMO_ENABLED")); enabledValue != "" {
		enabled, err := strconv.ParseBool(enabledValue)
		if err != nil {
			invalid = append(invalid, "DYNAMO_ENABLED")
		} else {
			cfg.DynamoEnabled = enabled
		}
	}

	if secret := strings.TrimSpace(os.Getenv("PINGLY_JWT_SECRET")); secret == "" {
		missing = append(missing, "PINGLY_JWT_SECRET")
	} else {
		cfg.JWTSecret = secret
	}

	if ttlValue := strings.TrimSpace(os.Getenv("PINGLY_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "PINGLY_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if domain := strings.TrimSpace(os.Getenv("PINGLY_ALLOWED_EMAIL_DOMAIN")); domain != "" {
		cfg.EmailDomain = domain
	}

	if originsValue := strings.TrimSpace(os.Getenv("PINGLY_ALLOWED_ORIGINS")); originsValue != "" {
		var origins []string
		for _, origin := range strings.Split(originsValue, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		if len(origins) == 0 {
			invalid = append(invalid, "PINGLY_ALLOWED_ORIGINS")
		} else {
			cfg.AllowedOrigins = origins
		}
	}

	if delayValue := strings.TrimSpace(os.Getenv("PINGLY_SETTLE_DELAY")); delayValue != "" {
		delay, err := time.ParseDuration(delayValue)
		if err != nil || delay <= 0 {
			invalid = append(invalid, "PINGLY_SETTLE_DELAY")
		} else {
			cfg.SettleDelay = delay
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
