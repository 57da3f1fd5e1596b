package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// Upstream hs-service backend.
	UpstreamBaseURL string
	UpstreamTimeout time.Duration

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion   string
	SNSTopicARN string // empty disables push fan-out

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each portal-owned entity.
type DynamoTables struct {
	Sessions      string
	Notifications string
	SeenComments  string
	Evidence      string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		UpstreamBaseURL: getEnv("UPSTREAM_BASE_URL", "https://www.hs-service.api.crealape.com/api/v1"),
		UpstreamTimeout: time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 30)) * time.Second,

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Sessions:      getEnv("DYNAMO_TABLE_SESSIONS", "portal_sessions"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "portal_notifications"),
			SeenComments:  getEnv("DYNAMO_TABLE_SEEN_COMMENTS", "portal_seen_comments"),
			Evidence:      getEnv("DYNAMO_TABLE_EVIDENCE", "portal_evidence"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "hs-portal-evidence"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		// Bearer lifetime matches the 8-hour session rule so a token never
		// outlives the session it points at.
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 8)) * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion:   getEnv("SNS_REGION", "us-east-1"),
		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
