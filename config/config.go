package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is read once from the environment at startup.
type Config struct {
	Port        string
	Environment string
	Domain      string
	CORSOrigins []string

	MongoURI      string
	MongoDatabase string
	DBTimeout     time.Duration

	RedisAddress        string
	RedisPassword       string
	ComplaintDailyLimit int

	JWTSecret string
	JWTTTL    time.Duration

	MediaBackend     string
	MediaTimeout     time.Duration
	MediaImageFolder string
	MediaVideoFolder string
	MaxUploadMB      int64

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	FTPHost     string
	FTPPort     string
	FTPUser     string
	FTPPassword string
	FTPBaseURL  string

	AdminName     string
	AdminEmail    string
	AdminPassword string

	LogLevel string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads the configuration from environment variables, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("GO_ENV", "development"),
		Domain:      os.Getenv("DOMAIN"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),

		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: getEnv("MONGODB_DATABASE", "cleanindia"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		MediaBackend:     getEnv("MEDIA_BACKEND", "cloudinary"),
		MediaImageFolder: getEnv("MEDIA_IMAGE_FOLDER", "clean-india"),
		MediaVideoFolder: getEnv("MEDIA_VIDEO_FOLDER", "clean-india-proofs"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		FTPHost:     os.Getenv("FTP_HOST"),
		FTPPort:     getEnv("FTP_PORT", "21"),
		FTPUser:     os.Getenv("FTP_USER"),
		FTPPassword: os.Getenv("FTP_PASSWORD"),
		FTPBaseURL:  strings.TrimRight(os.Getenv("FTP_BASE_URL"), "/"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DBTimeout, err = getDuration("DB_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MediaTimeout, err = getDuration("MEDIA_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.JWTTTL, err = getDuration("JWT_TTL", 72*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ComplaintDailyLimit, err = getInt("COMPLAINT_DAILY_LIMIT", 10); err != nil {
		return nil, err
	}
	maxUpload, err := getInt("MAX_UPLOAD_MB", 50)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadMB = int64(maxUpload)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("please define the MONGODB_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("please define the JWT_SECRET environment variable")
	}
	switch c.MediaBackend {
	case "cloudinary":
		if c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "" {
			return fmt.Errorf("cloudinary media backend requires CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	case "ftp":
		if c.FTPHost == "" || c.FTPBaseURL == "" {
			return fmt.Errorf("ftp media backend requires FTP_HOST and FTP_BASE_URL")
		}
	default:
		return fmt.Errorf("unknown MEDIA_BACKEND %q", c.MediaBackend)
	}
	if c.ComplaintDailyLimit < 1 {
		return fmt.Errorf("COMPLAINT_DAILY_LIMIT must be positive")
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", key)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
