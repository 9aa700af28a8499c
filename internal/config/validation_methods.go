package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ValidationError represents a single invalid configuration field
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}

	messages := make([]string, 0, len(ve))
	for _, err := range ve {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("configuration validation failed: %s", strings.Join(messages, "; "))
}

// Has reports whether any error was collected
func (ve ValidationErrors) Has() bool {
	return len(ve) > 0
}

func (ve *ValidationErrors) add(field string, value any, message string) {
	*ve = append(*ve, ValidationError{Field: field, Value: value, Message: message})
}

var (
	validEnvironments = []string{"development", "production", "test", "staging"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"json", "text"}
)

// Validate validates the server configuration
func (c *Config) Validate() error {
	var errs ValidationErrors

	errs = append(errs, c.validateServer()...)
	errs = append(errs, c.validateDatabase()...)
	errs = append(errs, c.validateStorage()...)
	errs = append(errs, c.validateCache()...)

	if c.Logging != nil {
		errs = append(errs, c.Logging.validate()...)
	}
	if c.Server != nil {
		errs = append(errs, c.validateServerTimeouts()...)
	}

	if errs.Has() {
		return errs
	}
	return nil
}

func (c *Config) validateServer() ValidationErrors {
	var errs ValidationErrors

	if c.Port == "" {
		errs.add("port", c.Port, "port cannot be empty")
	} else if port, err := strconv.Atoi(c.Port); err != nil {
		errs.add("port", c.Port, "port must be a valid integer")
	} else if port < 1 || port > 65535 {
		errs.add("port", c.Port, "port must be between 1 and 65535")
	}

	if c.Environment != "" && !slices.Contains(validEnvironments, c.Environment) {
		errs.add("environment", c.Environment, "environment must be one of: development, production, test, staging")
	}

	return errs
}

func (c *Config) validateDatabase() ValidationErrors {
	var errs ValidationErrors

	if c.DatabaseURL == "" {
		if c.Environment != "test" {
			errs.add("database_url", c.DatabaseURL, "database URL is required for non-test environments")
		}
		return errs
	}

	parsedURL, err := url.Parse(c.DatabaseURL)
	if err != nil {
		errs.add("database_url", c.DatabaseURL, "database URL must be a valid URL")
		return errs
	}

	if parsedURL.Scheme != "postgres" && parsedURL.Scheme != "postgresql" {
		errs.add("database_url", parsedURL.Scheme, "database URL must use postgres or postgresql scheme")
	}
	if parsedURL.Host == "" {
		errs.add("database_url", c.DatabaseURL, "database URL must include host")
	}
	if parsedURL.Path == "" || parsedURL.Path == "/" {
		errs.add("database_url", c.DatabaseURL, "database URL must include database name")
	}

	return errs
}

func (c *Config) validateStorage() ValidationErrors {
	var errs ValidationErrors

	if c.Storage.Endpoint == "" {
		errs.add("storage.endpoint", c.Storage.Endpoint, "storage endpoint cannot be empty")
	}

	if c.Storage.BucketName == "" {
		errs.add("storage.bucket_name", c.Storage.BucketName, "storage bucket name cannot be empty")
	} else if !isValidBucketName(c.Storage.BucketName) {
		errs.add("storage.bucket_name", c.Storage.BucketName,
			"storage bucket name must be 3-63 characters, lowercase alphanumeric and hyphens only")
	}

	if c.Environment == "production" {
		if c.Storage.AccessKeyID == "" || c.Storage.AccessKeyID == "minioadmin" {
			errs.add("storage.access_key_id", c.Storage.AccessKeyID, "storage access key ID must be set for production environment")
		}
		if c.Storage.SecretAccessKey == "" || c.Storage.SecretAccessKey == "minioadmin" {
			errs.add("storage.secret_access_key", "[REDACTED]", "storage secret access key must be set for production environment")
		}
	}

	const maxAllowed = int64(100 * 1024 * 1024)
	if c.Storage.MaxUploadSize > maxAllowed {
		errs.add("storage.max_upload_size", c.Storage.MaxUploadSize,
			fmt.Sprintf("max upload size cannot exceed %d bytes (100MB)", maxAllowed))
	}

	// Presigned URLs signed with SigV4 cannot outlive seven days.
	if c.Storage.PresignExpiry <= 0 || c.Storage.PresignExpiry > 7*24*time.Hour {
		errs.add("storage.presign_expiry", c.Storage.PresignExpiry, "presigned URL expiry must be between 1s and 7 days")
	}

	return errs
}

func (c *Config) validateCache() ValidationErrors {
	var errs ValidationErrors

	if !c.Cache.Enabled {
		return errs
	}

	if c.Cache.Address == "" {
		errs.add("cache.address", c.Cache.Address, "cache address cannot be empty when the cache is enabled")
	}
	if c.Cache.Database < 0 || c.Cache.Database > 15 {
		errs.add("cache.database", c.Cache.Database, "cache database must be between 0 and 15")
	}
	if c.Cache.DefaultTTL <= 0 {
		errs.add("cache.default_ttl", c.Cache.DefaultTTL, "cache TTL must be greater than 0")
	}
	if c.Cache.PoolSize <= 0 {
		errs.add("cache.pool_size", c.Cache.PoolSize, "cache pool size must be greater than 0")
	}

	return errs
}

func (l *LoggingConfig) validate() ValidationErrors {
	var errs ValidationErrors

	if !slices.Contains(validLogLevels, strings.ToLower(l.Level)) {
		errs.add("logging.level", l.Level, "logging level must be one of: debug, info, warn, error")
	}
	if !slices.Contains(validLogFormats, strings.ToLower(l.Format)) {
		errs.add("logging.format", l.Format, "logging format must be either 'json' or 'text'")
	}

	return errs
}

func (c *Config) validateServerTimeouts() ValidationErrors {
	var errs ValidationErrors

	checkTimeout := func(field, name string, d time.Duration) {
		if d <= 0 {
			errs.add(field, d, name+" timeout must be greater than 0")
		} else if d > 5*time.Minute && name != "idle" {
			errs.add(field, d, name+" timeout should not exceed 5 minutes")
		}
	}

	checkTimeout("server.read_timeout", "read", c.Server.ReadTimeout)
	checkTimeout("server.write_timeout", "write", c.Server.WriteTimeout)
	checkTimeout("server.idle_timeout", "idle", c.Server.IdleTimeout)

	return errs
}

// Validate validates the gallery client configuration
func (c *ClientConfig) Validate() error {
	var errs ValidationErrors

	if c.APIBaseURL == "" {
		errs.add("api_base_url", c.APIBaseURL, "API base URL cannot be empty")
	} else if parsed, err := url.Parse(c.APIBaseURL); err != nil || parsed.Host == "" ||
		(parsed.Scheme != "http" && parsed.Scheme != "https") {
		errs.add("api_base_url", c.APIBaseURL, "API base URL must be an absolute http or https URL")
	}

	if c.RefreshInterval < time.Second {
		errs.add("refresh_interval", c.RefreshInterval, "refresh interval must be at least 1s")
	}
	if c.NotificationTTL <= 0 {
		errs.add("notification_ttl", c.NotificationTTL, "notification TTL must be greater than 0")
	}
	if c.HTTPTimeout < 0 {
		errs.add("http_timeout", c.HTTPTimeout, "HTTP timeout cannot be negative")
	}

	if c.Logging != nil {
		errs = append(errs, c.Logging.validate()...)
	}

	if errs.Has() {
		return errs
	}
	return nil
}

// isValidBucketName validates S3/MinIO bucket naming rules
func isValidBucketName(name string) bool {
	if len(name) < 3 || len(name) > 63 {
		return false
	}

	if !isLowerAlphaNum(name[0]) || !isLowerAlphaNum(name[len(name)-1]) {
		return false
	}

	for i := 0; i < len(name); i++ {
		b := name[i]
		if !isLowerAlphaNum(b) && b != '-' {
			return false
		}
		if b == '-' && name[i-1] == '-' {
			return false
		}
	}

	return true
}

func isLowerAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// MustValidate validates the configuration and panics on error
func (c *Config) MustValidate() {
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("configuration validation failed: %v", err))
	}
}
