package teacherdoc

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/zero750810/teacherdoc/pkg/teacherdoc/media"
)

// Config contains all configuration options for the generator
type Config struct {
	// CacheMaxSize is the maximum number of templates to keep in memory. 0 disables caching.
	CacheMaxSize int `yaml:"cache_max_size"`
	// CacheTTL is the time-to-live for cached templates. 0 means no expiration.
	CacheTTL time.Duration `yaml:"cache_ttl"`
	// LogLevel controls the verbosity of logging (debug, info, warn, error, off)
	LogLevel string `yaml:"log_level"`
	// ImageWidth is the display width of embedded images, in inches
	ImageWidth float64 `yaml:"image_width"`
	// DateLayout is the Go time layout of the date token in output names
	DateLayout string `yaml:"date_layout"`
}

var (
	globalConfig      *Config
	globalConfigMutex sync.RWMutex
	configOnce        sync.Once
)

func init() {
	configOnce.Do(func() {
		globalConfig = ConfigFromEnvironment()
	})
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		CacheMaxSize: 16,
		CacheTTL:     0,
		LogLevel:     "info",
		ImageWidth:   2,
		DateLayout:   "20060102_150405",
	}
}

// ConfigFromEnvironment creates a configuration from environment variables
func ConfigFromEnvironment() *Config {
	return ApplyEnvironment(DefaultConfig())
}

// ApplyEnvironment overrides fields of config with the TEACHERDOC_*
// environment variables that are set and parse, and returns config.
func ApplyEnvironment(config *Config) *Config {
	// TEACHERDOC_CACHE_MAX_SIZE
	if val := os.Getenv("TEACHERDOC_CACHE_MAX_SIZE"); val != "" {
		if size, err := strconv.Atoi(val); err == nil {
			config.CacheMaxSize = size
		}
	}

	// TEACHERDOC_CACHE_TTL
	if val := os.Getenv("TEACHERDOC_CACHE_TTL"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			config.CacheTTL = duration
		}
	}

	// TEACHERDOC_LOG_LEVEL
	if val := os.Getenv("TEACHERDOC_LOG_LEVEL"); val != "" {
		config.LogLevel = strings.ToLower(val)
	}

	// TEACHERDOC_IMAGE_WIDTH
	if val := os.Getenv("TEACHERDOC_IMAGE_WIDTH"); val != "" {
		if width, err := strconv.ParseFloat(val, 64); err == nil {
			config.ImageWidth = width
		}
	}

	// TEACHERDOC_DATE_LAYOUT
	if val := os.Getenv("TEACHERDOC_DATE_LAYOUT"); val != "" {
		config.DateLayout = val
	}

	return config
}

// NewConfigWithDefaults creates a new configuration with defaults applied to unset fields
func NewConfigWithDefaults(overrides *Config) *Config {
	defaults := DefaultConfig()

	if overrides == nil {
		return defaults
	}

	config := *overrides

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	if config.ImageWidth == 0 {
		config.ImageWidth = defaults.ImageWidth
	}

	if config.DateLayout == "" {
		config.DateLayout = defaults.DateLayout
	}

	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if c.CacheMaxSize < 0 {
		verr.add("cache_max_size", "cannot be negative")
	}

	if c.CacheTTL < 0 {
		verr.add("cache_ttl", "cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"off":   true,
	}
	if !validLogLevels[c.LogLevel] {
		verr.add("log_level", "invalid log level: "+c.LogLevel)
	}

	if c.ImageWidth <= 0 {
		verr.add("image_width", "must be positive")
	}

	if strings.TrimSpace(c.DateLayout) == "" {
		verr.add("date_layout", "cannot be empty")
	} else if strings.ContainsAny(time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC).Format(c.DateLayout), `/\:`) {
		verr.add("date_layout", "must not produce path separators or colons")
	}

	return verr.err()
}

// imageWidth returns the configured image width as a length.
func (c *Config) imageWidth() media.Length {
	return media.Inches(c.ImageWidth)
}

// GetGlobalConfig returns the global configuration
func GetGlobalConfig() *Config {
	globalConfigMutex.RLock()
	defer globalConfigMutex.RUnlock()

	if globalConfig == nil {
		return DefaultConfig()
	}

	configCopy := *globalConfig
	return &configCopy
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config *Config) {
	globalConfigMutex.Lock()
	globalConfig = config
	globalConfigMutex.Unlock()

	// Outside the lock: the logger reads the config back.
	UpdateLoggerFromConfig()
}
