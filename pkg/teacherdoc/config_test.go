package teacherdoc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 16, c.CacheMaxSize)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 2.0, c.ImageWidth)
	assert.Equal(t, "20060102_150405", c.DateLayout)
	assert.NoError(t, c.Validate())
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("TEACHERDOC_CACHE_MAX_SIZE", "3")
	t.Setenv("TEACHERDOC_CACHE_TTL", "5m")
	t.Setenv("TEACHERDOC_LOG_LEVEL", "DEBUG")
	t.Setenv("TEACHERDOC_IMAGE_WIDTH", "1.5")
	t.Setenv("TEACHERDOC_DATE_LAYOUT", "2006-01-02")

	c := ConfigFromEnvironment()
	assert.Equal(t, &Config{
		CacheMaxSize: 3,
		CacheTTL:     5 * time.Minute,
		LogLevel:     "debug",
		ImageWidth:   1.5,
		DateLayout:   "2006-01-02",
	}, c)
}

func TestConfigFromEnvironment_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("TEACHERDOC_CACHE_MAX_SIZE", "many")
	t.Setenv("TEACHERDOC_CACHE_TTL", "soon")
	t.Setenv("TEACHERDOC_IMAGE_WIDTH", "wide")

	c := ConfigFromEnvironment()
	assert.Equal(t, DefaultConfig(), c)
}

func TestNewConfigWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultConfig(), NewConfigWithDefaults(nil))

	c := NewConfigWithDefaults(&Config{CacheMaxSize: 1})
	assert.Equal(t, 1, c.CacheMaxSize)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 2.0, c.ImageWidth)
	assert.Equal(t, "20060102_150405", c.DateLayout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"negative cache", func(c *Config) { c.CacheMaxSize = -1 }, []string{"cache_max_size"}},
		{"negative ttl", func(c *Config) { c.CacheTTL = -time.Second }, []string{"cache_ttl"}},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, []string{"log_level"}},
		{"zero width", func(c *Config) { c.ImageWidth = 0 }, []string{"image_width"}},
		{"slash in date", func(c *Config) { c.DateLayout = "2006/01/02" }, []string{"date_layout"}},
		{"colon in date", func(c *Config) { c.DateLayout = "15:04" }, []string{"date_layout"}},
		{"several", func(c *Config) {
			c.CacheMaxSize = -1
			c.LogLevel = ""
		}, []string{"cache_max_size", "log_level"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			err := c.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			var fields []string
			for _, issue := range verr.Issues {
				fields = append(fields, issue.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestGlobalConfig(t *testing.T) {
	old := GetGlobalConfig()
	t.Cleanup(func() { SetGlobalConfig(old) })

	SetGlobalConfig(&Config{CacheMaxSize: 7, LogLevel: "warn", ImageWidth: 1, DateLayout: "20060102"})
	c := GetGlobalConfig()
	assert.Equal(t, 7, c.CacheMaxSize)

	c.CacheMaxSize = 99
	assert.Equal(t, 7, GetGlobalConfig().CacheMaxSize, "callers get a copy")
	assert.Equal(t, "20060102", New().Config().DateLayout)
}
