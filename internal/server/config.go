package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/iwvelando/crunch-the-numbers/internal/config"
	"github.com/iwvelando/crunch-the-numbers/internal/preferences"
	"github.com/iwvelando/crunch-the-numbers/pkg/constants"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ErrRedisAddress is returned when a redis section omits the server address.
var ErrRedisAddress = errors.New("redis address is required when redis is configured")

// Config is the server-config.yaml read by `crunch serve`. Without a redis
// section, currency preferences live in memory and are lost on restart.
type Config struct {
	Address       string                   `yaml:"address"`
	MaxUploadSize string                   `yaml:"maxUploadSize"`
	Logging       config.LoggingConfig     `yaml:"logging"`
	Redis         *preferences.RedisConfig `yaml:"redis,omitempty"`

	maxBodyBytes int64
}

var sizeUnits = map[string]int64{
	"":   1,
	"B":  1,
	"K":  1 << 10,
	"KB": 1 << 10,
	"M":  1 << 20,
	"MB": 1 << 20,
	"G":  1 << 30,
	"GB": 1 << 30,
}

// LoadConfig reads the server configuration. A missing file, or an empty
// path, yields the defaults. Unknown keys are rejected so a misspelt redis or
// logging section does not silently fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:      constants.DefaultServerAddress,
		maxBodyBytes: constants.DefaultMaxUploadSizeBytes,
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read server config %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse server config %s: %w", path, err)
	}

	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("invalid server config %s: %w", path, err)
	}
	return cfg, nil
}

// Override applies command line flags on top of the file. Empty values keep
// what the file set.
func (c *Config) Override(address, maxUploadSize string) error {
	if address != "" {
		c.Address = address
	}
	if maxUploadSize == "" {
		return nil
	}
	size, err := ParseSize(maxUploadSize)
	if err != nil {
		return err
	}
	c.MaxUploadSize = maxUploadSize
	c.maxBodyBytes = size
	return nil
}

// UploadSizeBytes is the largest calculator request body the API accepts.
func (c *Config) UploadSizeBytes() int64 {
	if c.maxBodyBytes <= 0 {
		return constants.DefaultMaxUploadSizeBytes
	}
	return c.maxBodyBytes
}

// NewStore builds the preference store the configuration asks for.
func (c *Config) NewStore(logger *zap.Logger) preferences.Store {
	if c.Redis == nil {
		return preferences.NewMemoryStore()
	}
	return preferences.NewRedisStore(*c.Redis, logger)
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Address) == "" {
		c.Address = constants.DefaultServerAddress
	}

	size, err := ParseSize(c.MaxUploadSize)
	if err != nil {
		return err
	}
	c.maxBodyBytes = size

	if c.Redis == nil {
		return nil
	}
	if strings.TrimSpace(c.Redis.Address) == "" {
		return ErrRedisAddress
	}
	if c.Redis.KeyPrefix == "" {
		c.Redis.KeyPrefix = constants.DefaultRedisKeyPrefix
	}
	return nil
}

// ParseSize reads a byte count such as "512", "256K" or "2MB". Units are
// binary and case-insensitive. An empty or zero value means the default.
func ParseSize(value string) (int64, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	if s == "" {
		return constants.DefaultMaxUploadSizeBytes, nil
	}

	split := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if split == -1 {
		split = len(s)
	}
	if split == 0 {
		return 0, fmt.Errorf("invalid size %q", value)
	}

	n, err := strconv.ParseInt(s[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", value, err)
	}
	unit := strings.TrimSpace(s[split:])
	multiplier, ok := sizeUnits[unit]
	if !ok {
		return 0, fmt.Errorf("unsupported size unit %q in %q", unit, value)
	}
	if n > math.MaxInt64/multiplier {
		return 0, fmt.Errorf("size %q overflows", value)
	}
	if n == 0 {
		return constants.DefaultMaxUploadSizeBytes, nil
	}
	return n * multiplier, nil
}
