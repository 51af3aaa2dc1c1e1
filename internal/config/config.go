package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/somegotools/internal/constants"
	"github.com/oshokin/somegotools/internal/fsutil"
	"github.com/oshokin/somegotools/internal/logger"
	"github.com/oshokin/somegotools/internal/utils"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level"`
	// SizeUnits is the default unit for directory sizes (e.g., "Bytes", "MB", "GiB").
	SizeUnits string `mapstructure:"size_units"`
	// FollowSymlinks indicates whether directory sizing counts symlink targets.
	FollowSymlinks bool `mapstructure:"follow_symlinks"`
	// CopyParents indicates whether copying creates missing parent directories.
	CopyParents bool `mapstructure:"copy_parents"`
	// ReplaceFiles indicates whether downloads overwrite existing files.
	ReplaceFiles bool `mapstructure:"replace_files"`
	// ShowProgress indicates whether downloads draw a progress bar.
	ShowProgress bool `mapstructure:"show_progress"`
	// DownloadSpeedLimit sets the maximum download speed (e.g., "1MB", "500KB").
	DownloadSpeedLimit string `mapstructure:"download_speed_limit"`
	// DownloadTimeout bounds a whole download request (e.g., "10m"). Zero disables it.
	DownloadTimeout time.Duration `mapstructure:"download_timeout"`
	// UserAgent overrides the User-Agent header of HTTP requests. Empty uses a built-in browser agent.
	UserAgent string `mapstructure:"user_agent"`
	// MaxLogLength caps the size of logged HTTP bodies (e.g., "1MB").
	MaxLogLength string `mapstructure:"max_log_length"`
	// DirSizeCacheEntries bounds the cache of symlinked directory sizes.
	DirSizeCacheEntries int `mapstructure:"dir_size_cache_entries"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level
	// ParsedSizeUnit is the parsed size unit.
	ParsedSizeUnit fsutil.SizeUnit
	// ParsedDownloadSpeedLimit is the parsed download speed limit in bytes.
	ParsedDownloadSpeedLimit int64
	// ParsedMaxLogLength is the parsed maximum logged body size in bytes.
	ParsedMaxLogLength int64
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".somegotools.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) of logged HTTP bodies.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultDownloadTimeout is the default timeout of a download request.
	DefaultDownloadTimeout = 30 * time.Minute

	// envPrefix prefixes environment variables overriding config keys, e.g. SOMEGOTOOLS_LOG_LEVEL.
	envPrefix = "SOMEGOTOOLS"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrInvalidDownloadTimeout indicates a negative download timeout.
	ErrInvalidDownloadTimeout = errors.New("download_timeout cannot be negative")
	// ErrInvalidCacheEntries indicates a negative cache size.
	ErrInvalidCacheEntries = errors.New("dir_size_cache_entries cannot be negative")
	// ErrConfigExists indicates that a config file is already present at the target path.
	ErrConfigExists = errors.New("config file already exists")
)

// defaultSetting is one key of the default configuration with its description.
type defaultSetting struct {
	key     string
	value   any
	comment string
}

// defaultSettings lists the defaults in the order they are written to a new config file.
//
//nolint:gochecknoglobals // Read-only table shared by the loader and the file writer.
var defaultSettings = []defaultSetting{
	{key: "log_level", value: "info", comment: "Logging verbosity: debug, info, warn, error."},
	{key: "size_units", value: "Bytes", comment: "Unit for directory sizes: Bytes, KB, MB, GB, TB, KiB, MiB, GiB, TiB."},
	{key: "follow_symlinks", value: false, comment: "Count symlink targets when sizing directories."},
	{key: "copy_parents", value: true, comment: "Create missing parent directories when copying."},
	{key: "replace_files", value: false, comment: "Overwrite files that already exist when downloading."},
	{key: "show_progress", value: true, comment: "Draw a progress bar while downloading."},
	{key: "download_speed_limit", value: "0", comment: "Maximum download speed, e.g. 1MB or 500KB. 0 disables the limit."},
	{key: "download_timeout", value: DefaultDownloadTimeout.String(), comment: "Timeout of a whole download request. 0 disables it."},
	{key: "user_agent", value: "", comment: "User-Agent header for HTTP requests. Empty uses a built-in browser agent."},
	{key: "max_log_length", value: "1MB", comment: "Maximum size of HTTP bodies written to the debug log."},
	{key: "dir_size_cache_entries", value: fsutil.DefaultSizeCacheEntries, comment: "Number of symlinked directory sizes remembered per walk."},
}

// LoadConfig loads configuration settings from a YAML file.
// An empty configFilename reads DefaultConfigFilename when it exists and falls back to defaults otherwise;
// an explicitly named file must exist.
func LoadConfig(configFilename string) (*Config, error) {
	v := newDefaultsViper()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	isOptional := configFilename == ""
	if isOptional {
		configFilename = DefaultConfigFilename
	}

	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if !isOptional || !isNotExist(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	return decode(v)
}

// newDefaultsViper returns a viper instance holding defaultSettings.
func newDefaultsViper() *viper.Viper {
	v := viper.New()

	for _, setting := range defaultSettings {
		v.SetDefault(setting.key, setting.value)
	}

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.TextUnmarshallerHookFunc(),
	))

	if err := v.Unmarshal(&cfg, decodeHook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	var (
		downloadSpeedLimit       = strings.TrimSpace(cfg.DownloadSpeedLimit)
		maxLogLength             = strings.TrimSpace(cfg.MaxLogLength)
		parsedDownloadSpeedLimit uint64
		parsedMaxLogLength       uint64 = DefaultMaxLogLength
		err                      error
	)

	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !(isLogLevelCorrect) {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	cfg.ParsedSizeUnit = fsutil.Bytes
	if strings.TrimSpace(cfg.SizeUnits) != "" {
		cfg.ParsedSizeUnit, err = fsutil.ParseSizeUnit(cfg.SizeUnits)
		if err != nil {
			return fmt.Errorf("failed to parse size units: %w", err)
		}
	}

	if downloadSpeedLimit != "" && downloadSpeedLimit != "0" {
		parsedDownloadSpeedLimit, err = humanize.ParseBytes(downloadSpeedLimit)
		if err != nil {
			return fmt.Errorf("failed to parse download speed limit: %w", err)
		}
	}

	// io.CopyN accepts only int64 so we transform it safely in order to use it later.
	cfg.ParsedDownloadSpeedLimit = utils.SafeUint64ToInt64(parsedDownloadSpeedLimit)

	if maxLogLength != "" {
		parsedMaxLogLength, err = humanize.ParseBytes(maxLogLength)
		if err != nil {
			return fmt.Errorf("failed to parse max log length: %w", err)
		}
	}

	cfg.ParsedMaxLogLength = utils.SafeUint64ToInt64(parsedMaxLogLength)

	if cfg.DownloadTimeout < 0 {
		return ErrInvalidDownloadTimeout
	}

	if cfg.DirSizeCacheEntries < 0 {
		return ErrInvalidCacheEntries
	}

	return nil
}

// DefaultConfig returns a validated configuration holding only defaultSettings.
// It panics if the table itself is invalid.
func DefaultConfig() *Config {
	cfg, err := decode(newDefaultsViper())
	if err == nil {
		err = ValidateConfig(cfg)
	}

	if err != nil {
		panic(fmt.Sprintf("invalid default configuration: %v", err))
	}

	return cfg
}

// SaveDefaultConfig writes the default configuration, with a comment above every key, to path.
// An existing file is kept unless force is set.
func SaveDefaultConfig(path string, force bool) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	if !force {
		isExist, err := utils.IsFileExist(path)
		if err != nil {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if isExist {
			return fmt.Errorf("%w: '%s'", ErrConfigExists, path)
		}
	}

	mapNode := &yaml.Node{Kind: yaml.MappingNode}

	for _, setting := range defaultSettings {
		keyNode := &yaml.Node{
			Kind:        yaml.ScalarNode,
			Value:       setting.key,
			HeadComment: setting.comment,
		}

		var valueNode yaml.Node
		if err := valueNode.Encode(setting.value); err != nil {
			return fmt.Errorf("failed to encode '%s': %w", setting.key, err)
		}

		// Keep textual values quoted so "0" is not read back as a number.
		if _, isText := setting.value.(string); isText {
			valueNode.Style = yaml.DoubleQuotedStyle
		}

		mapNode.Content = append(mapNode.Content, keyNode, &valueNode)
	}

	document := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapNode}}

	content, err := yaml.Marshal(document)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err = os.WriteFile(path, content, constants.DefaultFilePermissions); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.Is(err, os.ErrNotExist) || errors.As(err, &notFound)
}
