// Package config loads the reporter's optional host list.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// RelPath is where the config file lives below each config directory.
var RelPath = filepath.Join("bitbar", "plugins", "cron.json")

// EnvPrefix namespaces environment overrides, e.g. CRONWATCH_HOSTS=db1,db2.
const EnvPrefix = "CRONWATCH"

// DefaultConcurrency is used when the file does not set concurrency.
const DefaultConcurrency = 4

// Config is the reporter configuration. Unknown keys are ignored.
type Config struct {
	// Hosts are remote machines to check, in display order.
	Hosts []string `mapstructure:"hosts" json:"hosts"`
	// RemoteErrorsDir overrides the errors directory used on remote hosts.
	RemoteErrorsDir string `mapstructure:"remote_errors_dir" json:"remote_errors_dir,omitempty"`
	// Concurrency bounds parallel ssh listings.
	Concurrency int `mapstructure:"concurrency" json:"concurrency"`

	// Path is the file the values came from, empty when defaults were used.
	Path string `mapstructure:"-" json:"-"`
}

// Error is a config file that exists but could not be read or parsed.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Hosts: []string{}, Concurrency: DefaultConcurrency}
}

// Find returns the first readable config file below dirs, or "" if none is.
// Candidates that are missing or cannot be opened are skipped.
func Find(dirs []string) string {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, RelPath)
		if readableFile(candidate) {
			return candidate
		}
	}
	return ""
}

func readableFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

// Load searches dirs in order and reads the first config file found. A missing
// file yields Default.
func Load(dirs []string) (*Config, error) {
	path := Find(dirs)
	if path == "" {
		return fromViper(newViper(), "")
	}
	return LoadFile(path)
}

// LoadFile reads an explicit config path. Unlike Load, a missing file is an error.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	return fromViper(v, path)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("hosts", []string{})
	v.SetDefault("remote_errors_dir", "")
	v.SetDefault("concurrency", DefaultConcurrency)
	return v
}

// applyEnv overrides file values with CRONWATCH_* variables. Environment
// values are plain strings, so they are converted here and the file itself is
// decoded strictly.
func applyEnv(v *viper.Viper) error {
	if s := os.Getenv(EnvPrefix + "_HOSTS"); s != "" {
		var hosts []string
		for _, h := range strings.Split(s, ",") {
			if h = strings.TrimSpace(h); h != "" {
				hosts = append(hosts, h)
			}
		}
		v.Set("hosts", hosts)
	}
	if s := os.Getenv(EnvPrefix + "_REMOTE_ERRORS_DIR"); s != "" {
		v.Set("remote_errors_dir", s)
	}
	if s := os.Getenv(EnvPrefix + "_CONCURRENCY"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("%s_CONCURRENCY: %w", EnvPrefix, err)
		}
		v.Set("concurrency", n)
	}
	return nil
}

// strictDecoding rejects values of the wrong type instead of coercing them,
// so {"hosts": "db1"} is an error rather than a one-host list.
func strictDecoding(c *mapstructure.DecoderConfig) {
	c.WeaklyTypedInput = false
	c.DecodeHook = nil
}

func fromViper(v *viper.Viper, path string) (*Config, error) {
	if err := applyEnv(v); err != nil {
		return nil, &Error{Path: "environment", Err: err}
	}
	cfg := Default()
	if err := v.Unmarshal(cfg, strictDecoding); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	if cfg.Hosts == nil {
		cfg.Hosts = []string{}
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	cfg.Path = path
	return cfg, nil
}
