package config

// config.go layers settings: flags over environment over the config file over
// defaults. Keys are dotted; REPOTABLO_EXPORT_DIR maps to export.dir.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/thesavant42/repotablo/internal/api"
	"github.com/thesavant42/repotablo/internal/export"
	"github.com/thesavant42/repotablo/internal/logging"
	"github.com/thesavant42/repotablo/internal/models"
)

const (
	EnvPrefix = "REPOTABLO"
	FileName  = "config.yaml"

	MinJobs = 1
	MaxJobs = 64
)

// Keys
const (
	KeyToken        = "token"
	KeyJobs         = "jobs"
	KeyTimeout      = "timeout"
	KeyExportDir    = "export.dir"
	KeyExportFormat = "export.format"
	KeySnapshot     = "snapshot"
	KeySort         = "sort"
	KeyFilter       = "filter"
	KeyLogFile      = "log.file"
	KeyLogLevel     = "log.level"
	KeyEditor       = "editor"
)

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"github-token":  KeyToken,
	"jobs":          KeyJobs,
	"timeout":       KeyTimeout,
	"export-dir":    KeyExportDir,
	"export-format": KeyExportFormat,
	"snapshot":      KeySnapshot,
	"sort":          KeySort,
	"filter":        KeyFilter,
	"log-file":      KeyLogFile,
	"log-level":     KeyLogLevel,
}

// Config is the resolved application configuration
type Config struct {
	Token        string
	TokenSource  string // where Token came from, for logging
	Jobs         int
	Timeout      time.Duration
	ExportDir    string
	ExportFormat string
	Snapshot     string // SQLite path, empty to skip
	Sort         models.SortBy
	Filter       string
	LogFile      string
	LogLevel     string
	Editor       string
	ConfigFile   string // file actually read, empty if none
}

// tokenForHost finds a token from the gh CLI's environment and config
var tokenForHost = auth.TokenForHost

// New returns a viper instance with defaults and environment bindings
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyJobs, api.DefaultJobs)
	v.SetDefault(KeyTimeout, api.DefaultTimeout)
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyExportFormat, export.Formats[0])
	v.SetDefault(KeySort, models.SortByName.String())
	v.SetDefault(KeyLogFile, logging.DefaultPath())
	v.SetDefault(KeyLogLevel, "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Errors only arise from an empty key list
	_ = v.BindEnv(KeyToken, "GITHUB_TOKEN", EnvPrefix+"_TOKEN")
	_ = v.BindEnv(KeyEditor, EnvPrefix+"_EDITOR", "VISUAL", "EDITOR")

	return v
}

// RegisterFlags defines the configuration flags on cmd and binds them to v
func RegisterFlags(cmd *cobra.Command, v *viper.Viper) error {
	f := cmd.Flags()
	f.String("github-token", "", "GitHub API token (default: $GITHUB_TOKEN or gh auth)")
	f.IntP("jobs", "j", api.DefaultJobs, fmt.Sprintf("concurrent API requests (%d-%d)", MinJobs, MaxJobs))
	f.Duration("timeout", api.DefaultTimeout, "per-request HTTP timeout")
	f.String("export-dir", ".", "directory for exports")
	f.String("export-format", export.Formats[0], "export format: "+strings.Join(export.Formats, ", "))
	f.String("snapshot", "", "write fetched stats to this SQLite file")
	f.String("sort", models.SortByName.String(), "sort column for plain output: "+strings.Join(models.SortKeys, ", "))
	f.String("filter", "", "name filter for plain output")
	f.String("log-file", "", "log file (default: "+logging.DefaultPath()+")")
	f.String("log-level", "info", "log level: debug, info, warn, error")

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, f.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// DefaultPath returns the config file location, honoring XDG_CONFIG_HOME
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "repotablo", FileName)
}

// ReadFile reads the config file at path. An empty path reads the default
// location, which may be missing; an explicit path must exist.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return nil
		}
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// Load resolves and validates the configuration in v
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Token:        strings.TrimSpace(v.GetString(KeyToken)),
		Jobs:         v.GetInt(KeyJobs),
		Timeout:      v.GetDuration(KeyTimeout),
		ExportDir:    v.GetString(KeyExportDir),
		ExportFormat: strings.ToLower(v.GetString(KeyExportFormat)),
		Snapshot:     v.GetString(KeySnapshot),
		Filter:       v.GetString(KeyFilter),
		LogFile:      v.GetString(KeyLogFile),
		LogLevel:     strings.ToLower(v.GetString(KeyLogLevel)),
		Editor:       strings.TrimSpace(v.GetString(KeyEditor)),
		ConfigFile:   v.ConfigFileUsed(),
	}

	if cfg.LogFile == "" {
		cfg.LogFile = logging.DefaultPath()
	}

	if cfg.Token != "" {
		cfg.TokenSource = "settings"
	} else if token, source := tokenForHost("github.com"); token != "" {
		cfg.Token = token
		cfg.TokenSource = source
	}

	if cfg.Jobs < MinJobs || cfg.Jobs > MaxJobs {
		return cfg, fmt.Errorf("jobs must be between %d and %d, got %d", MinJobs, MaxJobs, cfg.Jobs)
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	sortBy, err := models.ParseSortBy(v.GetString(KeySort))
	if err != nil {
		return cfg, err
	}
	cfg.Sort = sortBy

	if _, err := export.New(cfg.ExportFormat, cfg.ExportDir); err != nil {
		return cfg, err
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return cfg, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	return cfg, nil
}
