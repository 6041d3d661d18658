/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/zalando/go-keyring"
	"gopkg.in/yaml.v3"

	"inspiraview/internal/blobstore"
	applog "inspiraview/internal/log"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	TelemetryOptIn bool   `yaml:"telemetry_opt_in"`
	Theme          string `yaml:"theme"`     // "system" | "light" | "dark"
	FontPath       string `yaml:"font_path"` // optional TTF/OTF for text notes
}

// StorageConfig selects the blob store holding the autosaved scene.
// Secrets (S3 secret key, postgres password) are not stored on disk; they live in the OS keychain.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // memory | filesystem | sqlite | postgres | s3
	Path        string `yaml:"path"`
	DSN         string `yaml:"dsn"`
	Bucket      string `yaml:"bucket"`
	Region      string `yaml:"region"`
	Endpoint    string `yaml:"endpoint"`
	Prefix      string `yaml:"prefix"`
	AccessKeyID string `yaml:"access_key_id"`
}

type AutosaveConfig struct {
	IntervalMs int `yaml:"interval_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int            `yaml:"config_version"`
	General       GeneralConfig  `yaml:"general"`
	Storage       StorageConfig  `yaml:"storage"`
	Autosave      AutosaveConfig `yaml:"autosave"`
	Logging       LoggingConfig  `yaml:"logging"`
}

// Secrets are read from the OS keyring and never written to the YAML file.
type Secrets struct {
	S3SecretKey      string
	PostgresPassword string
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{TelemetryOptIn: false, Theme: "system"},
		Storage:       StorageConfig{Backend: blobstore.BackendSQLite},
		Autosave:      AutosaveConfig{IntervalMs: 1000},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvStorageBackend = "IV_STORAGE_BACKEND"
	EnvStoragePath    = "IV_STORAGE_PATH"
	EnvStorageDSN     = "IV_STORAGE_DSN"
	EnvS3Bucket       = "IV_S3_BUCKET"
	EnvS3Region       = "IV_S3_REGION"
	EnvS3Endpoint     = "IV_S3_ENDPOINT"
	EnvAutosaveMs     = "IV_AUTOSAVE_MS"
	EnvTelemetryOptIn = "IV_TELEMETRY_OPT_IN"
	EnvFontPath       = "IV_FONT_PATH"
	// EnvLogLevel Logging envs
	EnvLogLevel  = applog.EnvLevel
	EnvLogFormat = applog.EnvFormat
	EnvLogSource = applog.EnvSource
	EnvLogFile   = applog.EnvFile
	// EnvConfigDir relocates the whole per-user config directory.
	EnvConfigDir = "IV_CONFIG_DIR"
)

// Service/keys for OS keyring.
const (
	keyringService  = "InspiraView"
	keyringS3Secret = "s3_secret_key"
	keyringPGPass   = "postgres_password"
)

// secretStore abstracts keyring, so we can stub in tests.
var secretStore SecretStore = osKeyring{}

type SecretStore interface {
	Get(service, key string) (string, error)
	Set(service, key, value string) error
	Delete(service, key string) error
}

// osKeyring implements SecretStore using the OS keyring via github.com/zalando/go-keyring.
type osKeyring struct{}

func (osKeyring) Get(service, key string) (string, error) { return keyringGet(service, key) }
func (osKeyring) Set(service, key, value string) error    { return keyringSet(service, key, value) }
func (osKeyring) Delete(service, key string) error        { return keyringDelete(service, key) }

var (
	keyringGet    = keyring.Get
	keyringSet    = keyring.Set
	keyringDelete = keyring.Delete
)

// ConfigDir returns the per-user config directory.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "InspiraView")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "InspiraView")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "inspiraview")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "inspiraview")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return base, nil
}

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads user config file (if present), applies defaults, and merges environment overrides.
// Secrets come from the keyring and are returned separately; a missing keyring yields empty secrets.
func Load() (AppConfig, Secrets, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		applyEnvOverrides(&cfg)
		return cfg, Secrets{}, err
	}
	if data, err := os.ReadFile(path); err == nil {
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err == nil {
			mergeInto(&cfg, &fileCfg)
		} else {
			applog.WithComponent("config").Warn("ignoring malformed config file", "path", path, "err", err)
		}
	}
	applyEnvOverrides(&cfg)
	var sec Secrets
	sec.S3SecretKey, _ = secretStore.Get(keyringService, keyringS3Secret)
	sec.PostgresPassword, _ = secretStore.Get(keyringService, keyringPGPass)
	return cfg, sec, nil
}

// Save writes the user config YAML and persists non-empty secrets into the OS keyring.
func Save(cfg AppConfig, sec Secrets) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	if sec.S3SecretKey != "" {
		if err := secretStore.Set(keyringService, keyringS3Secret, sec.S3SecretKey); err != nil {
			return err
		}
	}
	if sec.PostgresPassword != "" {
		if err := secretStore.Set(keyringService, keyringPGPass, sec.PostgresPassword); err != nil {
			return err
		}
	}
	return nil
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if src.General.Theme != "" {
		dst.General.Theme = src.General.Theme
	}
	// booleans: copy directly from src (file) so user preferences persist
	dst.General.TelemetryOptIn = src.General.TelemetryOptIn
	if v := strings.TrimSpace(src.General.FontPath); v != "" {
		dst.General.FontPath = v
	}
	// storage
	if v := strings.TrimSpace(src.Storage.Backend); v != "" {
		dst.Storage.Backend = strings.ToLower(v)
	}
	mergeString(&dst.Storage.Path, src.Storage.Path)
	mergeString(&dst.Storage.DSN, src.Storage.DSN)
	mergeString(&dst.Storage.Bucket, src.Storage.Bucket)
	mergeString(&dst.Storage.Region, src.Storage.Region)
	mergeString(&dst.Storage.Endpoint, src.Storage.Endpoint)
	mergeString(&dst.Storage.Prefix, src.Storage.Prefix)
	mergeString(&dst.Storage.AccessKeyID, src.Storage.AccessKeyID)
	if src.Autosave.IntervalMs > 0 {
		dst.Autosave.IntervalMs = src.Autosave.IntervalMs
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	mergeString(&dst.Logging.File, src.Logging.File)
}

func mergeString(dst *string, src string) {
	if v := strings.TrimSpace(src); v != "" {
		*dst = v
	}
}

func envBool(v string) bool {
	lv := strings.ToLower(v)
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvStorageBackend)); v != "" {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvStoragePath)); v != "" {
		cfg.Storage.Path = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvStorageDSN)); v != "" {
		cfg.Storage.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvS3Bucket)); v != "" {
		cfg.Storage.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvS3Region)); v != "" {
		cfg.Storage.Region = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvS3Endpoint)); v != "" {
		cfg.Storage.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAutosaveMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Autosave.IntervalMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvTelemetryOptIn)); v != "" {
		cfg.General.TelemetryOptIn = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontPath)); v != "" {
		cfg.General.FontPath = v
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = envBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var overrideEnv = map[string]string{
	"storage.backend":          EnvStorageBackend,
	"storage.path":             EnvStoragePath,
	"storage.dsn":              EnvStorageDSN,
	"storage.bucket":           EnvS3Bucket,
	"storage.region":           EnvS3Region,
	"storage.endpoint":         EnvS3Endpoint,
	"autosave.interval_ms":     EnvAutosaveMs,
	"general.telemetry_opt_in": EnvTelemetryOptIn,
	"general.font_path":        EnvFontPath,
	"logging.level":            EnvLogLevel,
	"logging.format":           EnvLogFormat,
	"logging.source":           EnvLogSource,
	"logging.file":             EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := overrideEnv[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// AutosaveInterval returns the debounce interval, falling back to the default for non-positive values.
func (a AutosaveConfig) AutosaveInterval() time.Duration {
	if a.IntervalMs <= 0 {
		return time.Duration(Defaults().Autosave.IntervalMs) * time.Millisecond
	}
	return time.Duration(a.IntervalMs) * time.Millisecond
}

// BlobOptions maps the storage section onto blobstore options. Relative or empty paths
// for the file-backed backends resolve inside dir (normally ConfigDir).
func (c AppConfig) BlobOptions(dir string, sec Secrets) blobstore.Options {
	s := c.Storage
	opts := blobstore.Options{
		Backend:   s.Backend,
		Path:      s.Path,
		DSN:       s.DSN,
		Bucket:    s.Bucket,
		Region:    s.Region,
		Endpoint:  s.Endpoint,
		Prefix:    s.Prefix,
		AccessKey: s.AccessKeyID,
		SecretKey: sec.S3SecretKey,
	}
	switch s.Backend {
	case blobstore.BackendSQLite:
		if opts.Path == "" {
			opts.Path = "scene.db"
		}
	case blobstore.BackendFilesystem:
		if opts.Path == "" {
			opts.Path = "blobs"
		}
	case blobstore.BackendPostgres:
		opts.DSN = withPassword(opts.DSN, sec.PostgresPassword)
	}
	if opts.Path != "" && !filepath.IsAbs(opts.Path) && dir != "" {
		opts.Path = filepath.Join(dir, opts.Path)
	}
	return opts
}

// withPassword adds the keyring password to a DSN that does not carry one.
func withPassword(dsn, pass string) string {
	if pass == "" || dsn == "" {
		return dsn
	}
	if strings.Contains(dsn, "://") {
		u, err := url.Parse(dsn)
		if err != nil || u.User == nil {
			return dsn
		}
		if _, set := u.User.Password(); set {
			return dsn
		}
		u.User = url.UserPassword(u.User.Username(), pass)
		return u.String()
	}
	if strings.Contains(dsn, "password=") {
		return dsn
	}
	return dsn + " password=" + pass
}
