package internal

import (
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Storage backends.
const (
	BackendText   = "text"
	BackendSQLite = "sqlite"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Storage StorageConfig     `yaml:"storage"`
	Text    TextConfig        `yaml:"text"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
}

// Validate validates the configuration. Only the selected backend's section
// is checked.
func (c *Config) Validate() error {
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case BackendText:
		return c.Text.Validate()
	default:
		return c.SQLite.Validate()
	}
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	// LogFile receives the JSON log. Empty means stderr.
	LogFile string `yaml:"log_file"`
}

// StorageConfig selects the note backend.
type StorageConfig struct {
	Backend string `yaml:"backend"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendText, BackendSQLite)),
	)
}

// TextConfig holds the flat-file backend configuration.
//
// MissingAsEmpty controls what listing a notes file that does not exist yet
// does:
//   - false (default): report "cannot open notes file".
//   - true: show an empty list.
type TextConfig struct {
	Path           string `yaml:"path"`
	MissingAsEmpty bool   `yaml:"missing_as_empty"`
}

// Validate validates the text backend configuration.
func (c *TextConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelWarn,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Text: TextConfig{
			Path: "./notes.txt",
		},
		SQLite: SQLiteConfig{
			Path: "./notebook.db",
		},
	}
}
