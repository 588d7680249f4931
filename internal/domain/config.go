package domain

// Config mirrors ~/.passgen/config.yaml.
type Config struct {
	ConfigFormatVersion string            `yaml:"config_format_version"`
	Preferences         Preferences       `yaml:"preferences"`
	Generator           GeneratorSettings `yaml:"generator"`
	Storage             StorageSettings   `yaml:"storage"`
	History             HistorySettings   `yaml:"history"`
	Clipboard           ClipboardSettings `yaml:"clipboard"`
}

// Preferences captures user level toggles.
type Preferences struct {
	DefaultLength  int  `yaml:"default_length"`
	DefaultTier    int  `yaml:"default_tier"`
	CopyOnGenerate bool `yaml:"copy_on_generate"`
	Verbose        bool `yaml:"verbose"`
}

// GeneratorSettings selects the generation algorithm.
type GeneratorSettings struct {
	Strategy  Strategy `yaml:"strategy"`
	MaxLength int      `yaml:"max_length"`
}

// StorageSettings chooses the key-value backend.
type StorageSettings struct {
	Backend StorageBackend `yaml:"backend"`
	Path    string         `yaml:"path"`
}

// HistorySettings controls password history retention.
type HistorySettings struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// ClipboardSettings configures clipboard integration.
type ClipboardSettings struct {
	Enabled       bool   `yaml:"enabled"`
	BadgeDuration string `yaml:"badge_duration"`
}

// StorageBackend names a KeyValueStore implementation.
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageFile   StorageBackend = "file"
	StorageMemory StorageBackend = "memory"
)
