package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Generation defaults
const (
	// DefaultLength is the password length used when none is configured
	DefaultLength = 12
	// DefaultTier is the tier used when none is configured
	DefaultTier = TierDigits
	// DefaultMaxLength caps the accepted password length
	DefaultMaxLength = 4096
	// InitialPassword is shown before anything has been generated
	InitialPassword = "password"
)

// Clipboard constants
const (
	// DefaultBadgeDuration is how long the copy indicator stays visible
	DefaultBadgeDuration = 1000 * time.Millisecond
)

// Storage constants
const (
	// DefaultSQLiteFile is the database file name under ~/.passgen
	DefaultSQLiteFile = "passgen.db"
	// DefaultStoreFile is the JSON store file name under ~/.passgen
	DefaultStoreFile = "passwords.json"
	// ConfigDirName is the per-user directory for config and storage
	ConfigDirName = ".passgen"
)
