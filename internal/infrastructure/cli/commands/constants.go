package commands

import "errors"

// AnnotationSkipContainer marks commands that run without loading config or storage.
const AnnotationSkipContainer = "passgen/skip-container"

// AnnotationLenientConfig marks command trees that must keep working on a broken
// config file. Subcommands inherit it from their parent.
const AnnotationLenientConfig = "passgen/lenient-config"

// DefaultEditorCommand is the default editor command
const DefaultEditorCommand = "vi"

// ExportStdout makes `history export` write to standard output.
const ExportStdout = "-"

var (
	ErrSessionUnavailable = errors.New("session unavailable")
	ErrHistoryUnavailable = errors.New("history store unavailable")
	ErrDoctorUnavailable  = errors.New("doctor service unavailable")
)

// Error messages
const (
	ErrKeyRequired = "key is required (positional or --key)"
)

// Success messages
const (
	MsgConfigurationValid       = "Configuration valid"
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgHistoryCleared           = "History cleared."
	MsgClearCancelled           = "Clear cancelled."
)
