// Package version carries build metadata injected with -ldflags.
package version

var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)
