// Package constant holds the application name, version and build metadata.
package constant

import _ "embed"

const (
	// Playalong names the binary, the config file, the env prefix and the app directories.
	Playalong = "playalong"
	Version   = "0.3.0"
)

// Set through -ldflags by release builds.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// runtime.GOOS values with a dedicated mpv install hint.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

//go:embed ascii.txt
var AsciiArtLogo string
