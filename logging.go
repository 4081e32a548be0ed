package vscroll

import "github.com/rs/zerolog"

// Logger receives the package's warnings and errors. It defaults to a no-op
// logger so the library stays silent unless the host opts in.
//
//nolint:gochecknoglobals // Intentionally global so every widget shares one logger.
var Logger = zerolog.Nop()

// SetLogger installs the logger used for warnings and errors. Pass a
// configured zerolog.Logger, or zerolog.Nop() to silence the package again.
func SetLogger(logger zerolog.Logger) {
	Logger = logger
}
