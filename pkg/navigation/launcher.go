package navigation

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
)

// Launcher opens a named destination in an external routing experience.
// The hand-off is fire-and-forget; callers never consume a result.
type Launcher interface {
	OpenDirections(name, address string, latitude, longitude float64)
}

// SystemLauncher opens a Google Maps directions URL with the platform's
// default URL handler.
type SystemLauncher struct {
	logger zerolog.Logger
}

// NewSystemLauncher creates a SystemLauncher.
func NewSystemLauncher(logger zerolog.Logger) *SystemLauncher {
	return &SystemLauncher{logger: logger}
}

// OpenDirections launches directions to the destination. The resolved
// address is preferred as the destination query; the raw coordinate is
// the fallback.
func (l *SystemLauncher) OpenDirections(name, address string, latitude, longitude float64) {
	destination := address
	if destination == "" {
		destination = fmt.Sprintf("%f,%f", latitude, longitude)
	}

	target := "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(destination)

	if err := openCommand(target).Start(); err != nil {
		l.logger.Error().Err(err).Str("destination", name).Msg("Failed to launch external navigation")
		return
	}

	l.logger.Info().Str("destination", name).Str("address", address).Msg("External navigation launched")
}

// openCommand builds the platform command that opens a URL.
func openCommand(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.Command("xdg-open", target)
	}
}
