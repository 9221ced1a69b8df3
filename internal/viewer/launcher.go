// Package viewer opens artwork images in an external program.
package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// ErrNoImage is returned when an artwork has no web image to open
var ErrNoImage = errors.New("artwork has no image")

// Launcher opens image URLs in the configured viewer or the system default
type Launcher struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments placed before the URL
	logger  *slog.Logger

	start func(name string, args ...string) error
	goos  string
}

// NewLauncher creates a Launcher. An empty command uses the platform's
// default URL handler (open, xdg-open or start).
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		logger:  logger,
		start:   startDetached,
		goos:    runtime.GOOS,
	}
}

// startDetached starts a command without waiting for it
func startDetached(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open launches url in the viewer
func (l *Launcher) Open(url string) error {
	if url == "" {
		return ErrNoImage
	}

	name, args := l.commandFor(url)
	l.logger.Info("opening image", "command", name, "args", args)

	if err := l.start(name, args...); err != nil {
		l.logger.Error("failed to open image", "command", name, "error", err)
		return fmt.Errorf("failed to launch %s: %w", name, err)
	}
	return nil
}

// commandFor builds the command line that opens url
func (l *Launcher) commandFor(url string) (string, []string) {
	if l.command != "" {
		args := append([]string{}, l.args...)
		return l.command, append(args, url)
	}

	switch l.goos {
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "cmd", []string{"/c", "start", "", url}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{url}
	}
}
