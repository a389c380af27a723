package tui

import (
	"io"

	"github.com/Veraticus/snowball/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Input     io.Reader
	Output    io.Writer
	Theme     themes.Theme
	Width     int
	Height    int
	ShowHelp  bool
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithHelp starts with the full help view expanded.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}

// WithIO replaces the terminal the program reads from and renders to.
// The alternate screen is disabled.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(c *Config) {
		c.Input = in
		c.Output = out
		c.AltScreen = false
	}
}
