// Package config holds the limits and defaults shared by the pixel-art
// server and command line tool.
//
// Values start from Default and can be overridden through PIXELART_*
// environment variables (see FromEnv). Command line flags, when present,
// are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvPixelSizeMin     = "PIXELART_PIXEL_SIZE_MIN"
	EnvPixelSizeMax     = "PIXELART_PIXEL_SIZE_MAX"
	EnvPixelSizeDefault = "PIXELART_PIXEL_SIZE_DEFAULT"
	EnvMaxUploadMB      = "PIXELART_MAX_UPLOAD_MB"
	EnvExtensions       = "PIXELART_EXTENSIONS"
	EnvPreviewWidth     = "PIXELART_PREVIEW_WIDTH"
	EnvBgTolerance      = "PIXELART_BG_TOLERANCE"
	EnvLogLevel         = "PIXELART_LOG_LEVEL"
)

// ErrInvalidConfig is returned when a value is malformed or out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the set of tunables for a pixel-art service.
type Config struct {
	PixelSizeMin     int      // Smallest pixel size a caller may request
	PixelSizeMax     int      // Largest pixel size a caller may request
	PixelSizeDefault int      // Pixel size used when the caller gives none
	MaxUploadMB      int      // Largest accepted source file, in MiB
	Extensions       []string // Accepted file extensions, lower case, no dot
	PreviewWidth     int      // Width previews are shrunk to
	BgTolerance      int      // Default background removal tolerance
	LogLevel         string   // "debug" enables verbose logging
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PixelSizeMin:     4,
		PixelSizeMax:     64,
		PixelSizeDefault: 16,
		MaxUploadMB:      20,
		Extensions:       []string{"png", "jpg", "jpeg", "gif", "bmp", "webp"},
		PreviewWidth:     128,
		BgTolerance:      10,
		LogLevel:         "info",
	}
}

// FromEnv returns Default overlaid with any PIXELART_* variables that are set.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	ints := []struct {
		name string
		dst  *int
	}{
		{EnvPixelSizeMin, &cfg.PixelSizeMin},
		{EnvPixelSizeMax, &cfg.PixelSizeMax},
		{EnvPixelSizeDefault, &cfg.PixelSizeDefault},
		{EnvMaxUploadMB, &cfg.MaxUploadMB},
		{EnvPreviewWidth, &cfg.PreviewWidth},
		{EnvBgTolerance, &cfg.BgTolerance},
	}
	for _, v := range ints {
		s, ok := lookup(v.name)
		if !ok || s == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, v.name, s)
		}
		*v.dst = n
	}

	if s, ok := lookup(EnvExtensions); ok && s != "" {
		cfg.Extensions = ParseExtensions(s)
	}
	if s, ok := lookup(EnvLogLevel); ok && s != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(s))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseExtensions splits a comma separated list such as ".PNG, jpg" into
// normalized extensions ("png", "jpg").
func ParseExtensions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		ext := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

// Validate checks that the limits are consistent.
func (c Config) Validate() error {
	switch {
	case c.PixelSizeMin < 1:
		return fmt.Errorf("%w: minimum pixel size %d must be at least 1", ErrInvalidConfig, c.PixelSizeMin)
	case c.PixelSizeMax < c.PixelSizeMin:
		return fmt.Errorf("%w: maximum pixel size %d is below minimum %d", ErrInvalidConfig, c.PixelSizeMax, c.PixelSizeMin)
	case c.PixelSizeDefault < c.PixelSizeMin || c.PixelSizeDefault > c.PixelSizeMax:
		return fmt.Errorf("%w: default pixel size %d is outside %d-%d",
			ErrInvalidConfig, c.PixelSizeDefault, c.PixelSizeMin, c.PixelSizeMax)
	case c.MaxUploadMB < 0:
		return fmt.Errorf("%w: max upload %d MB is negative", ErrInvalidConfig, c.MaxUploadMB)
	case c.PreviewWidth < 1:
		return fmt.Errorf("%w: preview width %d must be at least 1", ErrInvalidConfig, c.PreviewWidth)
	case c.BgTolerance < 0:
		return fmt.Errorf("%w: background tolerance %d is negative", ErrInvalidConfig, c.BgTolerance)
	case len(c.Extensions) == 0:
		return fmt.Errorf("%w: no file extensions allowed", ErrInvalidConfig)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes. Zero means unlimited.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}

// Debug reports whether debug logging is enabled.
func (c Config) Debug() bool {
	return c.LogLevel == "debug"
}

// CheckPixelSize returns an error unless size lies within the configured range.
func (c Config) CheckPixelSize(size int) error {
	if size < c.PixelSizeMin || size > c.PixelSizeMax {
		return fmt.Errorf("%w: pixel size %d is outside %d-%d",
			ErrInvalidConfig, size, c.PixelSizeMin, c.PixelSizeMax)
	}
	return nil
}
