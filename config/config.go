// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads HUD display settings from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/gghud"
)

// Sentinel errors.
var (
	// ErrUnsupportedFormat is returned for config files that are neither
	// TOML nor YAML.
	ErrUnsupportedFormat = errors.New("config: unsupported format")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid")
)

// Format is a config file syntax.
type Format int

// Supported formats.
const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Config holds every user-facing HUD setting.
type Config struct {
	Overlay Overlay `toml:"overlay" yaml:"overlay"`
	Compass Compass `toml:"compass" yaml:"compass"`
	Feed    Feed    `toml:"feed" yaml:"feed"`
}

// Overlay holds the overlay placement.
type Overlay struct {
	Width   int          `toml:"width" yaml:"width"`
	Height  int          `toml:"height" yaml:"height"`
	OffsetX int          `toml:"offset_x" yaml:"offset_x"`
	OffsetY int          `toml:"offset_y" yaml:"offset_y"`
	Anchor  gghud.Anchor `toml:"anchor" yaml:"anchor"`
	Visible bool         `toml:"visible" yaml:"visible"`
}

// Geometry converts the overlay settings to a gghud.Geometry.
func (o Overlay) Geometry() gghud.Geometry {
	return gghud.Geometry{
		Width:   o.Width,
		Height:  o.Height,
		OffsetX: o.OffsetX,
		OffsetY: o.OffsetY,
		Anchor:  o.Anchor,
	}
}

// Compass holds heading indicator settings.
type Compass struct {
	// HeadingOffset is added to every heading, in degrees.
	HeadingOffset float64 `toml:"heading_offset" yaml:"heading_offset"`
}

// Feed holds the attitude feed connection.
type Feed struct {
	// URL is a ws:// or wss:// endpoint. Empty disables the feed.
	URL            string        `toml:"url" yaml:"url"`
	ReconnectDelay time.Duration `toml:"reconnect_delay" yaml:"reconnect_delay"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Overlay: Overlay{
			Width:   200,
			Height:  200,
			OffsetX: 10,
			OffsetY: 10,
			Anchor:  gghud.AnchorBottomRight,
			Visible: true,
		},
		Feed: Feed{
			ReconnectDelay: 2 * time.Second,
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (Config, error) {
	format, err := FormatFor(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result. Unknown
// keys are rejected.
func Parse(data []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("config: parse toml: %w", err)
		}
		if keys := md.Undecoded(); len(keys) > 0 {
			return Config{}, fmt.Errorf("config: unknown key %q", keys[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	o := c.Overlay
	if o.Width < 0 || o.Height < 0 {
		return fmt.Errorf("%w: overlay size %dx%d is negative", ErrInvalid, o.Width, o.Height)
	}
	if _, err := o.Anchor.MarshalText(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Feed.ReconnectDelay < 0 {
		return fmt.Errorf("%w: reconnect delay %v is negative", ErrInvalid, c.Feed.ReconnectDelay)
	}
	if c.Feed.URL != "" {
		u, err := url.Parse(c.Feed.URL)
		if err != nil {
			return fmt.Errorf("%w: feed url: %w", ErrInvalid, err)
		}
		if u.Scheme != "ws" && u.Scheme != "wss" {
			return fmt.Errorf("%w: feed url scheme %q, want ws or wss", ErrInvalid, u.Scheme)
		}
	}
	return nil
}
