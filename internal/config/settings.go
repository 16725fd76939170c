package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	loopconfig "github.com/tomz197/geobuilder/internal/loop/config"
)

// ErrInvalidSettings is returned when a settings file fails validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings are the user-tunable parts of the board, loaded from TOML.
type Settings struct {
	HitRadius   float64 `toml:"hit_radius"`
	PointRadius float64 `toml:"point_radius"`
	Palette     Palette `toml:"palette"`
}

// Palette maps display tags to ANSI 256 color codes.
type Palette map[string]int

// Palette tags used by the renderer besides the circle tags.
const (
	TagPoint        = "point"
	TagIntersection = "red"
)

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		HitRadius:   loopconfig.DefaultHitRadius,
		PointRadius: loopconfig.PointRadius,
		Palette: Palette{
			TagPoint:        15,
			"blue":          12,
			"yellow":        11,
			TagIntersection: 9,
		},
	}
}

// LoadSettings reads settings from the TOML file at path on top of the
// defaults. An empty path returns the defaults.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	var file Settings
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Settings{}, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidSettings, path, strings.Join(keys, ", "))
	}

	if md.IsDefined("hit_radius") {
		s.HitRadius = file.HitRadius
	}
	if md.IsDefined("point_radius") {
		s.PointRadius = file.PointRadius
	}
	for tag, code := range file.Palette {
		s.Palette[tag] = code
	}

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks radii are positive and colors fit the 256-color range.
func (s Settings) Validate() error {
	if s.HitRadius <= 0 {
		return fmt.Errorf("%w: hit_radius must be positive, got %g", ErrInvalidSettings, s.HitRadius)
	}
	if s.PointRadius <= 0 {
		return fmt.Errorf("%w: point_radius must be positive, got %g", ErrInvalidSettings, s.PointRadius)
	}
	for tag, code := range s.Palette {
		if code < 0 || code > 255 {
			return fmt.Errorf("%w: palette.%s must be 0-255, got %d", ErrInvalidSettings, tag, code)
		}
	}
	return nil
}

// Color returns the color code for tag, falling back to the point color.
func (p Palette) Color(tag string) int {
	if code, ok := p[tag]; ok {
		return code
	}
	return p[TagPoint]
}
