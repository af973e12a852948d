package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/playback"
)

const (
	// PathEnv overrides the config file location.
	PathEnv = "PRESTO_CONFIG_PATH"
	// EnvPrefix prefixes per-key overrides, e.g. PRESTO__AUDIO__CROSSFADE_MS.
	EnvPrefix = "PRESTO__"
)

// ErrInvalid marks configurations that fail validation.
var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Audio         AudioConfig         `koanf:"audio"`
	UI            UIConfig            `koanf:"ui"`
	Controls      ControlsConfig      `koanf:"controls"`
	Playback      PlaybackConfig      `koanf:"playback"`
	Library       LibraryConfig       `koanf:"library"`
	Notifications NotificationsConfig `koanf:"notifications"`
	Log           LogConfig           `koanf:"log"`
}

// AudioConfig holds transition timings and the output device rate.
type AudioConfig struct {
	CrossfadeMs    int `koanf:"crossfade_ms" default:"250" validate:"gte=0"`
	CrossfadeSteps int `koanf:"crossfade_steps" default:"10" validate:"gte=1"`
	QuitFadeOutMs  int `koanf:"quit_fade_out_ms" default:"500" validate:"gte=0"`
	SampleRate     int `koanf:"sample_rate" default:"44100" validate:"gte=8000,lte=384000"`
}

type UIConfig struct {
	FollowPlayback           bool     `koanf:"follow_playback" default:"true"`
	HeaderText               string   `koanf:"header_text" default:" ~ And presto! It's music ~ "`
	Icons                    string   `koanf:"icons" default:"none" validate:"oneof=none unicode nerd"`
	NowPlayingTrackFields    []string `koanf:"now_playing_track_fields" default:"[\"display\"]" validate:"dive,oneof=display title artist album filename path"`
	NowPlayingTrackSeparator string   `koanf:"now_playing_track_separator" default:" - "`
	NowPlayingTimeFields     []string `koanf:"now_playing_time_fields" default:"[\"elapsed\",\"total\",\"remaining\"]" validate:"dive,oneof=elapsed total remaining"`
	NowPlayingTimeSeparator  string   `koanf:"now_playing_time_separator" default:" / "`
}

type ControlsConfig struct {
	ScrubSeconds int `koanf:"scrub_seconds" default:"5" validate:"gte=1"`
}

type PlaybackConfig struct {
	Shuffle  bool   `koanf:"shuffle"`
	LoopMode string `koanf:"loop_mode" default:"loop-all" validate:"loopmode"`
}

type LibraryConfig struct {
	Root             string   `koanf:"root"` // empty means the working directory
	Extensions       []string `koanf:"extensions" default:"[\"mp3\",\"flac\",\"wav\",\"ogg\"]" validate:"min=1"`
	FollowLinks      bool     `koanf:"follow_links" default:"true"`
	IncludeHidden    bool     `koanf:"include_hidden" default:"true"`
	Recursive        bool     `koanf:"recursive" default:"true"`
	MaxDepth         int      `koanf:"max_depth" validate:"gte=0"` // 0 means unlimited
	DisplayFields    []string `koanf:"display_fields" default:"[\"artist\",\"title\"]" validate:"dive,oneof=title artist album filename path"`
	DisplaySeparator string   `koanf:"display_separator" default:" - "`
}

// NotificationsConfig controls desktop notifications on track change.
type NotificationsConfig struct {
	Enabled      bool `koanf:"enabled"`
	ShowAlbumArt bool `koanf:"show_album_art" default:"true"`
	TimeoutMs    int  `koanf:"timeout_ms" default:"5000" validate:"gte=-1"` // -1 means server default
}

type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"` // empty means $XDG_STATE_HOME/presto/presto.log
}

// Path returns the config file location: $PRESTO_CONFIG_PATH, else
// $XDG_CONFIG_HOME/presto/config.toml.
func Path() string {
	if p := os.Getenv(PathEnv); p != "" {
		return expandPath(p)
	}
	return filepath.Join(xdg.ConfigHome, "presto", "config.toml")
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	// Tags are static; Set cannot fail on them.
	_ = defaults.Set(cfg)
	return cfg
}

// Load reads path (a missing file is not an error), applies PRESTO__
// environment overrides, fills defaults and validates.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "load %s", path)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, "load environment")
	}

	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "set defaults")
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	cfg.Library.Root = expandPath(cfg.Library.Root)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if mode, ok := normalizeLoopMode(cfg.Playback.LoopMode); ok {
		cfg.Playback.LoopMode = mode
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load that never leaves the caller without a config:
// on failure it returns the defaults along with the error.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("loopmode", func(fl validator.FieldLevel) bool {
		_, ok := normalizeLoopMode(fl.Field().String())
		return ok
	}); err != nil {
		return errors.Wrap(err, "register validators")
	}
	if err := validate.Struct(c); err != nil {
		return errors.Mark(errors.Wrap(err, "config validation failed"), ErrInvalid)
	}
	return nil
}

// envKey maps PRESTO__AUDIO__CROSSFADE_MS to audio.crossfade_ms.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

var loopAliases = map[string]playback.LoopMode{
	"no-loop":     playback.NoLoop,
	"noloop":      playback.NoLoop,
	"none":        playback.NoLoop,
	"off":         playback.NoLoop,
	"loop-all":    playback.LoopAll,
	"loopall":     playback.LoopAll,
	"all":         playback.LoopAll,
	"loop-around": playback.LoopAll,
	"repeat-all":  playback.LoopAll,
	"repeat":      playback.LoopAll,
	"loop-one":    playback.LoopOne,
	"loopone":     playback.LoopOne,
	"one":         playback.LoopOne,
	"single":      playback.LoopOne,
	"repeat-one":  playback.LoopOne,
}

// normalizeLoopMode maps any accepted spelling to the canonical name.
func normalizeLoopMode(s string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	m, ok := loopAliases[key]
	if !ok {
		return "", false
	}
	return m.String(), true
}

// Loop returns the configured loop mode, LoopAll if unrecognised.
func (p PlaybackConfig) Loop() playback.LoopMode {
	name, ok := normalizeLoopMode(p.LoopMode)
	if !ok {
		return playback.LoopAll
	}
	m, err := playback.ParseLoopMode(name)
	if err != nil {
		return playback.LoopAll
	}
	return m
}

// Settings converts the audio section for the playback engine.
func (a AudioConfig) Settings() playback.Settings {
	return playback.Settings{
		Crossfade:      time.Duration(a.CrossfadeMs) * time.Millisecond,
		CrossfadeSteps: a.CrossfadeSteps,
		QuitFadeOut:    time.Duration(a.QuitFadeOutMs) * time.Millisecond,
	}
}

// Settings converts the library section for scanning.
func (l LibraryConfig) Settings() library.Settings {
	return library.Settings{
		Extensions:       l.Extensions,
		FollowLinks:      l.FollowLinks,
		IncludeHidden:    l.IncludeHidden,
		Recursive:        l.Recursive,
		MaxDepth:         l.MaxDepth,
		DisplayFields:    l.DisplayFields,
		DisplaySeparator: l.DisplaySeparator,
	}
}
