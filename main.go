// Package main is the presto entry point: a terminal music player for a
// folder of audio files.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/llehouerou/presto/internal/config"
	"github.com/llehouerou/presto/internal/errmsg"
	"github.com/llehouerou/presto/internal/icons"
	"github.com/llehouerou/presto/internal/library"
	"github.com/llehouerou/presto/internal/logger"
	"github.com/llehouerou/presto/internal/mpris"
	"github.com/llehouerou/presto/internal/notify"
	"github.com/llehouerou/presto/internal/playback"
	"github.com/llehouerou/presto/internal/remote"
	"github.com/llehouerou/presto/internal/stderr"
	"github.com/llehouerou/presto/internal/ui"
)

var (
	app        = kingpin.New("presto", "And presto! It's music: plays a folder of audio files in the terminal.")
	dirArg     = app.Arg("dir", "Music folder (default: library.root from the config, else the working directory)").String()
	configPath = app.Flag("config", "Path to config file (default: $PRESTO_CONFIG_PATH or $XDG_CONFIG_HOME/presto/config.toml)").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", `Log destination: a file path, "stdout" or "stderr"`).String()
	noMPRIS    = app.Flag("no-mpris", "Do not register media controls on the session bus").Bool()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	kingpin.MustParse(app.Parse(os.Args[1:]))

	path := *configPath
	if path == "" {
		path = config.Path()
	}
	cfg, cfgErr := config.LoadOrDefault(path)

	logCfg := logConfig(cfg)
	closer, err := logger.Init(logCfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpLogInit, err))
		os.Exit(1)
	}
	if cfgErr != nil {
		zlog.Warn().Err(cfgErr).Str("path", path).Msg(errmsg.Format(errmsg.OpConfigLoad, cfgErr))
	}

	op, err := run(cfg, logCfg.Output == "file")
	if err != nil {
		zlog.Error().Err(err).Msg(string(op))
		fmt.Fprintln(os.Stderr, errmsg.Format(op, err))
	}
	_ = closer.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run executes the player. Using a separate function ensures deferred
// cleanup runs before the process exits. On failure it reports which
// startup step failed.
func run(cfg *config.Config, captureStderr bool) (errmsg.Op, error) {
	if captureStderr {
		capture, err := stderr.Start(zlog.With().Str("component", "stderr").Logger())
		if err != nil {
			zlog.Warn().Err(err).Msg(errmsg.Format(errmsg.OpStderrCapture, err))
		}
		defer capture.Stop()
	}

	root, err := libraryRoot(cfg)
	if err != nil {
		return errmsg.OpLibraryScan, err
	}
	zlog.Info().Str("root", root).Msg("scanning library")
	catalog, err := library.Scan(root, cfg.Library.Settings())
	if err != nil {
		return errmsg.OpLibraryScan, err
	}

	settings := cfg.Audio.Settings()
	h, err := playback.Open(catalog, settings, cfg.Audio.SampleRate, playback.Options{
		Loop:    cfg.Playback.Loop(),
		Shuffle: cfg.Playback.Shuffle,
	})
	if err != nil {
		return errmsg.OpAudioInit, err
	}
	defer h.Shutdown(settings.QuitFadeOut)
	_ = h.Send(playback.SetQueue{Indices: lo.Range(len(catalog))})

	icons.Init(cfg.UI.Icons)
	ctrl := remote.New(h, h.Playback(), len(catalog))
	model := ui.New(ui.Options{
		Catalog:      catalog,
		Engine:       h,
		Controller:   ctrl,
		Events:       h.Subscribe(),
		Config:       cfg.UI,
		ScrubSeconds: cfg.Controls.ScrubSeconds,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	ctrl.OnQuit(func() { program.Send(ui.QuitMsg{}) })

	if !*noMPRIS {
		adapter, err := mpris.New(ctrl, h.Playback(), catalog)
		if err != nil {
			zlog.Warn().Err(err).Msg(errmsg.Format(errmsg.OpRemoteStart, err))
		} else {
			defer func() {
				if err := adapter.Close(); err != nil {
					zlog.Debug().Err(err).Msg("closing mpris adapter")
				}
			}()
		}
	}

	if cfg.Notifications.Enabled {
		startNotifications(cfg.Notifications, h.Subscribe())
	}

	if _, err := program.Run(); err != nil {
		return errmsg.OpUIRun, err
	}
	zlog.Info().Msg("shutting down")
	return "", nil
}

// startNotifications posts a desktop notification on every track change
// until the engine stops.
func startNotifications(cfg config.NotificationsConfig, sub *playback.Subscription) {
	notifier, err := notify.New()
	if err != nil {
		zlog.Warn().Err(err).Msg("desktop notifications unavailable")
		return
	}
	w := notify.NewNowPlaying(notifier, notify.Options{
		ShowAlbumArt: cfg.ShowAlbumArt,
		Timeout:      int32(cfg.TimeoutMs), //nolint:gosec // bounded by validation
	})
	go w.Run(sub.TrackChanged, sub.Done)
}

// libraryRoot picks the music folder: the command-line argument, else the
// configured root, else the working directory.
func libraryRoot(cfg *config.Config) (string, error) {
	if *dirArg != "" {
		return *dirArg, nil
	}
	if cfg.Library.Root != "" {
		return cfg.Library.Root, nil
	}
	return os.Getwd()
}

func logConfig(cfg *config.Config) logger.Config {
	lc := logger.Config{
		Output: "file",
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
	}
	if *verbose {
		lc.Level = "debug"
	}
	switch *logfile {
	case "":
	case "stdout", "stderr":
		lc.Output = *logfile
	default:
		lc.File = *logfile
	}
	return lc
}
