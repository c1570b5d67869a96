package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/keywarden/keywarden/internal/intercept"
	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/logging"
	"github.com/keywarden/keywarden/internal/notify"
	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/recorder"
	"github.com/keywarden/keywarden/internal/settings"
	"github.com/keywarden/keywarden/internal/store"
	"github.com/keywarden/keywarden/internal/tui"
	"github.com/keywarden/keywarden/internal/window"
)

// openSettings locates keywarden.toml from the working directory upward and
// opens the reactive store over it. Returns the store and the directory
// holding the config file, which anchors the relative log and profile dirs.
func openSettings() (*settings.Store, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}
	path, err := settings.Locate(dir)
	if errors.Is(err, settings.ErrNotFound) {
		return nil, "", fmt.Errorf("%w — run 'keywarden init' first", err)
	}
	if err != nil {
		return nil, "", err
	}
	st, err := settings.Open(path, zerolog.Nop())
	if err != nil {
		return nil, "", err
	}
	return st, filepath.Dir(path), nil
}

// runTUI assembles the full workspace: settings store + file watcher,
// session log, notifier, window, interceptors, recorder, and the bubbletea
// program, in that order.
func runTUI() error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}
	path, err := settings.Locate(dir)
	if errors.Is(err, settings.ErrNotFound) {
		// First run: scaffold a default config in the working directory.
		path, err = settings.InitFile(dir)
	}
	if err != nil {
		return err
	}
	cfgDir := filepath.Dir(path)

	// The log dir comes from the config, so peek at it before wiring the
	// store with a real logger.
	cfg, err := settings.Load(path)
	if err != nil {
		return err
	}
	logDir := filepath.Join(cfgDir, cfg.Log.Dir)
	logger, logCloser, err := logging.Open(logDir, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	st, err := settings.Open(path, logger)
	if err != nil {
		return err
	}

	activity, err := store.NewJSONL(logDir)
	if err != nil {
		return err
	}
	defer activity.Close()
	if err := store.Prune(logDir, cfg.Log.Retention); err != nil {
		logger.Warn().Err(err).Msg("pruning old session logs failed")
	}

	notifier := notify.New(
		cfg.Notifications.URL,
		"keywarden",
		cfg.Notifications.OnConflict,
		cfg.Notifications.OnSessionEnd,
	)

	win := window.New()
	rec := recorder.New(win, st, logger)
	mailbox := tui.NewMailbox()

	// One interceptor per action. Only the clear-buffer interceptor starts
	// active; the close-tab one is toggled by the confirm dialog and the
	// rest stay dormant with default handling.
	interceptors := make(map[keybind.Action]*intercept.Interceptor, len(keybind.Actions()))
	for _, action := range keybind.Actions() {
		action := action
		interceptors[action] = intercept.New(win, st, action,
			func() { mailbox.Push(action) },
			intercept.WithLogger(logger))
	}
	interceptors[keybind.ActionClearBuffer].SetActive(true)
	defer func() {
		for _, it := range interceptors {
			it.Close()
		}
	}()

	updates := make(chan settings.Snapshot, 16)
	sub := st.Subscribe(func(snap settings.Snapshot) {
		select {
		case updates <- snap:
		default:
			logger.Warn().Msg("settings update dropped; TUI is behind")
		}
	})
	defer sub.Unsubscribe()

	watcher, err := settings.Watch(st, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("config file watching disabled")
	} else {
		defer watcher.Close()
	}

	profDir := filepath.Join(cfgDir, cfg.Profiles.Dir)
	profiles, err := profile.List(profDir)
	if err != nil {
		logger.Warn().Err(err).Msg("listing profiles failed; using builtins")
		profiles = profile.Builtins()
	}

	if err := activity.Append(store.Entry{Kind: store.KindSessionStart}); err != nil {
		logger.Warn().Err(err).Msg("writing session start failed")
	}

	model := tui.New(tui.Deps{
		Window:       win,
		Settings:     st,
		Recorder:     rec,
		Mailbox:      mailbox,
		Interceptors: interceptors,
		Activity:     activity,
		Hook:         notifier.Hook,
		Updates:      updates,
		Profiles:     profiles,
		ProfileDir:   profDir,
	})

	registerQuitHandler()
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, runErr := program.Run()

	end := store.Entry{Kind: store.KindSessionEnd}
	if err := activity.Append(end); err != nil {
		logger.Warn().Err(err).Msg("writing session end failed")
	}
	notifier.Hook(end)

	if runErr != nil {
		return fmt.Errorf("tui: %w", runErr)
	}
	return nil
}
