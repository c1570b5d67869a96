package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOpen_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	log, closer, err := Open(dir, "debug")
	if err != nil {
		t.Fatal(err)
	}

	log.Info().Str("combo", "ctrl+w").Msg("intercepted")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "keywarden.log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"combo":"ctrl+w"`) {
		t.Errorf("log file missing structured field: %s", data)
	}
}

func TestOpen_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	_, closer, err := Open(dir, "info")
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	if _, err := os.Stat(filepath.Join(dir, "keywarden.log")); err != nil {
		t.Errorf("expected log file to exist: %v", err)
	}
}

func TestOpen_BadLevel(t *testing.T) {
	if _, _, err := Open(t.TempDir(), "shouty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestOpen_LevelFiltering(t *testing.T) {
	dir := t.TempDir()
	log, closer, err := Open(dir, "warn")
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Msg("too quiet")
	log.Warn().Msg("loud enough")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, "keywarden.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "too quiet") {
		t.Error("debug line should be filtered at warn level")
	}
	if !strings.Contains(string(data), "loud enough") {
		t.Error("warn line missing")
	}
}

func TestOpen_EnvOverride(t *testing.T) {
	t.Setenv("KEYWARDEN_LOG_LEVEL", "error")
	dir := t.TempDir()
	log, closer, err := Open(dir, "debug")
	if err != nil {
		t.Fatal(err)
	}
	log.Info().Msg("hidden by env override")
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, "keywarden.log"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "hidden by env override") {
		t.Error("env override should raise the level to error")
	}
}
