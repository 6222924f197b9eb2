package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	if GetLanguage() != "python" {
		t.Errorf("language = %q", GetLanguage())
	}
	if GetMaxMessageLength() != 4096 {
		t.Errorf("max_message_length = %d", GetMaxMessageLength())
	}
	if GetMaxInputTokens() != 40000 {
		t.Errorf("max_input_tokens = %d", GetMaxInputTokens())
	}
	if GetLineBoundedQuotes() || GetPreserveFences() {
		t.Error("boolean options should default to false")
	}
	if GetLogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v", GetLogLevel())
	}
}

func TestInitReadsEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("MIXFENCE_LANGUAGE", "py")
	t.Setenv("MIXFENCE_LOG_LEVEL", "debug")
	t.Setenv("HOME", t.TempDir())
	chdir(t, t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if GetLanguage() != "py" || C.Language != "py" {
		t.Errorf("language = %q / %q", GetLanguage(), C.Language)
	}
	if GetLogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v", GetLogLevel())
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandTilde("~/x"); got != filepath.Join(home, "x") {
		t.Errorf("expandTilde(~/x) = %q", got)
	}
	if got := expandTilde("/abs"); got != "/abs" {
		t.Errorf("expandTilde(/abs) = %q", got)
	}
}

func TestInitReadsConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "language: py3\npreserve_fences: true\nmax_message_length: 1000\n"
	if err := os.WriteFile(filepath.Join(dir, "mixfence.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if GetLanguage() != "py3" {
		t.Errorf("language = %q", GetLanguage())
	}
	if !GetPreserveFences() {
		t.Error("preserve_fences should be true")
	}
	if GetMaxMessageLength() != 1000 || C.MaxMessageLength != 1000 {
		t.Errorf("max_message_length = %d / %d", GetMaxMessageLength(), C.MaxMessageLength)
	}
	if GetMaxInputTokens() != 40000 {
		t.Errorf("max_input_tokens = %d", GetMaxInputTokens())
	}
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
