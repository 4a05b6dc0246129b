package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearDispatcherEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvSubcommand, EnvRepoURL, EnvServiceName, EnvAnalysisID,
		EnvCLIPath, EnvLogLevel, EnvDefaultsFile, EnvSSHHome,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestFromEnv(t *testing.T) {
	clearDispatcherEnv(t)
	t.Setenv(EnvSubcommand, "run-results")
	t.Setenv(EnvRepoURL, "https://github.com/org/repo")
	t.Setenv(EnvServiceName, "github")
	t.Setenv(EnvAnalysisID, "analysis-42")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Subcommand != "run-results" {
		t.Fatalf("subcommand=%q", cfg.Subcommand)
	}
	if cfg.RepoURL != "https://github.com/org/repo" || cfg.ServiceName != "github" || cfg.AnalysisID != "analysis-42" {
		t.Fatalf("operation args not read: %+v", cfg)
	}
	if cfg.CLIPath != "kebechet-cli" {
		t.Fatalf("expected default cli path, got %q", cfg.CLIPath)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel)
	}
}

func TestFromEnvLeavesValuesVerbatim(t *testing.T) {
	clearDispatcherEnv(t)
	t.Setenv(EnvSubcommand, "run-url")
	t.Setenv(EnvRepoURL, "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.RepoURL != "" || cfg.ServiceName != "" {
		t.Fatalf("empty values must stay empty: %+v", cfg)
	}
}

func TestFromEnvDefaultsFile(t *testing.T) {
	clearDispatcherEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "dispatcher.yaml")
	data := "env:\n  KEBECHET_SUBCOMMAND: run-url\n  SERVICE_NAME: github\n  KEBECHET_CLI_PATH: /opt/kebechet/bin/kebechet-cli\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDefaultsFile, path)
	t.Setenv(EnvServiceName, "gitlab") // real env wins over the file

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.Subcommand != "run-url" {
		t.Fatalf("defaults file not applied: %+v", cfg)
	}
	if cfg.ServiceName != "gitlab" {
		t.Fatalf("env should win over defaults file, got %q", cfg.ServiceName)
	}
	if cfg.CLIPath != "/opt/kebechet/bin/kebechet-cli" {
		t.Fatalf("cli path override not applied: %q", cfg.CLIPath)
	}
}

func TestFromEnvMissingDefaultsFileIgnored(t *testing.T) {
	clearDispatcherEnv(t)
	t.Setenv(EnvDefaultsFile, filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := FromEnv(); err != nil {
		t.Fatalf("missing defaults file must not fail: %v", err)
	}
}

func TestFromEnvBadDefaultsFile(t *testing.T) {
	clearDispatcherEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDefaultsFile, path)
	if _, err := FromEnv(); err == nil {
		t.Fatal("expected parse error for malformed defaults file")
	}
}
