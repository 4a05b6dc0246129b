package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by the dispatcher. The first four are
// the deployment contract; the rest have defaults and only matter when a
// deployment wants to override them.
const (
	EnvSubcommand  = "KEBECHET_SUBCOMMAND"
	EnvRepoURL     = "REPO_URL"
	EnvServiceName = "SERVICE_NAME"
	EnvAnalysisID  = "ANALYSIS_ID"

	EnvCLIPath      = "KEBECHET_CLI_PATH"
	EnvLogLevel     = "KEBECHET_LOG_LEVEL"
	EnvDefaultsFile = "KEBECHET_DISPATCHER_CONFIG"
	EnvSSHHome      = "KEBECHET_SSH_HOME"
)

const defaultCLIPath = "kebechet-cli"

// Config is the dispatcher's entire input, populated once at startup.
// Operation arguments are carried verbatim: empty values are forwarded
// as empty strings rather than rejected here.
type Config struct {
	Subcommand  string
	RepoURL     string
	ServiceName string
	AnalysisID  string

	CLIPath  string
	LogLevel string
	SSHHome  string
}

// Defaults is the optional YAML file named by KEBECHET_DISPATCHER_CONFIG.
// Its env map supplies values only for variables the real environment
// leaves unset.
type Defaults struct {
	Env map[string]string `yaml:"env"`
}

// FromEnv builds a Config from the process environment, consulting the
// optional defaults file for unset variables. It never validates the
// subcommand or its arguments; that is the dispatcher's job.
func FromEnv() (Config, error) {
	defaults, err := readDefaults()
	if err != nil {
		return Config{}, err
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return defaults.Env[key]
	}

	cfg := Config{
		Subcommand:  lookup(EnvSubcommand),
		RepoURL:     lookup(EnvRepoURL),
		ServiceName: lookup(EnvServiceName),
		AnalysisID:  lookup(EnvAnalysisID),
		CLIPath:     lookup(EnvCLIPath),
		LogLevel:    lookup(EnvLogLevel),
		SSHHome:     lookup(EnvSSHHome),
	}
	if cfg.CLIPath == "" {
		cfg.CLIPath = defaultCLIPath
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SSHHome == "" {
		cfg.SSHHome, _ = os.UserHomeDir()
	}
	return cfg, nil
}

func readDefaults() (Defaults, error) {
	var d Defaults
	d.Env = map[string]string{}
	path := strings.TrimSpace(os.Getenv(EnvDefaultsFile))
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("read defaults file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	if d.Env == nil {
		d.Env = map[string]string{}
	}
	return d, nil
}
