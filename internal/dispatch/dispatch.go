package dispatch

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"kebechet/dispatcher/internal/config"
	"kebechet/dispatcher/internal/execx"
)

// Recognized subcommand selectors.
const (
	SubcommandRunURL     = "run-url"
	SubcommandRunResults = "run-results"
)

// ErrInvalidConfiguration is returned when the selector is unset, empty, or
// not a registered subcommand. It is the dispatcher's only error category;
// argument values are forwarded unvalidated.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ArgsFunc builds the positional arguments a subcommand forwards to the
// external CLI, in their fixed order. The selector itself is prepended by
// the registry.
type ArgsFunc func(cfg config.Config) []string

// Registry maps selector names to their argument builders.
type Registry struct {
	subcommands map[string]ArgsFunc
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{subcommands: make(map[string]ArgsFunc)}
}

// Register sets the argument builder for name. It panics if name already
// exists.
func (r *Registry) Register(name string, fn ArgsFunc) {
	if _, exists := r.subcommands[name]; exists {
		panic(fmt.Sprintf("subcommand %s already registered", name))
	}
	r.subcommands[name] = fn
}

// Default returns a registry holding the two deployment subcommands.
func Default() *Registry {
	r := NewRegistry()
	r.Register(SubcommandRunURL, func(cfg config.Config) []string {
		return []string{cfg.RepoURL, cfg.ServiceName}
	})
	r.Register(SubcommandRunResults, func(cfg config.Config) []string {
		return []string{cfg.RepoURL, cfg.ServiceName, cfg.AnalysisID}
	})
	return r
}

// Args resolves cfg.Subcommand against the registry and returns the full
// argument vector for the external CLI, selector first. An unrecognized or
// empty selector yields ErrInvalidConfiguration.
func (r *Registry) Args(cfg config.Config) ([]string, error) {
	fn, ok := r.subcommands[cfg.Subcommand]
	if !ok {
		return nil, fmt.Errorf("%w: %s=%q is not a recognized subcommand",
			ErrInvalidConfiguration, config.EnvSubcommand, cfg.Subcommand)
	}
	return append([]string{cfg.Subcommand}, fn(cfg)...), nil
}

// Dispatch validates the selector and hands control to the external CLI via
// run. It performs at most one action: either the subprocess is launched and
// its Result returned, or ErrInvalidConfiguration is returned with no side
// effects. The caller owns turning the Result's exit code into its own.
func (r *Registry) Dispatch(ctx context.Context, cfg config.Config, run execx.RunFunc) (execx.Result, error) {
	args, err := r.Args(cfg)
	if err != nil {
		return execx.Result{}, err
	}
	log.WithFields(log.Fields{"cli": cfg.CLIPath, "subcommand": cfg.Subcommand}).Info("handing off")
	return run(ctx, cfg.CLIPath, args...), nil
}
