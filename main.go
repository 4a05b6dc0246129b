// kebechet-dispatcher is the entrypoint of the Kebechet bot container. It
// reads its configuration from the environment, provisions the bot's SSH key
// on request, and hands control to the external kebechet CLI, exiting with
// that tool's exit code.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kebechet/dispatcher/internal/config"
	"kebechet/dispatcher/internal/dispatch"
	"kebechet/dispatcher/internal/execx"
	"kebechet/dispatcher/internal/preflight"
	"kebechet/dispatcher/internal/sshkeys"
)

// Overridden at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "kebechet-dispatcher",
	Short: "Launch the kebechet CLI subcommand selected by the environment",
	Long: `kebechet-dispatcher reads KEBECHET_SUBCOMMAND and the operation's
arguments from the environment and hands off to kebechet-cli. It exits with
the CLI's exit code, or with status 1 when the subcommand is unrecognized.`,
	RunE:          runDispatch,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var provisionSSHCmd = &cobra.Command{
	Use:   "provision-ssh",
	Short: "Generate the bot account's SSH keypair if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		generated, err := sshkeys.Ensure(cmd.Context(), execx.RunCtx, sshkeys.Options{Home: cfg.SSHHome})
		if err != nil {
			return err
		}
		if !generated {
			log.WithField("key", sshkeys.KeyPath(cfg.SSHHome)).Info("ssh keypair already present")
		}
		return nil
	},
}

var preflightCmd = &cobra.Command{
	Use:   "preflight",
	Short: "Check the container environment without dispatching",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return preflight.Check(cfg)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the dispatcher version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.AddCommand(provisionSSHCmd, preflightCmd, versionCmd)
	_ = godotenv.Load()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warnf("invalid log level %s, defaulting to info", cfg.LogLevel)
	}
	return cfg, nil
}

func runDispatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	res, err := dispatch.Default().Dispatch(context.Background(), cfg, execx.RunCtx)
	if err != nil {
		return err
	}
	if res.Code != 0 {
		// Propagate the CLI's exit code as our own; nothing runs after this.
		os.Exit(res.Code)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, dispatch.ErrInvalidConfiguration) {
			log.Error(err)
		} else {
			fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		}
		os.Exit(1)
	}
}
