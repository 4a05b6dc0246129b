// Package preflight checks that the container has everything the dispatcher
// will need before the deployment flips it on.
package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"kebechet/dispatcher/internal/config"
	"kebechet/dispatcher/internal/dispatch"
	"kebechet/dispatcher/internal/sshkeys"
)

// Check verifies the external CLI is resolvable and reports on the SSH key
// and subcommand configuration. Findings go to stdout/stderr in a
// line-per-check format; a missing CLI is the only hard failure.
func Check(cfg config.Config) error {
	ok := true
	if path, err := exec.LookPath(cfg.CLIPath); err != nil {
		fmt.Fprintf(os.Stderr, "[preflight] %s not found on PATH\n", cfg.CLIPath)
		ok = false
	} else {
		fmt.Printf("[preflight] cli: OK (%s)\n", path)
	}

	if cfg.SSHHome == "" {
		fmt.Fprintln(os.Stderr, "[preflight] cannot resolve home directory to check SSH key")
	} else {
		key := sshkeys.KeyPath(cfg.SSHHome)
		if st, err := os.Stat(key); err == nil && !st.IsDir() {
			fmt.Printf("[preflight] ssh key: OK (%s)\n", key)
		} else {
			fmt.Fprintf(os.Stderr, "[preflight] no ssh key at %s (run provision-ssh)\n", key)
		}
	}

	switch cfg.Subcommand {
	case dispatch.SubcommandRunURL, dispatch.SubcommandRunResults:
		fmt.Printf("[preflight] subcommand: OK (%s)\n", cfg.Subcommand)
	case "":
		fmt.Fprintf(os.Stderr, "[preflight] %s not set\n", config.EnvSubcommand)
	default:
		fmt.Fprintf(os.Stderr, "[preflight] %s=%q is not a recognized subcommand\n", config.EnvSubcommand, cfg.Subcommand)
	}

	if !ok {
		return fmt.Errorf("preflight checks failed")
	}
	return nil
}
