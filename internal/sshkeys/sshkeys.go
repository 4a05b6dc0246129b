// Package sshkeys provisions the bot account's SSH keypair inside the
// container, replacing the out-of-band playbook step the deployment used to
// run before the dispatcher started.
package sshkeys

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"kebechet/dispatcher/internal/execx"
)

// Options controls key generation. Zero values fall back to the deployment
// defaults (4096-bit RSA, kebechet bot comment).
type Options struct {
	Home    string
	Comment string
	Bits    int
}

const (
	defaultBits    = 4096
	defaultComment = "kebechet-bot"
)

// KeyPath returns where the bot's private key lives under home.
func KeyPath(home string) string {
	return filepath.Join(home, ".ssh", "id_rsa")
}

// Ensure makes sure a private key exists at KeyPath(opts.Home). An existing
// key is never touched. When the key is missing, the .ssh directory is
// created with 0700 and ssh-keygen is run through the provided runner with
// an empty passphrase. The returned bool reports whether a key was generated
// by this call.
func Ensure(ctx context.Context, run execx.RunFunc, opts Options) (bool, error) {
	if opts.Home == "" {
		return false, fmt.Errorf("ssh key provisioning: home directory not set")
	}
	if opts.Bits == 0 {
		opts.Bits = defaultBits
	}
	if opts.Comment == "" {
		opts.Comment = defaultComment
	}

	keyPath := KeyPath(opts.Home)
	if st, err := os.Stat(keyPath); err == nil && !st.IsDir() {
		log.WithField("key", keyPath).Debug("ssh key already present")
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(keyPath), 0o700); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(keyPath), err)
	}

	res := run(ctx, "ssh-keygen",
		"-t", "rsa",
		"-b", fmt.Sprintf("%d", opts.Bits),
		"-N", "",
		"-q",
		"-C", opts.Comment,
		"-f", keyPath,
	)
	if res.Code != 0 {
		if res.Err != nil {
			return false, fmt.Errorf("ssh-keygen exited with code %d: %w", res.Code, res.Err)
		}
		return false, fmt.Errorf("ssh-keygen exited with code %d", res.Code)
	}
	log.WithField("key", keyPath).Info("generated ssh keypair")
	return true, nil
}
