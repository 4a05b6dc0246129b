// Package dispatch implements the launcher's one decision: map the
// environment-supplied selector to a registered subcommand of the external
// kebechet CLI and forward the operation's arguments in their fixed order.
// Unrecognized selectors fail before any subprocess is started.
package dispatch
