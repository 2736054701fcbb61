// Package cli implements the teamfinder terminal client: a cobra command
// tree with an interactive shell and one-shot subcommands.
//
// The shell is the terminal stand-in for the web front-end. Every load
// builds a fresh auth.Resolver and router over the shared local session
// store; logging out ends the load and the shell starts a new one, which
// re-runs the boot-time authentication check.
package cli
