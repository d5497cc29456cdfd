// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires stored credentials.
	// Commands like help, version, register, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, base URL, credentials).
	// svc is nil unless NeedsAuth() is true or the command implements
	// ServiceUser.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// ServiceUser is implemented by commands that talk to the server without
// stored credentials (register, login).
type ServiceUser interface {
	NeedsService() bool
}

// WantsService reports whether the dispatcher must build a service for c.
func WantsService(c Command) bool {
	if c.NeedsAuth() {
		return true
	}
	su, ok := c.(ServiceUser)
	return ok && su.NeedsService()
}
