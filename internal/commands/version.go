package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

// Version is the application version. Set at build time with
// -ldflags "-X todoctl/internal/commands.Version=...". When empty, the
// module version from the build info is used.
var Version = "0.1.0"

func init() {
	Register(&VersionCmd{})
}

// VersionCmd implements the version command.
type VersionCmd struct {
	verbose bool
}

// SetVerbose sets the verbose flag (for testing).
func (c *VersionCmd) SetVerbose(verbose bool) {
	c.verbose = verbose
}

func (c *VersionCmd) Name() string      { return "version" }
func (c *VersionCmd) Aliases() []string { return nil }
func (c *VersionCmd) Synopsis() string  { return "Print version and, with --verbose, the active settings" }
func (c *VersionCmd) Usage() string     { return "todoctl version [--verbose]" }
func (c *VersionCmd) NeedsAuth() bool   { return false }

func (c *VersionCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
}

func (c *VersionCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprintf(out, "todoctl %s\n", resolveVersion(Version))
	if !c.verbose {
		return exitcode.Success
	}

	user := "(not logged in)"
	if cfg.HasCredentials() {
		user = cfg.Username
	}
	fmt.Fprintf(out, "go:       %s\n", runtime.Version())
	fmt.Fprintf(out, "base url: %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "config:   %s\n", cfg.FilePath())
	fmt.Fprintf(out, "user:     %s\n", user)
	return exitcode.Success
}

// resolveVersion returns v, or the main module version from the build
// info when v is empty.
func resolveVersion(v string) string {
	if v != "" {
		return v
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}
