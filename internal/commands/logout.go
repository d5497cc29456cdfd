package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&LogoutCmd{})
}

// LogoutCmd implements the logout command. Only credentials stored in
// config.yaml are removed; the base URL stays.
type LogoutCmd struct{}

func (c *LogoutCmd) Name() string      { return "logout" }
func (c *LogoutCmd) Aliases() []string { return nil }
func (c *LogoutCmd) Synopsis() string  { return "Remove stored credentials" }
func (c *LogoutCmd) Usage() string     { return "todoctl logout [common flags]" }
func (c *LogoutCmd) NeedsAuth() bool   { return false }

func (c *LogoutCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LogoutCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	code := c.removeStored(ctx, cfg, out, errOut)
	if code != exitcode.Success {
		return code
	}

	// Environment credentials keep authenticating after the file is cleared
	if !cfg.Quiet && (cfg.EnvUsername != "" || cfg.EnvPassword != "") {
		fmt.Fprintf(errOut, "note: %s/%s are still set in the environment\n",
			config.EnvUsername, config.EnvPassword)
	}
	return exitcode.Success
}

func (c *LogoutCmd) removeStored(ctx context.Context, cfg *config.Config, out, errOut io.Writer) int {
	f, err := cfg.ReadFile()
	if err != nil || f.Username == "" {
		if !cfg.Quiet {
			fmt.Fprintln(out, "not logged in")
		}
		return exitcode.Success
	}

	if err := cfg.RemoveCredentials(); err != nil {
		fmt.Fprintf(errOut, "error: failed to remove credentials: %v\n", err)
		return exitcode.AuthError
	}
	zerolog.Ctx(ctx).Debug().Str("user", f.Username).Str("config", cfg.FilePath()).Msg("credentials removed")

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
