package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. Credentials are checked against
// the server before they are written to the config file.
type LoginCmd struct {
	user     string
	password string
}

// SetCredentials sets the login credentials (for testing).
func (c *LoginCmd) SetCredentials(user, password string) {
	c.user, c.password = user, password
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Verify and store credentials" }
func (c *LoginCmd) Usage() string      { return "todoctl login --user <email> --password <password>" }
func (c *LoginCmd) NeedsAuth() bool    { return false }
func (c *LoginCmd) NeedsService() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.StringVar(&c.user, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Fall back to TODOCTL_USERNAME and TODOCTL_PASSWORD, never to the
	// credentials already stored in config.yaml
	user, password := c.user, c.password
	if user == "" {
		user = cfg.EnvUsername
	}
	if password == "" {
		password = cfg.EnvPassword
	}
	if user == "" || password == "" {
		fmt.Fprintln(errOut, "error: --user and --password required")
		return exitcode.UserError
	}

	if _, err := svc.Authenticate(ctx, user, password); err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			fmt.Fprintf(errOut, "error: login failed: %v\n", err)
			return exitcode.AuthError
		}
		return reportError(errOut, err)
	}

	if err := cfg.SaveCredentials(user, password); err != nil {
		fmt.Fprintf(errOut, "error: failed to save credentials: %v\n", err)
		return exitcode.AuthError
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
