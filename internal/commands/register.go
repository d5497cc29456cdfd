package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/service"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	email     string
	firstName string
	lastName  string
	password  string
}

// SetFields sets the registration fields (for testing).
func (c *RegisterCmd) SetFields(email, firstName, lastName, password string) {
	c.email, c.firstName, c.lastName, c.password = email, firstName, lastName, password
}

func (c *RegisterCmd) Name() string       { return "register" }
func (c *RegisterCmd) Aliases() []string  { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string   { return "Create a user account" }
func (c *RegisterCmd) NeedsAuth() bool    { return false }
func (c *RegisterCmd) NeedsService() bool { return true }
func (c *RegisterCmd) Usage() string {
	return "todoctl register --email <email> --first-name <name> --last-name <name> --password <password>"
}

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.firstName, "first-name", "", "")
	fs.StringVar(&c.lastName, "last-name", "", "")
	fs.StringVar(&c.password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	var missing []string
	for _, f := range []struct{ flag, value string }{
		{"--email", c.email},
		{"--first-name", c.firstName},
		{"--last-name", c.lastName},
		{"--password", c.password},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.flag)
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(errOut, "error: missing required flags: %s\n", strings.Join(missing, ", "))
		return exitcode.UserError
	}

	err := svc.Register(ctx, service.Registration{
		Email:     c.email,
		FirstName: c.firstName,
		LastName:  c.lastName,
		Password:  c.password,
	})
	if err != nil {
		return reportError(errOut, err)
	}

	printOK(out, cfg.Quiet)
	return exitcode.Success
}
