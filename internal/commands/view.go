package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todoctl/internal/config"
	"todoctl/internal/exitcode"
	"todoctl/internal/output"
	"todoctl/internal/service"
)

func init() {
	Register(&ViewCmd{})
}

// ViewCmd implements the view command.
type ViewCmd struct{}

func (c *ViewCmd) Name() string      { return "view" }
func (c *ViewCmd) Aliases() []string { return []string{"list", "show"} }
func (c *ViewCmd) Synopsis() string  { return "List the items of a list" }
func (c *ViewCmd) Usage() string     { return "todoctl view [common flags] <list-id>" }
func (c *ViewCmd) NeedsAuth() bool   { return true }

func (c *ViewCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ViewCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	listID, rest, err := ParseListID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(rest) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", rest[0])
		return exitcode.UserError
	}

	items, err := svc.ListItems(ctx, listID)
	if err != nil {
		return reportError(errOut, err)
	}

	// Print list section (even if empty)
	output.FormatListHeader(out, listID)
	for _, item := range items {
		output.FormatItem(out, item)
	}
	if len(items) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no items")
	}
	return exitcode.Success
}
