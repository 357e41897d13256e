package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  todo                                               List open tasks
  todo list [common flags] [--all] [--priority <p>] [--by-priority]
  todo add [common flags] [--priority <p>] <title...>
  todo create [common flags] [--priority <p>] <title...>
  todo done [common flags] <id...>
  todo undo [common flags] <id>
  todo prio [common flags] <id> <low|medium|high>
  todo rm [common flags] <id...>
  todo clear [common flags]
  todo show [common flags] <id>
  todo export [common flags] [--format json|yaml] [--all] [--output <file>]
  todo import [common flags] [--format json|yaml] <file>
  todo push [common flags] [--list <list-name>] [--create] [--all]
  todo login [common flags]
  todo logout [common flags]
  todo help
  todo version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TODO_DB                 Database path (default <config dir>/todo.db)
  TODO_DEFAULT_PRIORITY   Priority for new tasks (default medium)
`
