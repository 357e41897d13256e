package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&PrioCmd{})
}

// PrioCmd implements the prio command.
type PrioCmd struct{}

func (c *PrioCmd) Name() string      { return "prio" }
func (c *PrioCmd) Aliases() []string { return []string{"priority"} }
func (c *PrioCmd) Synopsis() string  { return "Change the priority of a task" }
func (c *PrioCmd) Usage() string     { return "todo prio <id> <low|medium|high>" }
func (c *PrioCmd) NeedsStore() bool  { return true }

func (c *PrioCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PrioCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(errOut, "usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	id, err := ParseTaskID(args[0])
	if err != nil {
		return reportIDError(errOut, err)
	}

	p, err := task.ParsePriority(args[1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := svc.SetPriority(ctx, id, p); err != nil {
		return reportError(errOut, err)
	}

	cfg.Log().Debug("changed priority", "id", id, "priority", p)
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
