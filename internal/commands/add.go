package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority string
}

// SetPriority sets the priority flag (for testing).
func (c *AddCmd) SetPriority(p string) {
	c.priority = p
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "todo add [--priority <low|medium|high>] <title...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Check for title
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	// Join args to form title
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	p, code := c.resolvePriority(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	t, err := svc.CreateTask(ctx, title, p)
	if err != nil {
		return reportError(errOut, err)
	}

	cfg.Log().Debug("added task", "id", t.ID, "priority", t.Priority)
	if !cfg.Quiet {
		fmt.Fprintf(out, "added %d\n", t.ID)
	}
	return exitcode.Success
}

// resolvePriority picks the flag value, falling back to the configured
// default.
func (c *AddCmd) resolvePriority(cfg *config.Config, errOut io.Writer) (task.Priority, int) {
	if c.priority == "" {
		p, err := cfg.DefaultPriority()
		if err != nil {
			fmt.Fprintf(errOut, "error: config: %v\n", err)
			return 0, exitcode.ConfigError
		}
		return p, exitcode.Success
	}

	p, err := task.ParsePriority(c.priority)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 0, exitcode.UserError
	}
	return p, exitcode.Success
}
