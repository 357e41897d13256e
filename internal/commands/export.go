package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/task"
	"todo/internal/transfer"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	all    bool
	output string
}

// SetFormat sets the --format flag (for testing).
func (c *ExportCmd) SetFormat(f string) {
	c.format = f
}

// SetAll sets the --all flag (for testing).
func (c *ExportCmd) SetAll(all bool) {
	c.all = all
}

// SetOutput sets the --output flag (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Write tasks as JSON or YAML" }
func (c *ExportCmd) Usage() string {
	return "todo export [--format json|yaml] [--all] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	format, err := c.resolveFormat()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx, service.Filter{All: c.all})
	if err != nil {
		return reportError(errOut, err)
	}

	if c.output == "" {
		if err := transfer.Encode(out, format, tasks); err != nil {
			return reportError(errOut, err)
		}
		return exitcode.Success
	}

	if err := writeExport(c.output, format, tasks); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	cfg.Log().Debug("exported tasks", "count", len(tasks), "path", c.output, "format", format)
	if !cfg.Quiet {
		fmt.Fprintf(out, "exported %d\n", len(tasks))
	}
	return exitcode.Success
}

// resolveFormat honours --format, then the --output extension, then JSON.
func (c *ExportCmd) resolveFormat() (transfer.Format, error) {
	if c.format != "" {
		return transfer.ParseFormat(c.format)
	}
	if c.output != "" {
		if f, err := transfer.FormatFromPath(c.output); err == nil {
			return f, nil
		}
	}
	return transfer.JSON, nil
}

func writeExport(path string, format transfer.Format, tasks []task.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := transfer.Encode(f, format, tasks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
