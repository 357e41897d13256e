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
	Register(&ImportCmd{})
}

// ImportCmd implements the import command.
type ImportCmd struct {
	format string
}

// SetFormat sets the --format flag (for testing).
func (c *ImportCmd) SetFormat(f string) {
	c.format = f
}

func (c *ImportCmd) Name() string      { return "import" }
func (c *ImportCmd) Aliases() []string { return nil }
func (c *ImportCmd) Synopsis() string  { return "Load tasks from a JSON or YAML file" }
func (c *ImportCmd) Usage() string     { return "todo import [--format json|yaml] <file>" }
func (c *ImportCmd) NeedsStore() bool  { return true }

func (c *ImportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "", "")
	fs.StringVar(&c.format, "f", "", "")
}

func (c *ImportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: file required")
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}
	path := args[0]

	var (
		format transfer.Format
		err    error
	)
	if c.format != "" {
		format, err = transfer.ParseFormat(c.format)
	} else {
		format, err = transfer.FormatFromPath(path)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks, err := readImport(path, format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s: %v\n", path, err)
		return exitcode.UserError
	}

	// The whole document is valid at this point; the store applies it
	// all-or-nothing.
	if _, err := svc.ImportTasks(ctx, tasks); err != nil {
		return reportError(errOut, err)
	}

	cfg.Log().Debug("imported tasks", "count", len(tasks), "path", path, "format", format)
	if !cfg.Quiet {
		fmt.Fprintf(out, "imported %d\n", len(tasks))
	}
	return exitcode.Success
}

func readImport(path string, format transfer.Format) ([]task.Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return transfer.Decode(f, format)
}
