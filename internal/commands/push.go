package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"todo/internal/backend/googletasks"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
)

// pushConcurrency bounds in-flight insert requests.
const pushConcurrency = 4

// ErrNotLoggedIn is returned when push runs without stored credentials.
var ErrNotLoggedIn = errors.New("not logged in (run: todo login)")

// RemoteFactory opens the remote that push copies tasks to.
type RemoteFactory func(ctx context.Context, cfg *config.Config) (service.Remote, error)

var remoteFactory RemoteFactory = googleRemote

// SetRemoteFactory replaces the remote used by push and returns a function
// that restores the previous one (for testing).
func SetRemoteFactory(f RemoteFactory) (restore func()) {
	prev := remoteFactory
	remoteFactory = f
	return func() { remoteFactory = prev }
}

func googleRemote(ctx context.Context, cfg *config.Config) (service.Remote, error) {
	if !cfg.HasOAuthClient() || !cfg.HasToken() {
		return nil, ErrNotLoggedIn
	}
	client, err := googletasks.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return client, nil
}

func init() {
	Register(&PushCmd{})
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	create   bool
	all      bool
}

// SetListName sets the --list flag (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetCreate sets the --create flag (for testing).
func (c *PushCmd) SetCreate(create bool) {
	c.create = create
}

// SetAll sets the --all flag (for testing).
func (c *PushCmd) SetAll(all bool) {
	c.all = all
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>] [--create] [--all]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.BoolVar(&c.create, "create", false, "")
	fs.BoolVar(&c.all, "all", false, "")
	fs.BoolVar(&c.all, "a", false, "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.create && c.listName == "" {
		fmt.Fprintln(errOut, "error: --create requires --list")
		return exitcode.UserError
	}

	tasks, err := svc.ListTasks(ctx, service.Filter{All: c.all})
	if err != nil {
		return reportError(errOut, err)
	}
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks to push")
		}
		return exitcode.Success
	}

	remote, err := remoteFactory(ctx, cfg)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	list, err := c.targetList(ctx, remote)
	if err != nil {
		return reportRemoteError(errOut, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pushConcurrency)
	for _, t := range tasks {
		g.Go(func() error {
			if err := remote.InsertTask(gctx, list.ID, t); err != nil {
				return fmt.Errorf("task %d: %w", t.ID, err)
			}
			cfg.Log().Debug("pushed task", "id", t.ID, "list", list.Title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return reportRemoteError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "pushed %d to %s\n", len(tasks), list.Title)
	}
	return exitcode.Success
}

// targetList resolves --list, creating the list when --create is set and
// no list has that name.
func (c *PushCmd) targetList(ctx context.Context, remote service.Remote) (service.RemoteList, error) {
	list, err := remote.ResolveList(ctx, c.listName)
	if err == nil {
		return list, nil
	}
	if c.create && errors.Is(err, service.ErrListNotFound) {
		return remote.CreateList(ctx, c.listName)
	}
	return service.RemoteList{}, err
}

// reportRemoteError prints err and returns the matching exit code.
func reportRemoteError(errOut io.Writer, err error) int {
	switch {
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, googletasks.ErrAuth):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrListNotFound), errors.Is(err, service.ErrAmbiguousList):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
