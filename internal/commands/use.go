package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/state"
)

func init() {
	Register(&UseCmd{})
}

// UseCmd implements the use command: it selects the project that task
// commands operate on. The selection persists across invocations.
type UseCmd struct{}

func (c *UseCmd) Name() string      { return "use" }
func (c *UseCmd) Aliases() []string { return []string{"select"} }
func (c *UseCmd) Synopsis() string  { return "Select a project" }
func (c *UseCmd) Usage() string     { return "taskdeck use [common flags] <name-or-id>" }
func (c *UseCmd) NeedsAuth() bool   { return true }

func (c *UseCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UseCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		fmt.Fprintln(errOut, "error: project name or id required")
		return exitcode.UserError
	}

	if code, ok := syncProjects(ctx, st, errOut); !ok {
		return code
	}

	p, err := resolveProject(st, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	st.SelectProject(ctx, p.ID)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
