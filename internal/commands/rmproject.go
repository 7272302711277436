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
	Register(&RmProjectCmd{})
}

// RmProjectCmd implements the rmproject command. Deletion asks for
// confirmation unless --force is set.
type RmProjectCmd struct{}

func (c *RmProjectCmd) Name() string      { return "rmproject" }
func (c *RmProjectCmd) Aliases() []string { return nil }
func (c *RmProjectCmd) Synopsis() string  { return "Delete a project" }
func (c *RmProjectCmd) Usage() string     { return "taskdeck rmproject [common flags] <name-or-id>" }
func (c *RmProjectCmd) NeedsAuth() bool   { return true }

func (c *RmProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmProjectCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
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

	st.DeleteProject(ctx, p.ID)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
