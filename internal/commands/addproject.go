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
	Register(&AddProjectCmd{})
}

// AddProjectCmd implements the addproject command. The new project becomes
// the selection.
type AddProjectCmd struct{}

func (c *AddProjectCmd) Name() string      { return "addproject" }
func (c *AddProjectCmd) Aliases() []string { return []string{"newproject"} }
func (c *AddProjectCmd) Synopsis() string  { return "Create a project" }
func (c *AddProjectCmd) Usage() string     { return "taskdeck addproject [common flags] <name...>" }
func (c *AddProjectCmd) NeedsAuth() bool   { return true }

func (c *AddProjectCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddProjectCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: project name required")
		return exitcode.UserError
	}

	st.CreateProject(ctx, name)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
