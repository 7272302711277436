package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/state"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: it flips a task's completion state.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion state" }
func (c *DoneCmd) Usage() string     { return "taskdeck done [common flags] <task-id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	id, err := parseTaskID(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if code, ok := syncSelection(ctx, st, errOut); !ok {
		return code
	}

	st.ToggleTask(ctx, id)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
