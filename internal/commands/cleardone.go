package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/state"
)

func init() {
	Register(&ClearDoneCmd{})
}

// ClearDoneCmd implements the cleardone command: it deletes every
// completed task of the selected project after a confirmation naming the
// count.
type ClearDoneCmd struct{}

func (c *ClearDoneCmd) Name() string      { return "cleardone" }
func (c *ClearDoneCmd) Aliases() []string { return []string{"deletecompleted"} }
func (c *ClearDoneCmd) Synopsis() string  { return "Delete all completed tasks" }
func (c *ClearDoneCmd) Usage() string     { return "taskdeck cleardone [common flags]" }
func (c *ClearDoneCmd) NeedsAuth() bool   { return true }

func (c *ClearDoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearDoneCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	if code, ok := syncSelection(ctx, st, errOut); !ok {
		return code
	}

	st.DeleteCompleted(ctx)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
