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
	Register(&DoneAllCmd{})
}

// DoneAllCmd implements the doneall command: it marks every not-done task
// of the selected project done, as one concurrent batch followed by a
// single refresh.
type DoneAllCmd struct{}

func (c *DoneAllCmd) Name() string      { return "doneall" }
func (c *DoneAllCmd) Aliases() []string { return []string{"markalldone"} }
func (c *DoneAllCmd) Synopsis() string  { return "Mark all tasks done" }
func (c *DoneAllCmd) Usage() string     { return "taskdeck doneall [common flags]" }
func (c *DoneAllCmd) NeedsAuth() bool   { return true }

func (c *DoneAllCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneAllCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	if code, ok := syncSelection(ctx, st, errOut); !ok {
		return code
	}

	st.MarkAllDone(ctx)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
