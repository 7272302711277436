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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskdeck help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskdeck                                        List tasks of the selected project
  taskdeck list [--search <q>] [--filter all|active|done] [--sort newest|oldest|title]
  taskdeck add [common flags] <title...>
  taskdeck done [common flags] <task-id>
  taskdeck rename [common flags] <task-id> <title...>
  taskdeck rm [common flags] <task-id>
  taskdeck doneall [common flags]                 Mark all tasks done
  taskdeck cleardone [common flags]               Delete all completed tasks
  taskdeck projects [common flags]
  taskdeck addproject [common flags] <name...>
  taskdeck rmproject [common flags] <name-or-id>
  taskdeck use [common flags] <name-or-id>        Select a project
  taskdeck view [--search <q>] [--filter <f>] [--sort <s>]
  taskdeck clearfilters [common flags]
  taskdeck signup [--password <pw>] <email>
  taskdeck login [--password <pw>] <email>
  taskdeck logout [common flags]
  taskdeck help
  taskdeck version

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override gateway base URL (or TASKDECK_SERVER)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --force          Skip confirmation prompts
`
