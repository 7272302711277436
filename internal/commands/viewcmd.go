package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/state"
	"taskdeck/internal/view"
)

func init() {
	Register(&ViewCmd{})
	Register(&ClearFiltersCmd{})
}

// ViewCmd implements the view command: it stores search/filter/sort
// criteria applied by subsequent list invocations. Criteria are client
// state only and are never sent to the gateway.
type ViewCmd struct {
	search string
	filter string
	sort   string
}

// SetCriteriaFlags sets the criteria flags (for testing).
func (c *ViewCmd) SetCriteriaFlags(search, filter, sort string) {
	c.search = search
	c.filter = filter
	c.sort = sort
}

func (c *ViewCmd) Name() string      { return "view" }
func (c *ViewCmd) Aliases() []string { return nil }
func (c *ViewCmd) Synopsis() string  { return "Set the task view criteria" }
func (c *ViewCmd) Usage() string {
	return "taskdeck view [--search <q>] [--filter all|active|done] [--sort newest|oldest|title]"
}
func (c *ViewCmd) NeedsAuth() bool { return false }

func (c *ViewCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ViewCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	criteria := st.Criteria()
	if c.search != "" {
		criteria.Query = c.search
	}
	if c.filter != "" {
		f, err := view.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		criteria.Filter = f
	}
	if c.sort != "" {
		s, err := view.ParseSort(c.sort)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		criteria.Sort = s
	}

	st.SetCriteria(criteria)
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// ClearFiltersCmd implements the clearfilters command: it resets query,
// filter and sort to their defaults.
type ClearFiltersCmd struct{}

func (c *ClearFiltersCmd) Name() string      { return "clearfilters" }
func (c *ClearFiltersCmd) Aliases() []string { return nil }
func (c *ClearFiltersCmd) Synopsis() string  { return "Reset the task view criteria" }
func (c *ClearFiltersCmd) Usage() string     { return "taskdeck clearfilters [common flags]" }
func (c *ClearFiltersCmd) NeedsAuth() bool   { return false }

func (c *ClearFiltersCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ClearFiltersCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	st.ClearCriteria()
	printOK(st, cfg.Quiet, out)
	return exitcode.Success
}
