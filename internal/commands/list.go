package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/state"
	"taskdeck/internal/view"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command: the visible task list of the
// selected project under the stored criteria, with one-shot overrides.
// Also handles `taskdeck` with no arguments.
type ListCmd struct {
	search string
	filter string
	sort   string
}

// SetCriteriaFlags sets the criteria override flags (for testing).
func (c *ListCmd) SetCriteriaFlags(search, filter, sort string) {
	c.search = search
	c.filter = filter
	c.sort = sort
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks of the selected project" }
func (c *ListCmd) Usage() string {
	return "taskdeck list [--search <q>] [--filter all|active|done] [--sort newest|oldest|title]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.filter, "filter", "", "")
	fs.StringVar(&c.sort, "sort", "", "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *state.Store, args []string, out, errOut io.Writer) int {
	criteria, code := c.mergedCriteria(st, errOut)
	if code != exitcode.Success {
		return code
	}

	if code, ok := syncProjects(ctx, st, errOut); !ok {
		return code
	}
	if st.Selected() == 0 {
		if len(st.Projects()) == 0 {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no projects found")
			}
			return exitcode.Success
		}
		fmt.Fprintln(errOut, "error: no project selected (run: taskdeck use <project>)")
		return exitcode.UserError
	}

	st.RefreshTasks(ctx)
	if code, ok := reportStatus(st, errOut); !ok {
		return code
	}

	p, _ := st.SelectedProject()
	output.FormatTaskHeader(out, p.Name)

	visible := view.Visible(st.Tasks(), criteria)
	for _, t := range visible {
		output.FormatTask(out, t)
	}
	if len(visible) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks found")
	}

	if !cfg.Quiet {
		done, total, pct := st.Progress()
		output.FormatProgress(out, done, total, pct)
	}
	return exitcode.Success
}

// mergedCriteria applies the one-shot flag overrides on top of the stored
// criteria. Overrides are not persisted.
func (c *ListCmd) mergedCriteria(st *state.Store, errOut io.Writer) (view.Criteria, int) {
	criteria := st.Criteria()
	if c.search != "" {
		criteria.Query = c.search
	}
	if c.filter != "" {
		f, err := view.ParseFilter(c.filter)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return criteria, exitcode.UserError
		}
		criteria.Filter = f
	}
	if c.sort != "" {
		s, err := view.ParseSort(c.sort)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return criteria, exitcode.UserError
		}
		criteria.Sort = s
	}
	return criteria, exitcode.Success
}
