package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/state"
)

// reportStatus prints the engine's recorded error, if any, and maps it to
// an exit code. Returns Success and true when the last operation succeeded.
func reportStatus(st *state.Store, errOut io.Writer) (int, bool) {
	err := st.Err()
	if err == nil {
		return exitcode.Success, true
	}
	fmt.Fprintf(errOut, "error: %v\n", err)

	var authErr *service.AuthError
	var notFoundErr *service.NotFoundError
	switch {
	case errors.As(err, &authErr):
		return exitcode.AuthError, false
	case errors.As(err, &notFoundErr):
		return exitcode.UserError, false
	default:
		return exitcode.BackendError, false
	}
}

// printOK prints the engine's informational status unless quiet. Commands
// with their own success output skip this.
func printOK(st *state.Store, quiet bool, out io.Writer) {
	if quiet {
		return
	}
	if msg := st.OK(); msg != "" {
		fmt.Fprintln(out, msg)
	}
}

// syncProjects refreshes the project list so the persisted selection is
// validated against the server before any task operation.
func syncProjects(ctx context.Context, st *state.Store, errOut io.Writer) (int, bool) {
	st.RefreshProjects(ctx)
	return reportStatus(st, errOut)
}

// syncSelection refreshes projects and then the selected project's tasks.
// Reports a user error when nothing is selected.
func syncSelection(ctx context.Context, st *state.Store, errOut io.Writer) (int, bool) {
	if code, ok := syncProjects(ctx, st, errOut); !ok {
		return code, false
	}
	if st.Selected() == 0 {
		fmt.Fprintln(errOut, "error: no project selected (run: taskdeck use <project>)")
		return exitcode.UserError, false
	}
	st.RefreshTasks(ctx)
	return reportStatus(st, errOut)
}

// resolveProject finds a project in the cached list by numeric ID or by
// case-insensitive trimmed name.
func resolveProject(st *state.Store, ref string) (service.Project, error) {
	ref = strings.TrimSpace(ref)
	projects := st.Projects()

	if id, err := strconv.Atoi(ref); err == nil {
		for _, p := range projects {
			if p.ID == id {
				return p, nil
			}
		}
		return service.Project{}, fmt.Errorf("project not found: %s", ref)
	}

	refLower := strings.ToLower(ref)
	var matches []service.Project
	for _, p := range projects {
		if strings.ToLower(strings.TrimSpace(p.Name)) == refLower {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return service.Project{}, fmt.Errorf("project not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return service.Project{}, fmt.Errorf("ambiguous project name: %s", ref)
	}
}

// parseTaskID parses a positional task ID argument.
func parseTaskID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("task id required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id: %s", args[0])
	}
	return id, nil
}

// readPassword returns the --password value, or prompts for one on errOut
// and reads a line from in.
func readPassword(flagValue string, in io.Reader, errOut io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	fmt.Fprint(errOut, "Password: ")
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("password required")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
