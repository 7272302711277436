package state

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/service"
)

// RefreshProjects fetches the full project list and replaces the cache.
// If the cache was empty, the fetch is non-empty and nothing is selected,
// the first entry (server order) becomes the selection. This is the only
// place auto-selection occurs.
func (s *Store) RefreshProjects(ctx context.Context) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}
	if err := s.fetchProjects(ctx); err != nil {
		s.fail(err)
	}
}

// CreateProject creates a project, refreshes the list, and selects the new
// project. An empty trimmed name is a silent no-op. On failure the cache is
// left at its pre-call state.
func (s *Store) CreateProject(ctx context.Context, name string) {
	s.resetStatus()
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if !s.requireAuth() {
		return
	}

	p, err := s.gw.CreateProject(ctx, name)
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchProjects(ctx); err != nil {
		s.fail(err)
		return
	}

	s.mu.Lock()
	s.setSelectionLocked(p.ID)
	s.mu.Unlock()
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Project created.")
}

// DeleteProject deletes a project after confirmation, then refreshes the
// list. If the deleted project was selected, the selection is cleared, not
// reassigned: a selection must never point at a deleted entity.
func (s *Store) DeleteProject(ctx context.Context, projectID int) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	label := fmt.Sprintf("project %d", projectID)
	s.mu.Lock()
	for _, p := range s.projects {
		if p.ID == projectID {
			label = fmt.Sprintf("project %q", p.Name)
			break
		}
	}
	s.mu.Unlock()

	if !s.confirm(fmt.Sprintf("Delete %s? This cannot be undone.", label)) {
		return
	}

	if err := s.gw.DeleteProject(ctx, projectID); err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchProjects(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Project deleted.")
}

// SelectProject makes projectID the selection and refreshes its tasks.
// The ID must be present in the last-fetched project list.
func (s *Store) SelectProject(ctx context.Context, projectID int) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	s.mu.Lock()
	if !containsProject(s.projects, projectID) {
		s.errStatus = &service.NotFoundError{Message: fmt.Sprintf("project not found: %d", projectID)}
		s.mu.Unlock()
		return
	}
	if s.selected != projectID {
		s.setSelectionLocked(projectID)
	}
	s.mu.Unlock()

	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
	}
}

// fetchProjects replaces the project cache with the gateway's list and
// keeps the selection consistent with it: a selection pointing at an entry
// the server no longer reports is cleared, and an empty cache gaining its
// first entries auto-selects the first one. Selection changes trigger a
// task refetch.
func (s *Store) fetchProjects(ctx context.Context) error {
	s.mu.Lock()
	wasEmpty := len(s.projects) == 0
	s.mu.Unlock()

	list, err := s.gw.ListProjects(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.projects = list
	selectionChanged := false
	if s.selected != 0 {
		if !containsProject(list, s.selected) {
			s.setSelectionLocked(0)
			selectionChanged = true
		}
	} else if wasEmpty && len(list) > 0 {
		s.setSelectionLocked(list[0].ID)
		selectionChanged = true
	}
	s.mu.Unlock()

	if selectionChanged {
		return s.fetchTasks(ctx)
	}
	return nil
}

func containsProject(projects []service.Project, id int) bool {
	for _, p := range projects {
		if p.ID == id {
			return true
		}
	}
	return false
}
