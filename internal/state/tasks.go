package state

import (
	"context"
	"fmt"
	"strings"

	"taskdeck/internal/service"
)

// RefreshTasks re-fetches the task list for the current selection and
// replaces the cache wholesale. With no selection the cache becomes empty
// without a request.
func (s *Store) RefreshTasks(ctx context.Context) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
	}
}

// CreateTask creates a task in the selected project, then refetches. An
// empty trimmed title or a missing selection is a silent no-op.
func (s *Store) CreateTask(ctx context.Context, title string) {
	s.resetStatus()
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	if !s.requireAuth() {
		return
	}

	s.mu.Lock()
	pid := s.selected
	s.mu.Unlock()
	if pid == 0 {
		return
	}

	if _, err := s.gw.CreateTask(ctx, pid, title); err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Task added.")
}

// ToggleTask flips a task's completion state by sending the negated cached
// value, then refetches. Idempotent on the wire if retried with the same
// target value.
func (s *Store) ToggleTask(ctx context.Context, taskID int) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	t, ok := s.cachedTask(taskID)
	if !ok {
		s.fail(&service.NotFoundError{Message: fmt.Sprintf("task not found: %d", taskID)})
		return
	}

	if err := s.gw.SetTaskDone(ctx, taskID, !t.Done); err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Task updated.")
}

// RenameTask sets a task's title, then refetches. An empty trimmed title is
// a silent no-op.
func (s *Store) RenameTask(ctx context.Context, taskID int, title string) {
	s.resetStatus()
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}
	if !s.requireAuth() {
		return
	}

	if err := s.gw.RenameTask(ctx, taskID, title); err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Task renamed.")
}

// DeleteTask deletes a task after confirmation, then refetches.
func (s *Store) DeleteTask(ctx context.Context, taskID int) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	t, ok := s.cachedTask(taskID)
	if !ok {
		s.fail(&service.NotFoundError{Message: fmt.Sprintf("task not found: %d", taskID)})
		return
	}
	if !s.confirm(fmt.Sprintf("Delete this task? %q", t.Title)) {
		return
	}

	if err := s.gw.DeleteTask(ctx, taskID); err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok("Task deleted.")
}

// fetchTasks replaces the task cache with the gateway's list for the
// selection captured at call time. If the selection generation moves on
// while the fetch is in flight, the stale result is discarded.
func (s *Store) fetchTasks(ctx context.Context) error {
	s.mu.Lock()
	pid := s.selected
	gen := s.gen
	s.mu.Unlock()

	if pid == 0 {
		s.mu.Lock()
		if s.gen == gen {
			s.tasks = nil
		}
		s.mu.Unlock()
		return nil
	}

	list, err := s.gw.ListTasks(ctx, pid)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// Selection changed while the fetch was in flight.
		return nil
	}
	s.tasks = list
	return nil
}

func (s *Store) cachedTask(taskID int) (service.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == taskID {
			return t, true
		}
	}
	return service.Task{}, false
}
