package state

import (
	"context"
	"fmt"
	"sync"

	"taskdeck/internal/service"
)

// MarkAllDone toggles every cached not-done task to done. The toggles are
// dispatched concurrently and settle as a single unit: if any request
// fails, no refetch happens and the first failure's error is surfaced.
// Requests that already succeeded are not rolled back, so gateway and
// cache can diverge until the next successful refresh.
func (s *Store) MarkAllDone(ctx context.Context) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	pending, selected := s.subset(func(t service.Task) bool { return !t.Done })
	if !selected {
		return
	}
	if len(pending) == 0 {
		s.ok("Nothing to mark: all tasks are already done.")
		return
	}

	err := s.dispatch(ctx, pending, func(ctx context.Context, taskID int) error {
		return s.gw.SetTaskDone(ctx, taskID, true)
	})
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok(fmt.Sprintf("Marked %d task(s) done.", len(pending)))
}

// DeleteCompleted deletes every cached done task after a confirmation that
// names the count. Same batch semantics as MarkAllDone.
func (s *Store) DeleteCompleted(ctx context.Context) {
	s.resetStatus()
	if !s.requireAuth() {
		return
	}

	done, selected := s.subset(func(t service.Task) bool { return t.Done })
	if !selected {
		return
	}
	if len(done) == 0 {
		s.ok("No completed tasks to delete.")
		return
	}
	if !s.confirm(fmt.Sprintf("Delete %d completed task(s)? This cannot be undone.", len(done))) {
		return
	}

	err := s.dispatch(ctx, done, func(ctx context.Context, taskID int) error {
		return s.gw.DeleteTask(ctx, taskID)
	})
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.fetchTasks(ctx); err != nil {
		s.fail(err)
		return
	}
	s.ok(fmt.Sprintf("Deleted %d completed task(s).", len(done)))
}

// subset returns the cached tasks matching keep. selected is false when no
// project is selected, which makes bulk operations silent no-ops.
func (s *Store) subset(keep func(service.Task) bool) (tasks []service.Task, selected bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == 0 {
		return nil, false
	}
	for _, t := range s.tasks {
		if keep(t) {
			tasks = append(tasks, t)
		}
	}
	return tasks, true
}

// dispatch issues one request per task concurrently, waits for all to
// settle, and returns the first error in task order, if any. No ordering
// is imposed between the requests themselves; the only contract is that
// all have settled before the caller attempts the aggregate refetch.
func (s *Store) dispatch(ctx context.Context, tasks []service.Task, op func(ctx context.Context, taskID int) error) error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup
	for i, t := range tasks {
		wg.Add(1)
		go func(i, taskID int) {
			defer wg.Done()
			errs[i] = op(ctx, taskID)
		}(i, t.ID)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
